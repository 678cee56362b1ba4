package plot

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/raykavin/backview/pkg/gesture"
)

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.Lock()
	samples := len(s.viewport.Samples())
	lastUpdate := s.lastUpdate
	s.Unlock()

	// Nothing to draw without samples
	if samples == 0 {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(lastUpdate.Format(time.RFC3339))); err != nil {
		s.log.Error("Failed to write health status: ", err)
	}
}

// handleIndex handles the main page request
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	s.Lock()
	active := s.viewport.State().ActiveSeriesKey
	s.Unlock()

	w.Header().Set("Content-Type", "text/html")
	err := s.indexHTML.Execute(w, map[string]interface{}{
		"active": active,
		"series": s.series,
	})
	if err != nil {
		s.log.Error("Template execution failed: ", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// handleViewport returns the current viewport with its visible samples
func (s *Server) handleViewport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	s.Lock()
	payload := s.payload()
	s.Unlock()

	s.writeJSON(w, payload)
}

// handleGesture applies one surface event and returns the resulting viewport
func (s *Server) handleGesture(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var ev gesture.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		http.Error(w, fmt.Sprintf("invalid event: %v", err), http.StatusBadRequest)
		return
	}

	s.Lock()
	prevent := s.gestures.Dispatch(ev)
	s.lastUpdate = time.Now()
	payload := s.payload()
	s.Unlock()

	s.writeJSON(w, gestureResponse{
		PreventDefault: prevent,
		Viewport:       payload,
	})
}

// handleSeries switches the series driving the value axis
func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	key := r.URL.Query().Get("key")
	if key == "" || (len(s.series) > 0 && !slices.Contains(s.series, key)) {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	s.Lock()
	s.viewport.SetActiveSeries(key)
	s.lastUpdate = time.Now()
	payload := s.payload()
	s.Unlock()

	s.writeJSON(w, payload)
}

// handleReset restores the full data extent
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	s.Lock()
	s.viewport.Reset()
	s.lastUpdate = time.Now()
	payload := s.payload()
	s.Unlock()

	s.writeJSON(w, payload)
}

// payload must be called with the lock held
func (s *Server) payload() viewportPayload {
	return newViewportPayload(s.viewport.State(), s.viewport.Visible())
}

func (s *Server) writeJSON(w http.ResponseWriter, value any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(value); err != nil {
		s.log.Error("JSON encoding failed: ", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
