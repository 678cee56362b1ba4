package gesture

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// ReadScript reads one JSON encoded Event per line. Blank lines and lines
// starting with # are skipped.
func ReadScript(r io.Reader) ([]Event, error) {
	var events []Event

	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		var ev Event
		if err := json.Unmarshal([]byte(text), &ev); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		events = append(events, ev)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// Replay dispatches events in order
func (r *Router) Replay(events []Event) {
	for _, ev := range events {
		r.Dispatch(ev)
	}
}
