package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/finlabs/agent-workshop/internal/agent"
)

// streamEvents writes agent events to the client as Server-Sent Events,
// one JSON payload per event, flushed as each arrives. The event channel
// is drained until closed; a disconnected client cancels the run via the
// request context.
func (s *Server) streamEvents(w http.ResponseWriter, r *http.Request, events <-chan agent.Event) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	flusher, canFlush := w.(http.Flusher)
	if canFlush {
		flusher.Flush()
	}

	enc := json.NewEncoder(w)
	for ev := range events {
		if _, err := w.Write([]byte("data: ")); err != nil {
			s.drainEvents(events, r)
			return
		}
		if err := enc.Encode(ev); err != nil {
			s.drainEvents(events, r)
			return
		}
		if _, err := w.Write([]byte("\n")); err != nil {
			s.drainEvents(events, r)
			return
		}
		if canFlush {
			flusher.Flush()
		}
	}
}

// drainEvents consumes the remaining events after a write failure so the
// producing goroutine can finish and observe the cancelled context.
func (s *Server) drainEvents(events <-chan agent.Event, r *http.Request) {
	s.log.Debug().Str("remote", r.RemoteAddr).Msg("client disconnected mid-stream")
	for range events {
	}
}
