package httpstream

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kbukum/streamkit/logger"
	"github.com/kbukum/streamkit/status"
	"github.com/kbukum/streamkit/stream"
)

// Component is the logging component name for SSE handlers.
const Component = "httpstream"

// SSE event names.
const (
	EventMessage = "message"
	EventError   = "error"
	EventEnd     = "end"
)

// Serve drains the stream into w as Server-Sent Events. It closes the
// stream before returning, whether the stream ended or the client went
// away.
func Serve[T any](w http.ResponseWriter, r *http.Request, s *stream.Stream[T]) {
	defer func() { _ = s.Close() }()

	log := logger.For(s.Options(), Component)

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	// SSE connections outlive any server WriteTimeout.
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		log.Debug("could not clear write deadline", logger.ErrorFields("deadline", err))
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ctx := r.Context()
	sent := 0
	for res := range s.All() {
		if ctx.Err() != nil {
			log.Debug("client disconnected", logger.Fields(
				logger.FieldStreamID, s.ID(),
				logger.FieldElements, sent,
			))
			return
		}

		v, err := res.Get()
		if err != nil {
			writeEvent(w, flusher, EventError, status.FromError(err))
			log.Debug("stream ended with error", logger.ErrorFields("stream", err))
			return
		}
		writeEvent(w, flusher, EventMessage, v)
		sent++
	}

	writeEvent(w, flusher, EventEnd, map[string]int{"elements": sent})
	log.Debug("stream drained", logger.Fields(
		logger.FieldStreamID, s.ID(),
		logger.FieldElements, sent,
	))
}

func writeEvent(w http.ResponseWriter, flusher http.Flusher, name string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		data, _ = json.Marshal(status.Internal(err))
		name = EventError
	}
	_, _ = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
	flusher.Flush()
}
