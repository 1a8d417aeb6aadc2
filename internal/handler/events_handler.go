package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"cafe-counter/internal/model"
	"cafe-counter/internal/notify"
)

// heartbeatInterval keeps idle SSE connections from being reaped by proxies.
const heartbeatInterval = 30 * time.Second

// EventsHandler streams order-change events to clients over server-sent
// events. Each event carries only the order ID; clients re-fetch the order to
// get current state.
type EventsHandler struct {
	hub    *notify.Hub
	logger zerolog.Logger
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(hub *notify.Hub, logger zerolog.Logger) *EventsHandler {
	return &EventsHandler{
		hub:    hub,
		logger: logger.With().Str("handler", "events").Logger(),
	}
}

// Stream handles GET /api/orders/events requests.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "streaming not supported", h.logger)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	events, cancel := h.hub.Subscribe()
	defer cancel()

	h.logger.Debug().Msg("sse client connected")

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			h.logger.Debug().Msg("sse client disconnected")
			return
		case ev := <-events:
			fmt.Fprintf(w, "event: order\ndata: {\"orderId\":%q}\n\n", ev.OrderID)
			flusher.Flush()
		case <-heartbeat.C:
			fmt.Fprint(w, ": heartbeat\n\n")
			flusher.Flush()
		}
	}
}
