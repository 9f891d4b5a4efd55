package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/ayusman/nayana/internal/monitor"
)

const writeWait = 2 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// EventsHandler forwards hub messages to WebSocket clients as JSON.
type EventsHandler struct {
	hub *monitor.Hub
}

// NewEventsHandler creates a new EventsHandler for hub.
func NewEventsHandler(hub *monitor.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.Warnf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	msgs, unsubscribe := h.hub.Subscribe()
	defer unsubscribe()

	// Send the current status so clients start with the active mode.
	st := h.hub.Status()
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(monitor.Message{Type: monitor.TypeMode, Mode: st.Mode, Timestamp: time.Now().UnixMilli()}); err != nil {
		return
	}

	// Detect client disconnects by reading until error.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				logrus.Debugf("websocket write error: %v", err)
				return
			}
		}
	}
}
