package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ayusman/nayana/internal/monitor"
)

// StreamInterval is the MJPEG polling period (~15 FPS).
const StreamInterval = 66 * time.Millisecond

// StreamHandler serves the annotated preview frames as MJPEG.
type StreamHandler struct {
	hub      *monitor.Hub
	interval time.Duration
}

// NewStreamHandler creates a new StreamHandler reading frames from hub.
func NewStreamHandler(hub *monitor.Hub) *StreamHandler {
	return &StreamHandler{hub: hub, interval: StreamInterval}
}

// ServeHTTP streams MJPEG frames to connected clients. Each new frame is
// written once; the handler idles while the loop produces no frames.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	var lastSeq uint64
	for {
		buf, seq := h.hub.Frame()
		if seq != lastSeq && len(buf) > 0 {
			lastSeq = seq
			if err := writePart(w, buf); err != nil {
				return
			}
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
		}

		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}

func writePart(w http.ResponseWriter, jpeg []byte) error {
	if _, err := fmt.Fprintf(w, "--frame\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n", len(jpeg)); err != nil {
		return err
	}
	if _, err := w.Write(jpeg); err != nil {
		return err
	}
	_, err := fmt.Fprint(w, "\r\n")
	return err
}
