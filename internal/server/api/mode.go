package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/nayana/internal/gesture"
)

// ModeHandler reports and changes the tracking mode. Changes are submitted
// as key presses so they go through the same path as the preview window.
type ModeHandler struct {
	current func() string
	submit  func(key int) bool
}

// NewModeHandler creates a ModeHandler. current returns the active mode
// name; submit queues a key and reports whether it was accepted.
func NewModeHandler(current func() string, submit func(key int) bool) *ModeHandler {
	return &ModeHandler{current: current, submit: submit}
}

type modeRequest struct {
	Mode string `json:"mode"`
}

type modeResponse struct {
	Mode string `json:"mode"`
}

// ServeHTTP handles GET and POST /api/mode.
func (h *ModeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		mode := ""
		if h.current != nil {
			mode = h.current()
		}
		writeJSON(w, http.StatusOK, modeResponse{Mode: mode})
	case http.MethodPost:
		h.set(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ModeHandler) set(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	mode, err := gesture.ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid mode")
		return
	}

	if h.submit == nil || !h.submit(mode.Key()) {
		writeError(w, http.StatusServiceUnavailable, "Tracking loop is not accepting input")
		return
	}

	writeJSON(w, http.StatusAccepted, modeResponse{Mode: mode.Name()})
}
