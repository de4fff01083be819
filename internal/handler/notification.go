package handler

import (
	"encoding/json"
	"net/http"
)

type notifyRequest struct {
	Title   string         `json:"title"`
	Message string         `json:"message"`
	Extra   map[string]any `json:"extra"`
}

// notifyGlobal broadcasts an arbitrary event to every connected subscriber.
// Delivery is fire-and-forget, so the endpoint always answers 200 once the
// payload parses.
func (h *Handler) notifyGlobal(w http.ResponseWriter, r *http.Request) {
	var req notifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	h.notifier.Notify(r.Context(), req.Title, req.Message, req.Extra)

	writeJSON(w, r, http.StatusOK, map[string]string{"message": "Notification sent"})
}
