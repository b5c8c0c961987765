package http

import (
	"net/http"
	"strconv"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/service"
)

type NotificationHandler struct {
	notes service.NotificationService
}

func NewNotificationHandler(notes service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notes: notes}
}

type notificationPage struct {
	Notifications []domain.Notification `json:"notifications"`
	Total         int32                 `json:"total"`
}

func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}

	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 20)

	notes, total, err := h.notes.GetNotifications(r.Context(), principal.UserID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	if notes == nil {
		notes = []domain.Notification{}
	}
	writeJSON(w, http.StatusOK, notificationPage{Notifications: notes, Total: total})
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.notes.MarkAsRead(r.Context(), principal.UserID, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func queryInt(r *http.Request, name string, fallback int32) int32 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v < 1 {
		return fallback
	}
	return int32(v)
}
