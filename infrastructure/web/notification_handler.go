package web

import (
	"chat-relay/auth"
	"chat-relay/domain/chat"
	"chat-relay/errors"
	"chat-relay/services"
	goerrors "errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/samber/lo"
)

type NotificationHandler struct {
	service services.INotificationService
	log     *slog.Logger
}

func NewNotificationHandler(service services.INotificationService, log *slog.Logger) *NotificationHandler {
	return &NotificationHandler{service: service, log: log}
}

// List returns the caller's notifications, newest first.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	notifications, err := h.service.List(claims.Username)
	if err != nil {
		h.log.Error("Unable to list notifications", "username", claims.Username, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read notifications")
		return
	}
	writeJSON(w, http.StatusOK, lo.Map(notifications, func(n chat.Notification, _ int) notificationView {
		return toNotificationView(n)
	}))
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}
	err = h.service.MarkRead(claims.Username, id)
	if goerrors.Is(err, errors.ErrNotificationAbsent) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		h.log.Error("Unable to mark notification", "username", claims.Username, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update notification")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *NotificationHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	if err := h.service.ClearAll(claims.Username); err != nil {
		h.log.Error("Unable to clear notifications", "username", claims.Username, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to clear notifications")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
