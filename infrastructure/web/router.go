package web

import (
	"chat-relay/auth"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

type Handlers struct {
	Socket        *SocketHandler
	Health        *HealthHandler
	Notifications *NotificationHandler
	Upload        *UploadHandler
	Files         *FileHandler
}

// NewRouter mounts the realtime endpoint, the REST api and the stored uploads.
// Everything but /ws and /health requires a token.
func NewRouter(issuer *auth.TokenIssuer, h Handlers) *mux.Router {
	r := mux.NewRouter()
	r.Handle("/ws", h.Socket)
	r.Handle("/health", h.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(Authenticate(issuer))
	api.HandleFunc("/notifications", h.Notifications.List).Methods(http.MethodGet)
	api.HandleFunc("/notifications/all", h.Notifications.ClearAll).Methods(http.MethodDelete)
	api.HandleFunc("/notifications/{id}/read", h.Notifications.MarkRead).Methods(http.MethodPut)
	api.Handle("/upload", h.Upload).Methods(http.MethodPost)

	files := r.PathPrefix(strings.TrimSuffix(UploadsPrefix, "/")).Subrouter()
	files.Use(Authenticate(issuer))
	files.Handle("/{name}", h.Files).Methods(http.MethodGet)
	return r
}
