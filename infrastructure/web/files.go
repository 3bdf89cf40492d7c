package web

import (
	"chat-relay/auth"
	"chat-relay/services"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"
)

// FileHandler serves one stored upload to a caller allowed to open it.
// Directories are never listed.
type FileHandler struct {
	dir         string
	attachments services.IAttachmentService
	log         *slog.Logger
}

func NewFileHandler(dir string, attachments services.IAttachmentService, log *slog.Logger) *FileHandler {
	return &FileHandler{dir: dir, attachments: attachments, log: log}
}

func (h *FileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if name == "" || strings.HasPrefix(name, ".") || filepath.Base(name) != name {
		writeError(w, http.StatusNotFound, "file not found")
		return
	}
	claims, _ := auth.ClaimsFromContext(r.Context())
	allowed, err := h.attachments.CanOpen(claims.Username, path.Join(UploadsPrefix, name))
	if err != nil {
		h.log.Error("Unable to check file access", "name", name, "username", claims.Username, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read file")
		return
	}
	// Unknown and forbidden files look the same
	if !allowed {
		writeError(w, http.StatusNotFound, "file not found")
		return
	}
	target := filepath.Join(h.dir, name)
	info, err := os.Stat(target)
	if err != nil || !info.Mode().IsRegular() {
		writeError(w, http.StatusNotFound, "file not found")
		return
	}
	w.Header().Set("X-Content-Type-Options", "nosniff")
	http.ServeFile(w, r, target)
}
