package web

import (
	"chat-relay/auth"
	"chat-relay/domain/mimetypes"
	"chat-relay/services"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/zeebo/blake3"
)

// UploadsPrefix is the path stored files are served from, behind authentication.
const UploadsPrefix = "/uploads/"

type uploadView struct {
	FilePath string `json:"filePath"`
	Filename string `json:"filename"`
	MimeType string `json:"mimeType"`
}

// UploadHandler stores attachments by content hash.
// Identical uploads share one file on disk, each uploader is recorded as an owner.
type UploadHandler struct {
	dir         string
	maxBytes    int64
	attachments services.IAttachmentService
	log         *slog.Logger
}

func NewUploadHandler(dir string, maxBytes int64, attachments services.IAttachmentService, log *slog.Logger) *UploadHandler {
	return &UploadHandler{dir: dir, maxBytes: maxBytes, attachments: attachments, log: log}
}

func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+1024*1024)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "file too large")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable file")
		return
	}
	if int64(len(data)) > h.maxBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "file too large")
		return
	}

	detected := mimetype.Detect(data)
	mime, ok := mimetypes.IsUploadable(detected.String())
	if !ok {
		writeError(w, http.StatusUnsupportedMediaType, "file type not allowed")
		return
	}

	sum := blake3.Sum256(data)
	name := hex.EncodeToString(sum[:]) + detected.Extension()
	if err := h.store(name, data); err != nil {
		h.log.Error("Failed to store upload", "name", name, "error", err)
		writeError(w, http.StatusInternalServerError, "upload failed")
		return
	}
	claims, _ := auth.ClaimsFromContext(r.Context())
	if err := h.attachments.Record(name, string(mime), claims.Username); err != nil {
		h.log.Error("Failed to record upload owner", "name", name, "error", err)
		writeError(w, http.StatusInternalServerError, "upload failed")
		return
	}
	h.log.Debug("File uploaded", "name", name, "mime_type", mime, "size", len(data), "owner", claims.Username)

	writeJSON(w, http.StatusCreated, uploadView{
		FilePath: path.Join(UploadsPrefix, name),
		Filename: filepath.Base(header.Filename),
		MimeType: string(mime),
	})
}

// store writes through a temp file so a partially written upload is never served.
func (h *UploadHandler) store(name string, data []byte) error {
	target := filepath.Join(h.dir, name)
	if _, err := os.Stat(target); err == nil {
		return nil
	}
	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(h.dir, ".upload-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}
