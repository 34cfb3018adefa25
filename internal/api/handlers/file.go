package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/dom/petshop-api/internal/api/response"
	"github.com/dom/petshop-api/internal/service"
	"github.com/go-chi/chi/v5"
)

type FileHandler struct {
	fileService *service.FileService
	maxBytes    int64
}

func NewFileHandler(fileService *service.FileService, maxBytes int64) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		maxBytes:    maxBytes,
	}
}

func (h *FileHandler) tooLarge() error {
	return response.FieldError("file", fmt.Sprintf("The file field must not be greater than %d kilobytes.", h.maxBytes/1024))
}

func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// multipart overhead on top of the file itself
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+maxBodyBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			response.Error(w, r, h.tooLarge())
			return
		}
		response.Error(w, r, response.FieldError("file", "The file field is required."))
		return
	}
	defer r.MultipartForm.RemoveAll()

	part, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, r, response.FieldError("file", "The file field is required."))
		return
	}
	defer part.Close()

	file, err := h.fileService.Upload(r.Context(), service.UploadInput{
		Name:    header.Filename,
		Size:    header.Size,
		Content: part,
	})
	if errors.Is(err, service.ErrFileTooLarge) {
		response.Error(w, r, h.tooLarge())
		return
	}
	if err != nil {
		writeError(w, r, err, "File")
		return
	}

	response.OK(w, file)
}

func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	file, content, err := h.fileService.Open(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		writeError(w, r, err, "File")
		return
	}
	defer content.Close()

	w.Header().Set("Content-Type", file.Type)
	w.Header().Set("Content-Length", strconv.FormatInt(file.Size, 10))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.Name}))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, content); err != nil {
		slog.WarnContext(r.Context(), "file download interrupted", "op", "file.Download", "uuid", file.UUID, "error", err)
	}
}
