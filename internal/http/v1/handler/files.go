package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Leyinc1/manuelbest/internal/apperrors"
	"github.com/Leyinc1/manuelbest/internal/domain/models"
	"github.com/Leyinc1/manuelbest/internal/http/v1/response"
	"github.com/Leyinc1/manuelbest/internal/lib/logger/sl"
)

const multipartMemory = 8 << 20

type Files interface {
	ListFiles(ctx context.Context, owner string) ([]models.FileInfo, error)
	Upload(ctx context.Context, owner, name string, body io.Reader, size int64) (models.FileInfo, error)
	Download(ctx context.Context, owner, name string) (io.ReadCloser, string, error)
}

type FileHandler struct {
	files     Files
	maxUpload int64
	log       *slog.Logger
}

func NewFileHandler(files Files, maxUpload int64, log *slog.Logger) *FileHandler {
	return &FileHandler{
		files:     files,
		maxUpload: maxUpload,
		log:       log,
	}
}

func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handler.files.List"

	log := h.log.With(slog.String("op", op))

	ident, err := identity(r)
	if err != nil {
		response.ServiceError(w, log, err)
		return
	}

	files, err := h.files.ListFiles(r.Context(), ident.UserID)
	if err != nil {
		response.ServiceError(w, log, err)
		return
	}

	response.JSON(w, log, http.StatusOK, files)
}

// Upload expects a multipart form with the document under the "file" field.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	const op = "handler.files.Upload"

	log := h.log.With(slog.String("op", op))

	ident, err := identity(r)
	if err != nil {
		response.ServiceError(w, log, err)
		return
	}

	if h.maxUpload > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.ServiceError(w, log, apperrors.Validation("file exceeds "+strconv.FormatInt(tooLarge.Limit, 10)+" bytes"))
			return
		}
		response.ServiceError(w, log, apperrors.Validation("invalid multipart form: "+err.Error()))
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			log.Warn("failed to remove multipart temp files", sl.Err(err))
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		response.ServiceError(w, log, apperrors.Validation("file field is required"))
		return
	}
	defer file.Close()

	info, err := h.files.Upload(r.Context(), ident.UserID, header.Filename, file, header.Size)
	if err != nil {
		response.ServiceError(w, log, err)
		return
	}

	response.JSON(w, log, http.StatusCreated, info)
}

func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	const op = "handler.files.Download"

	log := h.log.With(slog.String("op", op))

	ident, err := identity(r)
	if err != nil {
		response.ServiceError(w, log, err)
		return
	}

	body, name, err := h.files.Download(r.Context(), ident.UserID, chi.URLParam(r, "name"))
	if err != nil {
		response.ServiceError(w, log, err)
		return
	}
	defer body.Close()

	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, body); err != nil {
		log.Warn("failed to stream file", slog.String("name", name), sl.Err(err))
	}
}
