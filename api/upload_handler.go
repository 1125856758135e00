package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sort"

	"github.com/rpupo63/project-catalog-backend/errs"
	"github.com/rpupo63/project-catalog-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultMaxImageBytes = 10 << 20

// ImageStore persists uploaded images and returns their public URL
type ImageStore interface {
	Enabled() bool
	Put(ctx context.Context, contentType string, body io.Reader, size int64) (string, error)
}

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	images    ImageStore
	maxBytes  int64
}

func newUploadHandler(images ImageStore, maxBytes int64, development bool) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()
	if maxBytes <= 0 {
		maxBytes = defaultMaxImageBytes
	}

	return uploadHandler{
		responder: NewResponder(logger).WithDevelopment(development),
		logger:    logger,
		images:    images,
		maxBytes:  maxBytes,
	}
}

func allowedImageTypes() []string {
	types := make([]string, 0, len(storage.AllowedContentTypes))
	for t := range storage.AllowedContentTypes {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// uploadImage stores an image file and returns the URL to put in a project's images
// @Summary Upload image
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Success 201 {object} UploadResponse "Stored image URL"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing or unreadable file"
// @Failure 415 {object} ErrorResponse "Unsupported Media Type - Not an image"
// @Failure 503 {object} ErrorResponse "Service Unavailable - Image storage not configured"
// @Router /uploads/images [post]
func (h uploadHandler) uploadImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.images == nil || !h.images.Enabled() {
			h.responder.WriteError(w, errs.NewUnavailableError(storage.ErrDisabled.Error()))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+(1<<20))
		file, _, err := r.FormFile("file")
		if err != nil {
			h.logger.Warn().Err(err).Msg("Failed to read uploaded file")
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("file"))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read uploaded file"))
			return
		}
		if int64(len(data)) > h.maxBytes {
			h.responder.WriteError(w, errs.NewInvalidFieldError("file", "file is too large"))
			return
		}

		contentType := http.DetectContentType(data)
		if _, ok := storage.AllowedContentTypes[contentType]; !ok {
			h.responder.WriteError(w, errs.NewUnsupportedMediaTypeError(contentType, allowedImageTypes()))
			return
		}

		url, err := h.images.Put(r.Context(), contentType, bytes.NewReader(data), int64(len(data)))
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to store image", err))
			return
		}

		h.logger.Info().Str("url", url).Str("admin", adminSubject(r.Context())).Msg("image uploaded")
		h.responder.WriteJSONStatus(w, http.StatusCreated, UploadResponse{URL: url})
	}
}
