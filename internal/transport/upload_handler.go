package transport

import (
	"errors"
	"io"
	"net/http"

	"scentstock/internal/middleware"
	"scentstock/internal/storage"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UploadResponse wraps a stored image result
type UploadResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message,omitempty"`
	Data    *storage.ImageInfo `json:"data"`
}

// UploadListResponse wraps the stored image listing
type UploadListResponse struct {
	Success bool                 `json:"success"`
	Data    []*storage.ImageInfo `json:"data"`
	Count   int                  `json:"count"`
}

// UploadHandler handles image asset uploads for catalog listings
type UploadHandler struct {
	images storage.ImageStore
	logger *zap.Logger
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(images storage.ImageStore, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		images: images,
		logger: logger,
	}
}

// RegisterRoutes registers all upload routes
func (h *UploadHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/upload", func(r chi.Router) {
		r.Post("/image", h.UploadImage)
		r.Get("/list", h.ListImages)
		r.Delete("/{filename}", h.DeleteImage)
	})
}

// UploadImage handles POST /api/upload/image with a single multipart field
// named "image". The payload's content type is sniffed from its bytes, never
// trusted from the request.
func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	// Small headroom over the image ceiling for multipart framing
	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxImageSize+(64<<10))

	file, header, err := r.FormFile("image")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			middleware.RespondWithErrorMessage(w, http.StatusBadRequest,
				"file too large", "maximum file size is 5MB")
			return
		}
		middleware.RespondWithErrorMessage(w, http.StatusBadRequest,
			"no file uploaded", "please attach an image in the \"image\" field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			middleware.RespondWithErrorMessage(w, http.StatusBadRequest,
				"file too large", "maximum file size is 5MB")
			return
		}
		h.logger.Error("Failed to read uploaded file", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to read uploaded file")
		return
	}

	info, err := h.images.Save(header.Filename, data)
	if err != nil {
		switch err {
		case storage.ErrUnsupportedImageType:
			middleware.RespondWithErrorMessage(w, http.StatusBadRequest,
				"unsupported file type", "only JPEG, PNG and WebP images are allowed")
		case storage.ErrImageTooLarge:
			middleware.RespondWithErrorMessage(w, http.StatusBadRequest,
				"file too large", "maximum file size is 5MB")
		default:
			h.logger.Error("Failed to store image", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to store image")
		}
		return
	}

	h.logger.Info("Image uploaded",
		zap.String("filename", info.Filename),
		zap.Int64("size", info.Size),
		zap.String("mimetype", info.MimeType),
	)
	middleware.RespondWithJSON(w, http.StatusOK, UploadResponse{
		Success: true,
		Message: "image uploaded successfully",
		Data:    info,
	})
}

// DeleteImage handles DELETE /api/upload/{filename}
func (h *UploadHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	if err := h.images.Delete(filename); err != nil {
		switch err {
		case storage.ErrInvalidFilename:
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid filename")
		case storage.ErrImageNotFound:
			middleware.RespondWithError(w, http.StatusNotFound, "image not found")
		default:
			h.logger.Error("Failed to delete image", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete image")
		}
		return
	}

	h.logger.Info("Image deleted", zap.String("filename", filename))
	middleware.RespondWithJSON(w, http.StatusOK, StatusResponse{
		Success: true,
		Message: "image deleted successfully",
	})
}

// ListImages handles GET /api/upload/list
func (h *UploadHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.images.List()
	if err != nil {
		h.logger.Error("Failed to list images", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list images")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, UploadListResponse{
		Success: true,
		Data:    images,
		Count:   len(images),
	})
}
