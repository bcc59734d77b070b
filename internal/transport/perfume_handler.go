package transport

import (
	"net/http"
	"strconv"

	"scentstock/internal/domain"
	"scentstock/internal/middleware"
	"scentstock/internal/repository"
	"scentstock/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ListResponse wraps a collection result
type ListResponse struct {
	Success bool              `json:"success"`
	Data    []*domain.Perfume `json:"data"`
	Count   int               `json:"count"`
}

// PerfumeResponse wraps a single listing result
type PerfumeResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    *domain.Perfume `json:"data"`
}

// StatusResponse wraps an operation with no data payload
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// PerfumeHandler handles HTTP requests for catalog operations
type PerfumeHandler struct {
	perfumeService service.PerfumeService
	logger         *zap.Logger
	devMode        bool
}

// NewPerfumeHandler creates a new PerfumeHandler. In development mode store
// fault messages are surfaced in 500 responses; in production they are hidden.
func NewPerfumeHandler(perfumeService service.PerfumeService, logger *zap.Logger, env string) *PerfumeHandler {
	return &PerfumeHandler{
		perfumeService: perfumeService,
		logger:         logger,
		devMode:        env == "development",
	}
}

// RegisterRoutes registers all catalog routes
func (h *PerfumeHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/perfumes", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// List handles GET /api/perfumes, dispatching to search when a non-empty
// search query parameter is present
func (h *PerfumeHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	perfumes, err := h.perfumeService.List(r.Context(), search)
	if err != nil {
		h.storeError(w, "failed to fetch perfumes", err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ListResponse{
		Success: true,
		Data:    perfumes,
		Count:   len(perfumes),
	})
}

// Get handles GET /api/perfumes/{id}
func (h *PerfumeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	perfume, err := h.perfumeService.Get(r.Context(), id)
	if err != nil {
		if err == repository.ErrPerfumeNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "perfume not found")
			return
		}
		h.storeError(w, "failed to fetch perfume", err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, PerfumeResponse{
		Success: true,
		Data:    perfume,
	})
}

// Create handles POST /api/perfumes
func (h *PerfumeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.PerfumeInput

	if err := middleware.DecodeAndValidate(r, &input); err != nil {
		h.logger.Debug("Perfume validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	perfume, err := h.perfumeService.Create(r.Context(), input)
	if err != nil {
		h.storeError(w, "failed to create perfume", err)
		return
	}

	h.logger.Info("Perfume created", zap.Int64("perfume_id", perfume.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, PerfumeResponse{
		Success: true,
		Message: "perfume created successfully",
		Data:    perfume,
	})
}

// Update handles PUT /api/perfumes/{id}. The body replaces every field;
// omitted optionals fall back to schema defaults, not to stored values.
func (h *PerfumeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var input domain.PerfumeInput

	if err := middleware.DecodeAndValidate(r, &input); err != nil {
		h.logger.Debug("Perfume validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	perfume, err := h.perfumeService.Update(r.Context(), id, input)
	if err != nil {
		if err == repository.ErrPerfumeNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "perfume not found")
			return
		}
		h.storeError(w, "failed to update perfume", err)
		return
	}

	h.logger.Info("Perfume updated", zap.Int64("perfume_id", perfume.ID))
	middleware.RespondWithJSON(w, http.StatusOK, PerfumeResponse{
		Success: true,
		Message: "perfume updated successfully",
		Data:    perfume,
	})
}

// Delete handles DELETE /api/perfumes/{id} (soft delete)
func (h *PerfumeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.perfumeService.Delete(r.Context(), id); err != nil {
		if err == repository.ErrPerfumeNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "perfume not found")
			return
		}
		h.storeError(w, "failed to delete perfume", err)
		return
	}

	h.logger.Info("Perfume deleted", zap.Int64("perfume_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, StatusResponse{
		Success: true,
		Message: "perfume deleted successfully",
	})
}

// parseID extracts and range-checks the path identifier. Anything that is not
// a positive integer is rejected with a 400.
func (h *PerfumeHandler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid perfume id")
		return 0, false
	}

	return id, true
}

func (h *PerfumeHandler) storeError(w http.ResponseWriter, errMsg string, err error) {
	h.logger.Error(errMsg, zap.Error(err))

	message := ""
	if h.devMode {
		message = err.Error()
	}
	middleware.RespondWithErrorMessage(w, http.StatusInternalServerError, errMsg, message)
}
