package middleware

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// ErrorResponse is the envelope every failed request carries:
// {success:false, error, message?, details?}.
type ErrorResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Details []ValidationError `json:"details,omitempty"`
}

// RespondWithError sends a structured error response
func RespondWithError(w http.ResponseWriter, statusCode int, errMsg string) {
	RespondWithErrorMessage(w, statusCode, errMsg, "")
}

// RespondWithErrorMessage sends a structured error response with an
// additional human-readable message
func RespondWithErrorMessage(w http.ResponseWriter, statusCode int, errMsg, message string) {
	respond(w, statusCode, ErrorResponse{
		Success: false,
		Error:   errMsg,
		Message: message,
	})
}

// RespondWithValidationErrors sends a 400 carrying one {field, message} entry
// per violated constraint
func RespondWithValidationErrors(w http.ResponseWriter, errors []ValidationError) {
	respond(w, http.StatusBadRequest, ErrorResponse{
		Success: false,
		Error:   "validation failed",
		Details: errors,
	})
}

// RespondWithJSON sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	respond(w, statusCode, payload)
}

func respond(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// ErrorHandlingMiddleware catches panics and converts them to 500 errors
func ErrorHandlingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("Panic recovered",
						zap.Any("error", err),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
					)

					RespondWithError(w, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
