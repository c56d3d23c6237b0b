package http

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/light-bringer/inventory-service/internal/app/inventory/domain"
)

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Status    int    `json:"status"`
	Title     string `json:"title"`
	Detail    string `json:"detail,omitempty"`
	Entity    string `json:"entityName,omitempty"`
	ErrorKey  string `json:"errorKey,omitempty"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// writeError maps domain errors to HTTP statuses. Unknown errors are logged
// and reported without detail.
func writeError(w http.ResponseWriter, r *http.Request, log zerolog.Logger, err error) {
	resp := errorResponse{RequestID: requestIDFrom(r.Context())}

	var (
		validation *domain.ValidationError
		conflict   *domain.ConflictError
		notFound   *domain.NotFoundError
	)
	switch {
	case errors.As(err, &validation):
		resp.Status = http.StatusBadRequest
		resp.Title = "Bad Request"
		resp.Detail = validation.Error()
		resp.Entity = string(validation.Entity)
		resp.ErrorKey = "validation"
		resp.Field = validation.Field

	case errors.As(err, &conflict):
		resp.Status = http.StatusBadRequest
		resp.Title = "Bad Request"
		resp.Detail = conflict.Error()
		resp.Entity = string(conflict.Entity)
		resp.ErrorKey = conflict.Reason

	case errors.As(err, &notFound):
		resp.Status = http.StatusNotFound
		resp.Title = "Not Found"
		resp.Detail = notFound.Error()
		resp.Entity = string(notFound.Entity)

	default:
		log.Error().Err(err).Str("request_id", resp.RequestID).Str("url", r.URL.String()).Msg("request failed")
		resp.Status = http.StatusInternalServerError
		resp.Title = "Internal Server Error"
	}

	writeJSON(w, resp.Status, resp)
}

func badRequest(w http.ResponseWriter, r *http.Request, detail string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Status:    http.StatusBadRequest,
		Title:     "Bad Request",
		Detail:    detail,
		RequestID: requestIDFrom(r.Context()),
	})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{
		Status:    http.StatusNotFound,
		Title:     "Not Found",
		RequestID: requestIDFrom(r.Context()),
	})
}
