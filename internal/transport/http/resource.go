package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// entityService is the facade shape shared by every entity.
type entityService[E any, P any] interface {
	Create(ctx context.Context, e *E) (*E, error)
	Update(ctx context.Context, id int64, e *E) (*E, error)
	PartialUpdate(ctx context.Context, id int64, patch *P) (*E, error)
	FindAll(ctx context.Context) ([]*E, error)
	FindOne(ctx context.Context, id int64) (*E, error)
	Delete(ctx context.Context, id int64) error
}

// resource serves the CRUD routes of one entity under base.
type resource[E any, P any] struct {
	svc  entityService[E, P]
	base string
	id   func(*E) int64
	log  zerolog.Logger
}

func (h *resource[E, P]) mount(r chi.Router, list http.HandlerFunc) {
	if list == nil {
		list = h.list
	}
	r.Post("/", h.create)
	r.Get("/", list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Patch("/{id}", h.patch)
	r.Delete("/{id}", h.delete)
}

func (h *resource[E, P]) create(w http.ResponseWriter, r *http.Request) {
	var in E
	if err := decodeJSON(r, &in); err != nil {
		badRequest(w, r, err.Error())
		return
	}
	out, err := h.svc.Create(r.Context(), &in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("%s/%d", h.base, h.id(out)))
	writeJSON(w, http.StatusCreated, out)
}

func (h *resource[E, P]) list(w http.ResponseWriter, r *http.Request) {
	all, err := h.svc.FindAll(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if all == nil {
		all = []*E{}
	}
	writeJSON(w, http.StatusOK, all)
}

func (h *resource[E, P]) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	e, err := h.svc.FindOne(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if e == nil {
		notFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *resource[E, P]) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	var in E
	if err := decodeJSON(r, &in); err != nil {
		badRequest(w, r, err.Error())
		return
	}
	out, err := h.svc.Update(r.Context(), id, &in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// patch applies a sparse body. Fields left out of the body keep their value,
// fields sent as null are cleared.
func (h *resource[E, P]) patch(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	if !patchContentType(r) {
		writeJSON(w, http.StatusUnsupportedMediaType, errorResponse{
			Status:    http.StatusUnsupportedMediaType,
			Title:     "Unsupported Media Type",
			RequestID: requestIDFrom(r.Context()),
		})
		return
	}
	var patch P
	if err := decodeJSON(r, &patch); err != nil {
		badRequest(w, r, err.Error())
		return
	}
	out, err := h.svc.PartialUpdate(r.Context(), id, &patch)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if out == nil {
		notFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *resource[E, P]) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
