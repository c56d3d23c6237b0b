package http

import (
	"context"
	"math"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/light-bringer/inventory-service/internal/app/inventory/contracts"
	"github.com/light-bringer/inventory-service/internal/app/inventory/domain"
)

// HeaderTotalCount carries the number of catalogs across all pages.
const HeaderTotalCount = "X-Total-Count"

const defaultPageSize = 20

const filterProductIsNull = "product-is-null"

// handlers serves the routes beyond plain CRUD.
type handlers struct {
	svc Services
	log zerolog.Logger
}

// productCatalogs handles GET /products/{id}/catalogs.
func (h *handlers) productCatalogs(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	ids, err := h.svc.Products.FindCatalogs(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if ids == nil {
		ids = []int64{}
	}
	writeJSON(w, http.StatusOK, ids)
}

// listProductCodes handles GET /product-codes, optionally with
// ?filter=product-is-null (or its alias unowned).
func (h *handlers) listProductCodes(w http.ResponseWriter, r *http.Request) {
	var (
		codes []*domain.ProductCode
		err   error
	)
	switch filter := r.URL.Query().Get("filter"); filter {
	case "":
		codes, err = h.svc.ProductCodes.FindAll(r.Context())
	case filterProductIsNull, "unowned":
		codes, err = h.svc.ProductCodes.FindAllUnowned(r.Context())
	default:
		badRequest(w, r, "unknown filter "+strconv.Quote(filter))
		return
	}
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if codes == nil {
		codes = []*domain.ProductCode{}
	}
	writeJSON(w, http.StatusOK, codes)
}

// listCatalogs handles GET /catalogs. With page or size set it returns one
// page and the total in X-Total-Count.
func (h *handlers) listCatalogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("page") && !q.Has("size") {
		all, err := h.svc.Catalogs.FindAll(r.Context())
		if err != nil {
			writeError(w, r, h.log, err)
			return
		}
		writeJSON(w, http.StatusOK, all)
		return
	}

	page, err := queryInt(r, "page", 0)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	size, err := queryInt(r, "size", defaultPageSize)
	if err != nil || size == 0 {
		badRequest(w, r, "size must be a positive integer")
		return
	}
	if page > math.MaxInt/size {
		badRequest(w, r, "page out of range")
		return
	}

	items, total, err := h.svc.Catalogs.FindPage(r.Context(), contracts.Page{Offset: page * size, Limit: size})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.Header().Set(HeaderTotalCount, strconv.FormatInt(total, 10))
	writeJSON(w, http.StatusOK, items)
}

// replaceMembers handles PUT /{owner}/{id}/products with a JSON array of product ids.
func (h *handlers) replaceMembers(replace func(ctx context.Context, id int64, productIDs []int64) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			badRequest(w, r, err.Error())
			return
		}
		var productIDs []int64
		if err := decodeJSON(r, &productIDs); err != nil {
			badRequest(w, r, err.Error())
			return
		}
		if err := replace(r.Context(), id, productIDs); err != nil {
			writeError(w, r, h.log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *handlers) attach(w http.ResponseWriter, r *http.Request) {
	h.membership(w, r, h.svc.Catalogs.Attach)
}

func (h *handlers) detach(w http.ResponseWriter, r *http.Request) {
	h.membership(w, r, h.svc.Catalogs.Detach)
}

func (h *handlers) membership(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, catalogID, productID int64) error) {
	catalogID, err := pathID(r, "id")
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	productID, err := pathID(r, "productId")
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	if err := apply(r.Context(), catalogID, productID); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
