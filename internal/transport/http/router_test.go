package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/inventory-service/internal/app/inventory/domain"
	"github.com/light-bringer/inventory-service/internal/app/inventory/loader"
	"github.com/light-bringer/inventory-service/internal/app/inventory/relations"
	"github.com/light-bringer/inventory-service/internal/app/inventory/service"
	"github.com/light-bringer/inventory-service/internal/pkg/logger"
	"github.com/light-bringer/inventory-service/tests/testutil"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	clk := testutil.NewMockClock()
	deps := service.Deps{
		Store: testutil.NewSQLiteStore(t),
		Clock: clk,
		Log:   logger.Nop(),
	}
	sync := relations.NewSynchronizer(clk)
	router := NewRouter(Services{
		Products:     service.NewProductService(deps, sync),
		ProductCodes: service.NewProductCodeService(deps, sync),
		Categories:   service.NewCategoryService(deps, sync),
		Packagings:   service.NewPackagingService(deps, sync),
		Catalogs:     service.NewCatalogService(deps, sync, loader.NewCatalogLoader()),
	}, logger.Nop())

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, contentType string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func createProduct(t *testing.T, srv *httptest.Server, name string) domain.Product {
	t.Helper()
	resp := do(t, srv, http.MethodPost, "/api/v1/products", contentTypeJSON, map[string]any{
		"name":        name,
		"type":        "DRUG",
		"storageType": "SHELF",
		"price":       "9.99",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[domain.Product](t, resp)
}

func TestRouter_ProductLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodPost, "/api/v1/products", contentTypeJSON, map[string]any{
		"name":        "Aspirin",
		"company":     "Acme",
		"type":        "MEDICINE",
		"storageType": "DRAWERS",
		"price":       "4.25",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[domain.Product](t, resp)
	require.NotZero(t, created.ID)
	assert.Equal(t, fmt.Sprintf("/api/v1/products/%d", created.ID), resp.Header.Get("Location"))

	path := fmt.Sprintf("/api/v1/products/%d", created.ID)

	resp = do(t, srv, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[domain.Product](t, resp)
	assert.Equal(t, "Aspirin", got.Name)

	resp = do(t, srv, http.MethodPatch, path, contentTypeMergePatch, fmt.Sprintf(`{"id":%d,"company":null,"status":"LOCKED"}`, created.ID))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	patched := decode[domain.Product](t, resp)
	assert.Equal(t, "Aspirin", patched.Name)
	assert.Empty(t, patched.Company)
	assert.Equal(t, domain.ProductLocked, patched.Status)

	resp = do(t, srv, http.MethodGet, "/api/v1/products", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]domain.Product](t, resp), 1)

	resp = do(t, srv, http.MethodDelete, path, "", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = do(t, srv, http.MethodDelete, path, "", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_ErrorMapping(t *testing.T) {
	srv := newTestServer(t)
	p := createProduct(t, srv, "Aspirin")

	tests := []struct {
		name        string
		method      string
		path        string
		contentType string
		body        any
		wantStatus  int
		wantKey     string
	}{
		{
			name:        "create with id",
			method:      http.MethodPost,
			path:        "/api/v1/products",
			contentType: contentTypeJSON,
			body:        map[string]any{"id": 7, "name": "x", "type": "NA", "storageType": "SHELF", "price": "1"},
			wantStatus:  http.StatusBadRequest,
			wantKey:     domain.ReasonIDExists,
		},
		{
			name:        "update with mismatched id",
			method:      http.MethodPut,
			path:        fmt.Sprintf("/api/v1/products/%d", p.ID),
			contentType: contentTypeJSON,
			body:        map[string]any{"id": p.ID + 1, "name": "x", "type": "NA", "storageType": "SHELF", "price": "1"},
			wantStatus:  http.StatusBadRequest,
			wantKey:     domain.ReasonIDInvalid,
		},
		{
			name:        "update without id",
			method:      http.MethodPut,
			path:        fmt.Sprintf("/api/v1/products/%d", p.ID),
			contentType: contentTypeJSON,
			body:        map[string]any{"name": "x", "type": "NA", "storageType": "SHELF", "price": "1"},
			wantStatus:  http.StatusBadRequest,
			wantKey:     domain.ReasonIDNull,
		},
		{
			name:        "negative price",
			method:      http.MethodPost,
			path:        "/api/v1/products",
			contentType: contentTypeJSON,
			body:        map[string]any{"name": "x", "type": "NA", "storageType": "SHELF", "price": "-1"},
			wantStatus:  http.StatusBadRequest,
			wantKey:     "validation",
		},
		{
			name:        "unknown update target",
			method:      http.MethodPut,
			path:        "/api/v1/products/404",
			contentType: contentTypeJSON,
			body:        map[string]any{"id": 404, "name": "x", "type": "NA", "storageType": "SHELF", "price": "1"},
			wantStatus:  http.StatusNotFound,
		},
		{
			name:        "patch unknown id",
			method:      http.MethodPatch,
			path:        "/api/v1/products/404",
			contentType: contentTypeJSON,
			body:        map[string]any{"id": 404, "name": "x"},
			wantStatus:  http.StatusNotFound,
		},
		{
			name:        "patch with unsupported content type",
			method:      http.MethodPatch,
			path:        fmt.Sprintf("/api/v1/products/%d", p.ID),
			contentType: "text/plain",
			body:        "name=x",
			wantStatus:  http.StatusUnsupportedMediaType,
		},
		{
			name:        "malformed body",
			method:      http.MethodPost,
			path:        "/api/v1/categories",
			contentType: contentTypeJSON,
			body:        "{",
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:       "malformed id",
			method:     http.MethodGet,
			path:       "/api/v1/categories/abc",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:        "catalog without code",
			method:      http.MethodPost,
			path:        "/api/v1/catalogs",
			contentType: contentTypeJSON,
			body:        map[string]any{"status": "ACTIVE"},
			wantStatus:  http.StatusBadRequest,
			wantKey:     "validation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, srv, tt.method, tt.path, tt.contentType, tt.body)
			require.Equal(t, tt.wantStatus, resp.StatusCode)

			body := decode[errorResponse](t, resp)
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, tt.wantKey, body.ErrorKey)
			assert.NotEmpty(t, body.RequestID)
		})
	}
}

func TestRouter_RequestID(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodGet, "/healthz", "", nil)
	assert.NotEmpty(t, resp.Header.Get(HeaderRequestID))

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set(HeaderRequestID, "abc-123")
	resp, err = srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get(HeaderRequestID))
}

func TestRouter_CatalogPagingAndMembership(t *testing.T) {
	srv := newTestServer(t)

	products := make([]domain.Product, 0, 3)
	for _, name := range []string{"A", "B", "C"} {
		products = append(products, createProduct(t, srv, name))
	}

	var catalogIDs []int64
	for _, code := range []string{"SPRING", "SUMMER", "AUTUMN"} {
		resp := do(t, srv, http.MethodPost, "/api/v1/catalogs", contentTypeJSON, map[string]any{
			"code":     code,
			"status":   "ACTIVE",
			"products": []map[string]any{{"id": products[0].ID}, {"id": products[1].ID}},
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		catalogIDs = append(catalogIDs, decode[domain.Catalog](t, resp).ID)
	}

	resp := do(t, srv, http.MethodGet, "/api/v1/catalogs?page=1&size=2", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "3", resp.Header.Get(HeaderTotalCount))
	page := decode[[]domain.Catalog](t, resp)
	require.Len(t, page, 1)
	assert.Equal(t, catalogIDs[2], page[0].ID)
	assert.Len(t, page[0].Products, 2)

	membership := fmt.Sprintf("/api/v1/catalogs/%d/products/%d", catalogIDs[0], products[2].ID)
	resp = do(t, srv, http.MethodPut, membership, "", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = do(t, srv, http.MethodPut, membership, "", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, fmt.Sprintf("/api/v1/catalogs/%d", catalogIDs[0]), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[domain.Catalog](t, resp).Products, 3)

	resp = do(t, srv, http.MethodGet, fmt.Sprintf("/api/v1/products/%d/catalogs", products[2].ID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []int64{catalogIDs[0]}, decode[[]int64](t, resp))

	resp = do(t, srv, http.MethodDelete, membership, "", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, srv, http.MethodPut, fmt.Sprintf("/api/v1/catalogs/%d/products/404", catalogIDs[0]), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/api/v1/catalogs", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get(HeaderTotalCount))
	assert.Len(t, decode[[]domain.Catalog](t, resp), 3)

	resp = do(t, srv, http.MethodGet, "/api/v1/catalogs?size=0", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, fmt.Sprintf("/api/v1/catalogs?page=%d&size=2", math.MaxInt/2+1), "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_ProductCodesAndMembers(t *testing.T) {
	srv := newTestServer(t)

	var codeIDs []int64
	for _, upc := range []string{"111", "222"} {
		resp := do(t, srv, http.MethodPost, "/api/v1/product-codes", contentTypeJSON, map[string]any{"upc": upc})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		codeIDs = append(codeIDs, decode[domain.ProductCode](t, resp).ID)
	}

	resp := do(t, srv, http.MethodPost, "/api/v1/products", contentTypeJSON, map[string]any{
		"name":          "A",
		"type":          "SPICE",
		"storageType":   "SHELF",
		"price":         "1.50",
		"productCodeId": codeIDs[0],
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	product := decode[domain.Product](t, resp)

	resp = do(t, srv, http.MethodGet, "/api/v1/product-codes?filter=unowned", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	unowned := decode[[]domain.ProductCode](t, resp)
	require.Len(t, unowned, 1)
	assert.Equal(t, codeIDs[1], unowned[0].ID)

	resp = do(t, srv, http.MethodGet, "/api/v1/product-codes?filter=product-is-null", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	unowned = decode[[]domain.ProductCode](t, resp)
	require.Len(t, unowned, 1)
	assert.Equal(t, "222", unowned[0].UPC)

	resp = do(t, srv, http.MethodGet, "/api/v1/product-codes?filter=bogus", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, "/api/v1/packagings", contentTypeJSON, map[string]any{"name": "Box", "quantity": 1})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	box := decode[domain.Packaging](t, resp)

	resp = do(t, srv, http.MethodPut, fmt.Sprintf("/api/v1/packagings/%d/products", box.ID), contentTypeJSON, []int64{product.ID})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, fmt.Sprintf("/api/v1/products/%d", product.ID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[domain.Product](t, resp)
	require.NotNil(t, got.PackagingID)
	assert.Equal(t, box.ID, *got.PackagingID)

	resp = do(t, srv, http.MethodPut, "/api/v1/categories/404/products", contentTypeJSON, []int64{product.ID})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
