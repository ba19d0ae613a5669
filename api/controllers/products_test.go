package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/contactlearncert-blip/dianda-store/internal/catalog"
	"github.com/contactlearncert-blip/dianda-store/pkg/pagination"
)

type stubCatalogService struct {
	products []catalog.Product
}

func (s *stubCatalogService) Load(context.Context) error { return nil }

func (s *stubCatalogService) Products() []catalog.Product { return s.products }

func (s *stubCatalogService) FindByID(id int) (catalog.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return catalog.Product{}, false
}

func (s *stubCatalogService) List(input catalog.ListInput) catalog.ListResult {
	size := pagination.NormalizeSize(input.PageSize)
	page := pagination.NormalizePage(input.Page)
	start, end := pagination.Bounds(page, size, len(s.products))
	return catalog.ListResult{
		Products:  s.products[start:end],
		Category:  input.Category,
		Page:      page,
		PageCount: pagination.PageCount(len(s.products), size),
		Total:     len(s.products),
	}
}

func (s *stubCatalogService) Ping(context.Context) error { return nil }

func testCatalogService() *stubCatalogService {
	return &stubCatalogService{products: []catalog.Product{
		{ID: 1, Name: "Lampe dorée", Price: 18000, Category: "Décoration"},
		{ID: 2, Name: "Sac en cuir", Price: 25000, Category: "Accessoires"},
	}}
}

func detailRequest(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/products/"+id, nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestProductDetail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ProductDetail(testCatalogService(), nil).ServeHTTP(rec, detailRequest("2"))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var envelope struct {
			Data catalog.Product `json:"data"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
			t.Fatalf("decoding: %v", err)
		}
		if envelope.Data.Name != "Sac en cuir" {
			t.Fatalf("product = %+v", envelope.Data)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ProductDetail(testCatalogService(), nil).ServeHTTP(rec, detailRequest("42"))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("non-numeric id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ProductDetail(testCatalogService(), nil).ServeHTTP(rec, detailRequest("lamp"))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("nil service", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ProductDetail(nil, nil).ServeHTTP(rec, detailRequest("1"))
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}

func TestProductListQueryValidation(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		ProductList(testCatalogService(), nil).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}

		var envelope struct {
			Data catalog.ListResult `json:"data"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
			t.Fatalf("decoding: %v", err)
		}
		if envelope.Data.Page != 1 || envelope.Data.Category != catalog.CategoryAll {
			t.Fatalf("unexpected defaults: %+v", envelope.Data)
		}
	})

	t.Run("rejects non-numeric page", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/products?page=deux", nil)
		ProductList(testCatalogService(), nil).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("rejects oversized page size", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/products?size=5000", nil)
		ProductList(testCatalogService(), nil).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
