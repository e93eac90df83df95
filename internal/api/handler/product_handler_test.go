package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/spar-shoe/storefront-api/internal/core/domain"
	"github.com/spar-shoe/storefront-api/internal/core/ports"
)

type stubCatalogService struct {
	createFn func(ctx context.Context, p *domain.Product) (*domain.Product, error)
	getFn    func(ctx context.Context, id string) (*domain.Product, error)
	listFn   func(ctx context.Context, filter ports.ProductFilter) ([]domain.Product, error)
	updateFn func(ctx context.Context, id string, p *domain.Product) (*domain.Product, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubCatalogService) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	return s.createFn(ctx, p)
}

func (s *stubCatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.getFn(ctx, id)
}

func (s *stubCatalogService) List(ctx context.Context, filter ports.ProductFilter) ([]domain.Product, error) {
	return s.listFn(ctx, filter)
}

func (s *stubCatalogService) Update(ctx context.Context, id string, p *domain.Product) (*domain.Product, error) {
	return s.updateFn(ctx, id, p)
}

func (s *stubCatalogService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func asAdmin(c echo.Context) {
	c.Set("user_id", "admin1")
	c.Set("role", domain.RoleAdmin)
}

func TestProductHandler_List_PassesFilter(t *testing.T) {
	e := newTestEcho()
	stub := &stubCatalogService{
		listFn: func(ctx context.Context, filter ports.ProductFilter) ([]domain.Product, error) {
			if filter.Category != "boots" || filter.Search != "leather" {
				t.Fatalf("unexpected filter: %+v", filter)
			}
			return []domain.Product{{ID: "p1", Name: "Chelsea Boot", Price: 120}}, nil
		},
	}
	h := NewProductHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/products?category=boots&search=leather", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var out []productResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(out) != 1 || out[0].ID != "p1" {
		t.Fatalf("unexpected body: %+v", out)
	}
}

func TestProductHandler_List_EmptyIsArray(t *testing.T) {
	e := newTestEcho()
	stub := &stubCatalogService{
		listFn: func(ctx context.Context, filter ports.ProductFilter) ([]domain.Product, error) {
			return nil, nil
		},
	}
	h := NewProductHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Fatalf("expected empty json array, got %s", body)
	}
}

func TestProductHandler_Get_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubCatalogService{
		getFn: func(ctx context.Context, id string) (*domain.Product, error) {
			return nil, domain.ErrProductNotFound
		},
	}
	h := NewProductHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/products/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.Get(c); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound to propagate, got %v", err)
	}
}

func TestProductHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubCatalogService{
		createFn: func(ctx context.Context, p *domain.Product) (*domain.Product, error) {
			if p.Name != "Runner" || p.Price != 89.90 {
				t.Fatalf("unexpected product: %+v", p)
			}
			p.ID = "p1"
			return p, nil
		},
	}
	h := NewProductHandler(stub)

	body := strings.NewReader(`{"name":"Runner","description":"road shoe","category":"running","price":89.90}`)
	req := httptest.NewRequest(http.MethodPost, "/products", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	asAdmin(c)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp productResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != "p1" || resp.Name != "Runner" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestProductHandler_Create_NoIdentity(t *testing.T) {
	e := newTestEcho()
	stub := &stubCatalogService{
		createFn: func(ctx context.Context, p *domain.Product) (*domain.Product, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewProductHandler(stub)

	body := strings.NewReader(`{"name":"Runner","price":89.90}`)
	req := httptest.NewRequest(http.MethodPost, "/products", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestProductHandler_Create_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubCatalogService{
		createFn: func(ctx context.Context, p *domain.Product) (*domain.Product, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewProductHandler(stub)

	body := strings.NewReader(`{"description":"no name or price"}`)
	req := httptest.NewRequest(http.MethodPost, "/products", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	asAdmin(c)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestProductHandler_Update_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubCatalogService{
		updateFn: func(ctx context.Context, id string, p *domain.Product) (*domain.Product, error) {
			if id != "p1" {
				t.Fatalf("unexpected id: %s", id)
			}
			p.ID = id
			return p, nil
		},
	}
	h := NewProductHandler(stub)

	body := strings.NewReader(`{"name":"Runner v2","description":"road shoe","category":"running","price":99.90}`)
	req := httptest.NewRequest(http.MethodPut, "/products/p1", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	asAdmin(c)

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProductHandler_Delete(t *testing.T) {
	e := newTestEcho()
	deleted := ""
	stub := &stubCatalogService{
		deleteFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	h := NewProductHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/products/p1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	asAdmin(c)

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if deleted != "p1" {
		t.Fatalf("expected delete of p1, got %q", deleted)
	}
}
