package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"ecommerce-api/internal/domain"
	customersvc "ecommerce-api/internal/service/customer"
	ordersvc "ecommerce-api/internal/service/order"
	productsvc "ecommerce-api/internal/service/product"
)

type stubCustomerRepo struct {
	created   *domain.Customer
	createErr error
	got       *domain.Customer
	getErr    error
	list      []domain.Customer
	listErr   error
	updated   *domain.Customer
	updateErr error
	deleteErr error
}

func (s *stubCustomerRepo) Create(_ context.Context, _ domain.Customer) (*domain.Customer, error) {
	return s.created, s.createErr
}

func (s *stubCustomerRepo) GetByID(_ context.Context, _ int64) (*domain.Customer, error) {
	return s.got, s.getErr
}

func (s *stubCustomerRepo) List(_ context.Context) ([]domain.Customer, error) {
	return s.list, s.listErr
}

func (s *stubCustomerRepo) Update(_ context.Context, _ domain.Customer) (*domain.Customer, error) {
	return s.updated, s.updateErr
}

func (s *stubCustomerRepo) Delete(_ context.Context, _ int64) error {
	return s.deleteErr
}

type stubProductRepo struct {
	created   *domain.Product
	createErr error
	got       *domain.Product
	getErr    error
	list      []domain.Product
	listErr   error
	updated   *domain.Product
	updateErr error
	deleteErr error
}

func (s *stubProductRepo) Create(_ context.Context, _ domain.Product) (*domain.Product, error) {
	return s.created, s.createErr
}

func (s *stubProductRepo) GetByID(_ context.Context, _ int64) (*domain.Product, error) {
	return s.got, s.getErr
}

func (s *stubProductRepo) List(_ context.Context) ([]domain.Product, error) {
	return s.list, s.listErr
}

func (s *stubProductRepo) Update(_ context.Context, _ domain.Product) (*domain.Product, error) {
	return s.updated, s.updateErr
}

func (s *stubProductRepo) Delete(_ context.Context, _ int64) error {
	return s.deleteErr
}

type stubOrderRepo struct {
	created       *domain.Order
	createErr     error
	got           *domain.Order
	getErr        error
	deleteErr     error
	byCustomer    []domain.Order
	byCustomerErr error
	addResult     *domain.Order
	addErr        error
	removeErr     error
	products      []domain.Product
	productsErr   error
}

func (s *stubOrderRepo) Create(_ context.Context, _ int64) (*domain.Order, error) {
	return s.created, s.createErr
}

func (s *stubOrderRepo) GetByID(_ context.Context, _ int64) (*domain.Order, error) {
	return s.got, s.getErr
}

func (s *stubOrderRepo) Delete(_ context.Context, _ int64) error {
	return s.deleteErr
}

func (s *stubOrderRepo) ListByCustomer(_ context.Context, _ int64) ([]domain.Order, error) {
	return s.byCustomer, s.byCustomerErr
}

func (s *stubOrderRepo) AddProduct(_ context.Context, _, _ int64) (*domain.Order, error) {
	return s.addResult, s.addErr
}

func (s *stubOrderRepo) RemoveProduct(_ context.Context, _, _ int64) error {
	return s.removeErr
}

func (s *stubOrderRepo) ListProducts(_ context.Context, _ int64) ([]domain.Product, error) {
	return s.products, s.productsErr
}

func testRouter(customers *stubCustomerRepo, products *stubProductRepo, orders *stubOrderRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if customers == nil {
		customers = &stubCustomerRepo{}
	}
	if products == nil {
		products = &stubProductRepo{}
	}
	if orders == nil {
		orders = &stubOrderRepo{}
	}
	logger := log.New(io.Discard, "", 0)
	return buildRouter(logger, nil, Deps{
		CustomerSvc: customersvc.New(customers),
		ProductSvc:  productsvc.New(products),
		OrderSvc:    ordersvc.New(orders),
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateCustomer_Success(t *testing.T) {
	repo := &stubCustomerRepo{created: &domain.Customer{ID: 1, Name: "Ana", Address: "1 Main St", Email: "ana@x.com"}}
	router := testRouter(repo, nil, nil)

	rec := doJSON(t, router, http.MethodPost, "/customers", `{"name":"Ana","address":"1 Main St","email":"ana@x.com"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var got domain.Customer
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != 1 || got.Email != "ana@x.com" {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestCreateCustomer_MissingField(t *testing.T) {
	router := testRouter(nil, nil, nil)

	rec := doJSON(t, router, http.MethodPost, "/customers", `{"name":"Ana","email":"ana@x.com"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestCreateCustomer_DuplicateEmail(t *testing.T) {
	repo := &stubCustomerRepo{createErr: domain.Validation("email", "already in use")}
	router := testRouter(repo, nil, nil)

	rec := doJSON(t, router, http.MethodPost, "/customers", `{"name":"Bo","address":"2 Side St","email":"ana@x.com"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "email") {
		t.Fatalf("expected email in body, got %s", rec.Body.String())
	}
}

func TestGetCustomer_NotFound(t *testing.T) {
	repo := &stubCustomerRepo{getErr: domain.ErrNotFound}
	router := testRouter(repo, nil, nil)

	rec := doJSON(t, router, http.MethodGet, "/customers/9", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestGetCustomer_BadID(t *testing.T) {
	router := testRouter(nil, nil, nil)

	rec := doJSON(t, router, http.MethodGet, "/customers/abc", "")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestDeleteCustomer_WithOrders(t *testing.T) {
	repo := &stubCustomerRepo{deleteErr: domain.ErrConflict}
	router := testRouter(repo, nil, nil)

	rec := doJSON(t, router, http.MethodDelete, "/customers/1", "")

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
}

func TestListCustomerOrders_Empty(t *testing.T) {
	orders := &stubOrderRepo{byCustomer: []domain.Order{}}
	router := testRouter(nil, nil, orders)

	rec := doJSON(t, router, http.MethodGet, "/customers/5/orders", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

func TestCreateProduct_NegativePrice(t *testing.T) {
	router := testRouter(nil, nil, nil)

	rec := doJSON(t, router, http.MethodPost, "/products", `{"name":"Widget","price":-1}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestDeleteProduct_Referenced(t *testing.T) {
	repo := &stubProductRepo{deleteErr: domain.ErrConflict}
	router := testRouter(nil, repo, nil)

	rec := doJSON(t, router, http.MethodDelete, "/products/3", "")

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
}

func TestCreateOrder_UnknownCustomer(t *testing.T) {
	orders := &stubOrderRepo{createErr: domain.ErrNotFound}
	router := testRouter(nil, nil, orders)

	rec := doJSON(t, router, http.MethodPost, "/orders", `{"customerId":42}`)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestCreateOrder_Success(t *testing.T) {
	orders := &stubOrderRepo{created: &domain.Order{ID: 1, CustomerID: 1, ProductIDs: []int64{}}}
	router := testRouter(nil, nil, orders)

	rec := doJSON(t, router, http.MethodPost, "/orders", `{"customerId":1}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var got domain.Order
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != 1 || len(got.ProductIDs) != 0 {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestAddOrderProduct_ReturnsOrder(t *testing.T) {
	orders := &stubOrderRepo{addResult: &domain.Order{ID: 1, CustomerID: 1, ProductIDs: []int64{5}}}
	router := testRouter(nil, nil, orders)

	rec := doJSON(t, router, http.MethodPost, "/orders/1/products/5", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var got domain.Order
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got.ProductIDs) != 1 || got.ProductIDs[0] != 5 {
		t.Fatalf("unexpected product set: %v", got.ProductIDs)
	}
}

func TestRemoveOrderProduct_NoopSuccess(t *testing.T) {
	orders := &stubOrderRepo{}
	router := testRouter(nil, nil, orders)

	rec := doJSON(t, router, http.MethodDelete, "/orders/1/products/5", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestGetOrder_StorageUnavailable(t *testing.T) {
	orders := &stubOrderRepo{getErr: domain.ErrStorageUnavailable}
	router := testRouter(nil, nil, orders)

	rec := doJSON(t, router, http.MethodGet, "/orders/1", "")

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
}

func TestReadyz_NoDB(t *testing.T) {
	router := testRouter(nil, nil, nil)

	rec := doJSON(t, router, http.MethodGet, "/readyz", "")

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	router := testRouter(nil, nil, nil)

	rec := doJSON(t, router, http.MethodGet, "/healthz", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}
