package httpserver

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"tailorshop/internal/domain"
	"tailorshop/internal/money"
	attachmentsvc "tailorshop/internal/service/attachment"
	authsvc "tailorshop/internal/service/auth"
	customersvc "tailorshop/internal/service/customer"
	ordersvc "tailorshop/internal/service/order"
	paymentsvc "tailorshop/internal/service/payment"
	trackingsvc "tailorshop/internal/service/tracking"

	"github.com/gin-gonic/gin"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubAuthSvc struct {
	op        *domain.Operator
	signupErr error
	loginErr  error
	lookupErr error
}

func (s *stubAuthSvc) Signup(_ context.Context, _ authsvc.SignupInput) (*domain.Operator, error) {
	return s.op, s.signupErr
}

func (s *stubAuthSvc) Login(_ context.Context, _, _ string) (*domain.Operator, string, string, error) {
	if s.loginErr != nil {
		return nil, "", "", s.loginErr
	}
	return s.op, "access", "refresh", nil
}

func (s *stubAuthSvc) LookupByToken(_ context.Context, _ string) (*domain.Operator, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	return s.op, nil
}

func (s *stubAuthSvc) AccessTTLSeconds() int { return 3600 }

type stubCustomerSvc struct {
	customer *domain.Customer
	err      error
}

func (s *stubCustomerSvc) Create(_ context.Context, _ string, _ customersvc.Input) (*domain.Customer, error) {
	return s.customer, s.err
}

func (s *stubCustomerSvc) Get(_ context.Context, _, _ string) (*domain.Customer, error) {
	return s.customer, s.err
}

func (s *stubCustomerSvc) List(_ context.Context, _ string) ([]domain.Customer, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Customer{*s.customer}, nil
}

func (s *stubCustomerSvc) Update(_ context.Context, _, _ string, _ customersvc.Input) (*domain.Customer, error) {
	return s.customer, s.err
}

func (s *stubCustomerSvc) Delete(_ context.Context, _, _ string) error { return s.err }

type stubOrderSvc struct {
	order *domain.Order
	items []domain.OrderItem
	err   error
}

func (s *stubOrderSvc) Create(_ context.Context, _ string, _ ordersvc.CreateInput) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubOrderSvc) Get(_ context.Context, _, _ string) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubOrderSvc) ListByCustomer(_ context.Context, _, _ string) ([]domain.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Order{*s.order}, nil
}

func (s *stubOrderSvc) Delete(_ context.Context, _, _ string) error { return s.err }

func (s *stubOrderSvc) AddItem(_ context.Context, _, _ string, _ ordersvc.ItemInput) (*domain.OrderItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &s.items[0], nil
}

func (s *stubOrderSvc) RemoveItem(_ context.Context, _, _, _ string) error { return s.err }

func (s *stubOrderSvc) ListItems(_ context.Context, _, _ string) ([]domain.OrderItem, error) {
	return s.items, s.err
}

func (s *stubOrderSvc) SetStatus(_ context.Context, _, _, _ string) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubOrderSvc) SetReadyAt(_ context.Context, _, _ string, _ *time.Time) error { return s.err }

func (s *stubOrderSvc) SetAdjustments(_ context.Context, _, _ string, _ ordersvc.AdjustmentsInput) error {
	return s.err
}

func (s *stubOrderSvc) UpdateDetails(_ context.Context, _, _, _, _ string) error { return s.err }

type stubPaymentSvc struct {
	payment *domain.Payment
	err     error
}

func (s *stubPaymentSvc) Add(_ context.Context, _, _ string, _ paymentsvc.Input) (*domain.Payment, error) {
	return s.payment, s.err
}

func (s *stubPaymentSvc) Reverse(_ context.Context, _, _, _, _ string) (*domain.Payment, error) {
	return s.payment, s.err
}

func (s *stubPaymentSvc) List(_ context.Context, _, _ string) ([]domain.Payment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Payment{*s.payment}, nil
}

type stubBillingSvc struct {
	totals domain.Totals
	err    error
}

func (s *stubBillingSvc) Compute(_ context.Context, _ *domain.Order) (domain.Totals, error) {
	return s.totals, s.err
}

type stubTrackingSvc struct {
	token string
	view  *trackingsvc.PublicOrder
	err   error
}

func (s *stubTrackingSvc) IssueOrRetrieve(_ context.Context, _, _ string) (string, error) {
	return s.token, s.err
}

func (s *stubTrackingSvc) Resolve(_ context.Context, _ string) (*trackingsvc.PublicOrder, error) {
	return s.view, s.err
}

type stubAttachmentSvc struct {
	attachment *domain.Attachment
	listed     []attachmentsvc.WithURL
	err        error
}

func (s *stubAttachmentSvc) Upload(_ context.Context, _, _, _, _ string, _ io.Reader) (*domain.Attachment, error) {
	return s.attachment, s.err
}

func (s *stubAttachmentSvc) List(_ context.Context, _, _ string) ([]attachmentsvc.WithURL, error) {
	return s.listed, s.err
}

func (s *stubAttachmentSvc) Delete(_ context.Context, _, _ string) error { return s.err }

type stubFiles struct {
	ok   bool
	path string
}

func (s *stubFiles) Verify(_, _, _ string) bool { return s.ok }

func (s *stubFiles) Open(_ string) (*os.File, error) {
	if s.path == "" {
		return nil, os.ErrNotExist
	}
	return os.Open(s.path)
}

func mustMoney(t *testing.T, value, currency string) money.Amount {
	t.Helper()
	m, err := money.New(value, currency)
	if err != nil {
		t.Fatalf("money.New(%s, %s): %v", value, currency, err)
	}
	return m
}

func testDeps() Deps {
	op := &domain.Operator{ID: "op-1", Email: "shop@example.com"}
	return Deps{
		AuthSvc:       &stubAuthSvc{op: op},
		CustomerSvc:   &stubCustomerSvc{customer: &domain.Customer{ID: "cust-1", Name: "Amina"}},
		OrderSvc:      &stubOrderSvc{order: &domain.Order{ID: "ord-1", Status: domain.StatusPending, Currency: "KES"}},
		PaymentSvc:    &stubPaymentSvc{payment: &domain.Payment{ID: "pay-1"}},
		BillingSvc:    &stubBillingSvc{},
		TrackingSvc:   &stubTrackingSvc{token: "tok"},
		AttachmentSvc: &stubAttachmentSvc{attachment: &domain.Attachment{ID: "att-1"}},
		Files:         &stubFiles{},
	}
}

func newTestRouter(t *testing.T, deps Deps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t, testDeps())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadyzWithoutDB(t *testing.T) {
	router := newTestRouter(t, testDeps())

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestMissingDependencyRejected(t *testing.T) {
	deps := testDeps()
	deps.BillingSvc = nil
	if _, err := buildRouter(logDiscard(), nil, deps); err == nil {
		t.Fatalf("expected error for missing dependency")
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t, testDeps())

	for _, path := range []string{"/v1/me", "/v1/customers", "/v1/orders/ord-1"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, rec.Code)
		}
	}
}

func TestInvalidTokenRejected(t *testing.T) {
	deps := testDeps()
	deps.AuthSvc = &stubAuthSvc{lookupErr: authsvc.ErrInvalidToken}
	router := newTestRouter(t, deps)

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &domain.ValidationError{Field: "status", Reason: "unknown"}, http.StatusBadRequest},
		{"invalid transition", &domain.InvalidTransitionError{From: domain.StatusPending, To: domain.StatusDelivered}, http.StatusConflict},
		{"invalid state", &domain.InvalidStateError{Status: domain.StatusCancelled}, http.StatusConflict},
		{"currency mismatch", &money.CurrencyMismatchError{Want: "KES", Got: "USD"}, http.StatusConflict},
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"not owner", domain.ErrNotOwner, http.StatusNotFound},
		{"storage", errors.New("connection refused"), http.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			deps := testDeps()
			deps.OrderSvc = &stubOrderSvc{err: tc.err}
			router := newTestRouter(t, deps)

			req := httptest.NewRequest(http.MethodPut, "/v1/orders/ord-1/status",
				strings.NewReader(`{"status":"confirmed"}`))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer token")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d body=%s", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestOwnershipFailureLooksLikeMissing(t *testing.T) {
	deps := testDeps()
	deps.OrderSvc = &stubOrderSvc{err: domain.ErrNotOwner}
	router := newTestRouter(t, deps)

	req := httptest.NewRequest(http.MethodGet, "/v1/orders/ord-1", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not found") {
		t.Fatalf("ownership failure must read as not found, got %s", rec.Body.String())
	}
}

func TestGetOrderIncludesTotals(t *testing.T) {
	deps := testDeps()
	deps.BillingSvc = &stubBillingSvc{totals: domain.Totals{
		Subtotal:      mustMoney(t, "325.50", "KES"),
		ComputedTotal: mustMoney(t, "305.50", "KES"),
		Paid:          mustMoney(t, "200", "KES"),
		Balance:       mustMoney(t, "105.50", "KES"),
	}}
	router := newTestRouter(t, deps)

	req := httptest.NewRequest(http.MethodGet, "/v1/orders/ord-1", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{`"subtotal"`, `"balance"`, `"displayTotal"`, `"105.50"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %s in body: %s", want, body)
		}
	}
}

func TestDeleteOrderNoContent(t *testing.T) {
	router := newTestRouter(t, testDeps())

	req := httptest.NewRequest(http.MethodDelete, "/v1/orders/ord-1", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
