package httpserver

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"tailorshop/internal/domain"
	attachmentsvc "tailorshop/internal/service/attachment"
	authsvc "tailorshop/internal/service/auth"
	customersvc "tailorshop/internal/service/customer"
	ordersvc "tailorshop/internal/service/order"
	paymentsvc "tailorshop/internal/service/payment"
	trackingsvc "tailorshop/internal/service/tracking"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuthService is the operator identity surface the router needs.
type AuthService interface {
	Signup(ctx context.Context, in authsvc.SignupInput) (*domain.Operator, error)
	Login(ctx context.Context, email, password string) (*domain.Operator, string, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.Operator, error)
	AccessTTLSeconds() int
}

// CustomerService manages the operator's customer book.
type CustomerService interface {
	Create(ctx context.Context, operatorID string, in customersvc.Input) (*domain.Customer, error)
	Get(ctx context.Context, operatorID, id string) (*domain.Customer, error)
	List(ctx context.Context, operatorID string) ([]domain.Customer, error)
	Update(ctx context.Context, operatorID, id string, in customersvc.Input) (*domain.Customer, error)
	Delete(ctx context.Context, operatorID, id string) error
}

// OrderService exposes the order ledger and state machine.
type OrderService interface {
	Create(ctx context.Context, operatorID string, in ordersvc.CreateInput) (*domain.Order, error)
	Get(ctx context.Context, operatorID, orderID string) (*domain.Order, error)
	ListByCustomer(ctx context.Context, operatorID, customerID string) ([]domain.Order, error)
	Delete(ctx context.Context, operatorID, orderID string) error
	AddItem(ctx context.Context, operatorID, orderID string, in ordersvc.ItemInput) (*domain.OrderItem, error)
	RemoveItem(ctx context.Context, operatorID, orderID, itemID string) error
	ListItems(ctx context.Context, operatorID, orderID string) ([]domain.OrderItem, error)
	SetStatus(ctx context.Context, operatorID, orderID, status string) (*domain.Order, error)
	SetReadyAt(ctx context.Context, operatorID, orderID string, readyAt *time.Time) error
	SetAdjustments(ctx context.Context, operatorID, orderID string, in ordersvc.AdjustmentsInput) error
	UpdateDetails(ctx context.Context, operatorID, orderID, code, notes string) error
}

// PaymentService is the append-only payment ledger.
type PaymentService interface {
	Add(ctx context.Context, operatorID, orderID string, in paymentsvc.Input) (*domain.Payment, error)
	Reverse(ctx context.Context, operatorID, orderID, paymentID, note string) (*domain.Payment, error)
	List(ctx context.Context, operatorID, orderID string) ([]domain.Payment, error)
}

// BillingService recomputes totals on demand.
type BillingService interface {
	Compute(ctx context.Context, o *domain.Order) (domain.Totals, error)
}

// TrackingService mints tracking tokens and serves the anonymous view.
type TrackingService interface {
	IssueOrRetrieve(ctx context.Context, operatorID, orderID string) (string, error)
	Resolve(ctx context.Context, token string) (*trackingsvc.PublicOrder, error)
}

// AttachmentService mediates stored binaries behind signed URLs.
type AttachmentService interface {
	Upload(ctx context.Context, operatorID, orderID, filename, kind string, r io.Reader) (*domain.Attachment, error)
	List(ctx context.Context, operatorID, orderID string) ([]attachmentsvc.WithURL, error)
	Delete(ctx context.Context, operatorID, attachmentID string) error
}

// FileStore verifies signed links and opens stored objects for download.
type FileStore interface {
	Verify(key, exp, sig string) bool
	Open(key string) (*os.File, error)
}

// Deps bundles everything buildRouter wires into handlers.
type Deps struct {
	AuthSvc       AuthService
	CustomerSvc   CustomerService
	OrderSvc      OrderService
	PaymentSvc    PaymentService
	BillingSvc    BillingService
	TrackingSvc   TrackingService
	AttachmentSvc AttachmentService
	Files         FileStore
}

func (d Deps) validate() error {
	if d.AuthSvc == nil || d.CustomerSvc == nil || d.OrderSvc == nil ||
		d.PaymentSvc == nil || d.BillingSvc == nil || d.TrackingSvc == nil ||
		d.AttachmentSvc == nil || d.Files == nil {
		return errors.New("httpserver: missing dependency")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	// Anonymous surface: token-gated order view and signed file downloads.
	router.GET("/track/:token", trackHandler(deps.TrackingSvc))
	router.GET("/files/:key", fileHandler(deps.Files))

	v1 := router.Group("/v1")
	v1.POST("/signup", signupHandler(deps.AuthSvc))
	v1.POST("/login", loginHandler(deps.AuthSvc))

	authed := v1.Group("")
	authed.Use(authMiddleware(deps.AuthSvc))
	authed.GET("/me", meHandler)

	authed.POST("/customers", createCustomerHandler(deps.CustomerSvc))
	authed.GET("/customers", listCustomersHandler(deps.CustomerSvc))
	authed.GET("/customers/:id", getCustomerHandler(deps.CustomerSvc))
	authed.PUT("/customers/:id", updateCustomerHandler(deps.CustomerSvc))
	authed.DELETE("/customers/:id", deleteCustomerHandler(deps.CustomerSvc))
	authed.GET("/customers/:id/orders", listCustomerOrdersHandler(deps.OrderSvc))

	authed.POST("/orders", createOrderHandler(deps.OrderSvc))
	authed.GET("/orders/:id", getOrderHandler(deps.OrderSvc, deps.BillingSvc))
	authed.DELETE("/orders/:id", deleteOrderHandler(deps.OrderSvc))
	authed.PUT("/orders/:id/status", setStatusHandler(deps.OrderSvc))
	authed.PUT("/orders/:id/ready-at", setReadyAtHandler(deps.OrderSvc))
	authed.PUT("/orders/:id/adjustments", setAdjustmentsHandler(deps.OrderSvc))
	authed.PUT("/orders/:id/details", updateDetailsHandler(deps.OrderSvc))
	authed.GET("/orders/:id/totals", totalsHandler(deps.OrderSvc, deps.BillingSvc))

	authed.POST("/orders/:id/items", addItemHandler(deps.OrderSvc))
	authed.GET("/orders/:id/items", listItemsHandler(deps.OrderSvc))
	authed.DELETE("/orders/:id/items/:itemId", removeItemHandler(deps.OrderSvc))

	authed.POST("/orders/:id/payments", addPaymentHandler(deps.PaymentSvc))
	authed.GET("/orders/:id/payments", listPaymentsHandler(deps.PaymentSvc))
	authed.POST("/orders/:id/payments/:paymentId/reverse", reversePaymentHandler(deps.PaymentSvc))

	authed.POST("/orders/:id/attachments", uploadAttachmentHandler(deps.AttachmentSvc))
	authed.GET("/orders/:id/attachments", listAttachmentsHandler(deps.AttachmentSvc))
	authed.DELETE("/attachments/:id", deleteAttachmentHandler(deps.AttachmentSvc))

	authed.POST("/orders/:id/tracking-token", issueTrackingTokenHandler(deps.TrackingSvc))

	return router, nil
}
