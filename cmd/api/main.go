package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"tailorshop/internal/config"
	"tailorshop/internal/db"
	"tailorshop/internal/httpserver"
	"tailorshop/internal/objectstore"
	attachmentrepo "tailorshop/internal/repository/attachment"
	customerrepo "tailorshop/internal/repository/customer"
	operatorrepo "tailorshop/internal/repository/operator"
	orderrepo "tailorshop/internal/repository/order"
	paymentrepo "tailorshop/internal/repository/payment"
	tokenrepo "tailorshop/internal/repository/token"
	attachmentsvc "tailorshop/internal/service/attachment"
	authsvc "tailorshop/internal/service/auth"
	billingsvc "tailorshop/internal/service/billing"
	customersvc "tailorshop/internal/service/customer"
	ordersvc "tailorshop/internal/service/order"
	paymentsvc "tailorshop/internal/service/payment"
	trackingsvc "tailorshop/internal/service/tracking"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	if cfg.FileSigningKey == "" {
		logger.Fatalf("FILE_SIGNING_KEY must be set")
	}

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	store, err := objectstore.New(cfg.UploadDir, cfg.FileURLHost, []byte(cfg.FileSigningKey))
	if err != nil {
		logger.Fatalf("init object store: %v", err)
	}

	operatorRepo := operatorrepo.NewPostgres(dbpool)
	sessionRepo := tokenrepo.NewPostgres(dbpool)
	customerRepo := customerrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool)
	paymentRepo := paymentrepo.NewPostgres(dbpool)
	attachmentRepo := attachmentrepo.NewPostgres(dbpool)

	authService := authsvc.New(operatorRepo, sessionRepo)
	customerService := customersvc.New(customerRepo)
	orderService := ordersvc.New(orderRepo, customerRepo)
	paymentService := paymentsvc.New(paymentRepo, orderRepo)
	billingService := billingsvc.New(paymentRepo)
	attachmentService := attachmentsvc.New(attachmentRepo, orderRepo, store, cfg.SignedURLTTL)
	trackingService := trackingsvc.New(orderRepo, paymentRepo, attachmentRepo, billingService, store, cfg.SignedURLTTL)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		AuthSvc:       authService,
		CustomerSvc:   customerService,
		OrderSvc:      orderService,
		PaymentSvc:    paymentService,
		BillingSvc:    billingService,
		TrackingSvc:   trackingService,
		AttachmentSvc: attachmentService,
		Files:         store,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
