// Package pdfmarketplace собирает сервис витрины PDF: хранилище, кеш,
// брокер событий, бизнес-сервисы и HTTP-сервер.
package pdfmarketplace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"pdf-marketplace/internal/cache"
	"pdf-marketplace/internal/config"
	"pdf-marketplace/internal/lib/jwt"
	"pdf-marketplace/internal/lib/rabbitmq"
	"pdf-marketplace/internal/migrations"
	"pdf-marketplace/internal/razorpay"
	authservice "pdf-marketplace/internal/services/auth"
	customerservice "pdf-marketplace/internal/services/customer"
	downloadservice "pdf-marketplace/internal/services/download"
	favoriteservice "pdf-marketplace/internal/services/favorite"
	paymentservice "pdf-marketplace/internal/services/payment"
	productservice "pdf-marketplace/internal/services/product"
	subscriptionservice "pdf-marketplace/internal/services/subscription"
	"pdf-marketplace/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	events *rabbitmq.Publisher
}

func waitForDB(db *repository.Storage) error {
	for range 10 {
		err := repository.CheckDatabaseReady(db)
		if err == nil {
			return nil
		}
		time.Sleep(3 * time.Second)
	}
	return fmt.Errorf("database not ready after retries")
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}
	if err = waitForDB(db); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	// Пустой URL брокера отключает публикацию событий, сервис при этом
	// остается полностью рабочим.
	var events *rabbitmq.Publisher
	var subEvents subscriptionservice.EventPublisher
	var payEvents paymentservice.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		events, err = rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			return nil, err
		}
		subEvents = events
		payEvents = events
	}

	jwtMaker := jwt.NewMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.TokenTTL)
	razorpayClient := razorpay.NewClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)

	authService := authservice.New(db, jwtMaker, logger)
	productService := productservice.New(db, cacheRedis, logger)
	subscriptionService := subscriptionservice.New(db, subEvents, logger)
	paymentService := paymentservice.New(razorpayClient, db, payEvents, logger)
	downloadService := downloadservice.New(db, logger)
	favoriteService := favoriteservice.New(db, logger)
	customerService := customerservice.New(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, Services{
		Auth:         authService,
		Product:      productService,
		Subscription: subscriptionService,
		Payment:      paymentService,
		Download:     downloadService,
		Favorite:     favoriteService,
		Customer:     customerService,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		events: events,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.events != nil {
			a.events.Close()
		}
		a.db.DB.Close()
		return err
	}
}
