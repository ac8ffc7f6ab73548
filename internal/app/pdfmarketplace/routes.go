// Package pdfmarketplace предоставляет маршруты для основного приложения.
package pdfmarketplace

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"pdf-marketplace/internal/http/handlers/auth/login"
	"pdf-marketplace/internal/http/handlers/auth/register"
	customerlist "pdf-marketplace/internal/http/handlers/customer/list"
	customerremove "pdf-marketplace/internal/http/handlers/customer/remove"
	customerstats "pdf-marketplace/internal/http/handlers/customer/stats"
	customerstatus "pdf-marketplace/internal/http/handlers/customer/status"
	downloadcheck "pdf-marketplace/internal/http/handlers/download/check"
	downloadincrement "pdf-marketplace/internal/http/handlers/download/increment"
	favoritelist "pdf-marketplace/internal/http/handlers/favorite/list"
	favoritetoggle "pdf-marketplace/internal/http/handlers/favorite/toggle"
	"pdf-marketplace/internal/http/handlers/payment/mypurchases"
	"pdf-marketplace/internal/http/handlers/payment/ordercreate"
	"pdf-marketplace/internal/http/handlers/payment/purchases"
	"pdf-marketplace/internal/http/handlers/payment/verifypdf"
	productcreate "pdf-marketplace/internal/http/handlers/product/create"
	productlist "pdf-marketplace/internal/http/handlers/product/list"
	productread "pdf-marketplace/internal/http/handlers/product/read"
	productremove "pdf-marketplace/internal/http/handlers/product/remove"
	producttop "pdf-marketplace/internal/http/handlers/product/top"
	productupdate "pdf-marketplace/internal/http/handlers/product/update"
	subscriptionactivate "pdf-marketplace/internal/http/handlers/subscription/activate"
	subscriptionmyplan "pdf-marketplace/internal/http/handlers/subscription/myplan"
	"pdf-marketplace/internal/http/middlewarectx"
	"pdf-marketplace/internal/lib/jwt"
	authservice "pdf-marketplace/internal/services/auth"
	customerservice "pdf-marketplace/internal/services/customer"
	downloadservice "pdf-marketplace/internal/services/download"
	favoriteservice "pdf-marketplace/internal/services/favorite"
	paymentservice "pdf-marketplace/internal/services/payment"
	productservice "pdf-marketplace/internal/services/product"
	subscriptionservice "pdf-marketplace/internal/services/subscription"
)

// Services собирает бизнес-сервисы, которые обслуживают HTTP-маршруты.
type Services struct {
	Auth         *authservice.AuthService
	Product      *productservice.ProductService
	Subscription *subscriptionservice.SubscriptionService
	Payment      *paymentservice.PaymentService
	Download     *downloadservice.DownloadService
	Favorite     *favoriteservice.FavoriteService
	Customer     *customerservice.CustomerService
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker, svc Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, svc.Auth).ServeHTTP)
		r.Post("/auth/login", login.New(logger, svc.Auth).ServeHTTP)
		r.Get("/products", productlist.New(logger, svc.Product).ServeHTTP)
		r.Get("/products/top", producttop.New(logger, svc.Product).ServeHTTP)
		r.Get("/products/{id}", productread.New(logger, svc.Product).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/payment/create-order", ordercreate.New(logger, svc.Payment).ServeHTTP)
			r.Post("/payment/verify-pdf-payment", verifypdf.New(logger, svc.Payment).ServeHTTP)
			r.Get("/payment/my-purchases", mypurchases.New(logger, svc.Payment).ServeHTTP)
			r.Post("/subscriptions/activate", subscriptionactivate.New(logger, svc.Subscription).ServeHTTP)
			r.Get("/subscriptions/my-plan", subscriptionmyplan.New(logger, svc.Subscription).ServeHTTP)
			r.Post("/download-check", downloadcheck.New(logger, svc.Download).ServeHTTP)
			r.Post("/download-check/increment", downloadincrement.New(logger, svc.Download).ServeHTTP)
			r.Post("/favorites/toggle", favoritetoggle.New(logger, svc.Favorite).ServeHTTP)
			r.Get("/favorites", favoritelist.New(logger, svc.Favorite).ServeHTTP)

			// Админ-консоль
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminOnlyMiddleware(logger))

				r.Post("/products", productcreate.New(logger, svc.Product).ServeHTTP)
				r.Put("/products/{id}", productupdate.New(logger, svc.Product).ServeHTTP)
				r.Delete("/products/{id}", productremove.New(logger, svc.Product).ServeHTTP)
				r.Get("/payment/purchases", purchases.New(logger, svc.Subscription).ServeHTTP)
				r.Get("/customers", customerlist.New(logger, svc.Customer).ServeHTTP)
				r.Get("/customers/stats", customerstats.New(logger, svc.Customer).ServeHTTP)
				r.Put("/customers/{id}/status", customerstatus.New(logger, svc.Customer).ServeHTTP)
				r.Delete("/customers/{id}", customerremove.New(logger, svc.Customer).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
