package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Pesokrava/market_ledger/internal/config"
	"github.com/Pesokrava/market_ledger/internal/delivery/http/handler"
	"github.com/Pesokrava/market_ledger/internal/delivery/http/middleware"
	"github.com/Pesokrava/market_ledger/internal/delivery/http/response"
	"github.com/Pesokrava/market_ledger/internal/pkg/logger"
	"github.com/Pesokrava/market_ledger/internal/usecase/market"
)

// Router holds HTTP handlers and router configuration
type Router struct {
	storeHandler    *handler.StoreHandler
	productHandler  *handler.ProductHandler
	discountHandler *handler.DiscountHandler
	orderHandler    *handler.OrderHandler
	tokenHandler    *handler.TokenHandler
	service         *market.Service
	logger          *logger.Logger
	cfg             *config.Config
}

// NewRouter creates a new HTTP router around the market service
func NewRouter(service *market.Service, cfg *config.Config, log *logger.Logger) *Router {
	return &Router{
		storeHandler:    handler.NewStoreHandler(service, log),
		productHandler:  handler.NewProductHandler(service, log),
		discountHandler: handler.NewDiscountHandler(service, log),
		orderHandler:    handler.NewOrderHandler(service, log),
		tokenHandler:    handler.NewTokenHandler(service, log),
		service:         service,
		logger:          log,
		cfg:             cfg,
	}
}

// Setup configures and returns the HTTP router.
// The rate limiter's cleanup loop stops when ctx is done.
func (rt *Router) Setup(ctx context.Context) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logger(rt.logger))
	if rt.cfg.RateLimit.RPS > 0 {
		r.Use(middleware.NewRateLimiter(ctx, rt.cfg.RateLimit.RPS, rt.cfg.RateLimit.Burst).Middleware)
	}
	if rt.cfg.Server.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(rt.cfg.Server.RequestTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept", "Content-Type",
			middleware.PrincipalHeader, handler.IdempotencyKeyHeader, middleware.RequestIDHeader,
		},
		ExposedHeaders:   []string{middleware.RequestIDHeader, handler.ReplayedHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", rt.healthCheck)
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Principal())

		r.Get("/store", rt.storeHandler.GetStore)
		r.Put("/store", rt.storeHandler.UpdateStore)

		r.Route("/managers", func(r chi.Router) {
			r.Get("/", rt.storeHandler.ListManagers)
			r.Post("/", rt.storeHandler.AddManager)
			r.Delete("/{principal}", rt.storeHandler.RemoveManager)
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", rt.productHandler.Create)
			r.Get("/", rt.productHandler.List)
			r.Get("/{id}", rt.productHandler.GetByID)
			r.Put("/{id}", rt.productHandler.Update)
			r.Delete("/{id}", rt.productHandler.Delete)
			r.Get("/{id}/inventory", rt.productHandler.GetInventory)
			r.Put("/{id}/inventory", rt.productHandler.SetInventory)
			r.Get("/{id}/price", rt.productHandler.GetPrice)
			r.Get("/{id}/nft", rt.productHandler.GetNFT)
			r.Put("/{id}/nft", rt.productHandler.SetNFT)
		})

		r.Route("/discounts", func(r chi.Router) {
			r.Post("/", rt.discountHandler.Create)
			r.Get("/{id}", rt.discountHandler.GetByID)
			r.Put("/{id}", rt.discountHandler.Update)
			r.Post("/{id}/deactivate", rt.discountHandler.Deactivate)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", rt.orderHandler.Place)
			r.Get("/", rt.orderHandler.List)
			r.Get("/{id}", rt.orderHandler.GetByID)
			r.Post("/{id}/cancel", rt.orderHandler.Cancel)
			r.Post("/{id}/mint", rt.orderHandler.Mint)
		})

		r.Get("/nft/contract", rt.tokenHandler.GetContract)
		r.Put("/nft/contract", rt.tokenHandler.SetContract)

		r.Route("/tokens", func(r chi.Router) {
			r.Post("/", rt.tokenHandler.Mint)
			r.Get("/last", rt.tokenHandler.LastTokenID)
			r.Get("/{id}", rt.tokenHandler.GetByID)
			r.Put("/{id}/uri", rt.tokenHandler.SetURI)
			r.Post("/{id}/transfer", rt.tokenHandler.Transfer)
		})

		r.Route("/logs", func(r chi.Router) {
			r.Get("/last", rt.storeHandler.LastLog)
			r.Get("/nonce", rt.storeHandler.LogNonce)
		})
	})

	return r
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"height": rt.service.Height(),
	})
}
