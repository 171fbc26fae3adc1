package router

import (
	"net/http"
	"time"

	"github.com/avasquez/furniture-store-api/internal/api/http/handler"
	"github.com/avasquez/furniture-store-api/internal/api/http/middleware"
	"github.com/avasquez/furniture-store-api/internal/logger"
	"github.com/avasquez/furniture-store-api/internal/model"
	"github.com/avasquez/furniture-store-api/internal/service"
)

// Router wires HTTP handlers and middleware into a request multiplexer.
// Authentication endpoints are open; everything else requires a bearer token.
type Router struct {
	authService    *service.Auth
	catalogService *service.Catalog
	orderService   *service.Order
	tokenService   *service.TokenService
	contextManager model.ContextManager
	requestTimeout time.Duration
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService *service.Auth,
	catalogService *service.Catalog,
	orderService *service.Order,
	tokenService *service.TokenService,
	contextManager model.ContextManager,
	requestTimeout time.Duration,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		catalogService: catalogService,
		orderService:   orderService,
		tokenService:   tokenService,
		contextManager: contextManager,
		requestTimeout: requestTimeout,
		logger:         logger,
	}
}

// Register builds the handler chain and returns the root handler.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	timeout := middleware.NewTimeout(r.requestTimeout)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)

	mux := http.NewServeMux()
	r.registerAuthRoutes(mux)
	r.registerCatalogRoutes(mux, authenticate)
	r.registerOrderRoutes(mux, authenticate)

	return logging.Handle(timeout.Handle(mux))
}

func (r *Router) registerAuthRoutes(mux *http.ServeMux) {
	authHandler := handler.NewAuth(r.authService, r.tokenService, r.logger)

	mux.HandleFunc("POST /api/authentication/register", authHandler.Register)
	mux.HandleFunc("POST /api/authentication/login", authHandler.Login)
	mux.HandleFunc("GET /api/authentication/confirm-email", authHandler.ConfirmEmail)
	mux.HandleFunc("POST /api/authentication/refresh", authHandler.Refresh)
	mux.HandleFunc("POST /api/authentication/revoke", authHandler.Revoke)
}

func (r *Router) registerCatalogRoutes(mux *http.ServeMux, authenticate *middleware.Authenticate) {
	productHandler := handler.NewProduct(r.catalogService, r.logger)
	categoryHandler := handler.NewCategory(r.catalogService, r.logger)

	guard := func(h http.HandlerFunc) http.Handler {
		return authenticate.Handle(h)
	}

	mux.Handle("POST /api/products", guard(productHandler.Create))
	mux.Handle("GET /api/products", guard(productHandler.List))
	mux.Handle("GET /api/products/{id}", guard(productHandler.Get))
	mux.Handle("PUT /api/products/{id}", guard(productHandler.Update))
	mux.Handle("DELETE /api/products/{id}", guard(productHandler.Delete))
	mux.Handle("GET /api/products/category/{categoryId}", guard(productHandler.ListByCategory))
	mux.Handle("PUT /api/products/{id}/image", guard(productHandler.UploadImage))
	mux.Handle("GET /api/products/{id}/image", guard(productHandler.DownloadImage))

	mux.Handle("POST /api/product-categories", guard(categoryHandler.Create))
	mux.Handle("GET /api/product-categories", guard(categoryHandler.List))
	mux.Handle("GET /api/product-categories/{id}", guard(categoryHandler.Get))
	mux.Handle("PUT /api/product-categories/{id}", guard(categoryHandler.Update))
	mux.Handle("DELETE /api/product-categories/{id}", guard(categoryHandler.Delete))
}

func (r *Router) registerOrderRoutes(mux *http.ServeMux, authenticate *middleware.Authenticate) {
	orderHandler := handler.NewOrder(r.orderService, r.contextManager, r.logger)

	guard := func(h http.HandlerFunc) http.Handler {
		return authenticate.Handle(h)
	}

	mux.Handle("POST /api/orders", guard(orderHandler.Create))
	mux.Handle("GET /api/orders", guard(orderHandler.List))
	mux.Handle("GET /api/orders/{id}", guard(orderHandler.Get))
	mux.Handle("PUT /api/orders/{id}", guard(orderHandler.Update))
	mux.Handle("DELETE /api/orders/{id}", guard(orderHandler.Delete))
}
