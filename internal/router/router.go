package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-storefront/internal/config"
	"go-storefront/internal/handler"
	"go-storefront/internal/middleware"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	Product *handler.ProductHandler
	Merch   *handler.MerchHandler
	News    *handler.NewsHandler
	Health  http.HandlerFunc
}

// New builds the route table. Gating is declared here and nowhere else:
// every mutation route goes through RequireAuth and RequireAdmin.
func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, handlers Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)

	if handlers.Health != nil {
		r.Get("/health", handlers.Health)
	}

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", handlers.Auth.Register)
			auth.Post("/login", handlers.Auth.Login)
			auth.With(authMiddleware.RequireAuth).Get("/me", handlers.Auth.Me)
		})

		admin := []func(http.Handler) http.Handler{authMiddleware.RequireAuth, authMiddleware.RequireAdmin}

		api.Route("/products", func(products chi.Router) {
			products.Get("/", handlers.Product.List)
			products.Get("/{id}", handlers.Product.Get)
			products.With(admin...).Post("/", handlers.Product.Create)
			products.With(admin...).Put("/{id}", handlers.Product.Update)
			products.With(admin...).Delete("/{id}", handlers.Product.Delete)
		})

		api.Route("/merch", func(merch chi.Router) {
			merch.Get("/", handlers.Merch.List)
			merch.Get("/{id}", handlers.Merch.Get)
			merch.With(admin...).Post("/", handlers.Merch.Create)
			merch.With(admin...).Put("/{id}", handlers.Merch.Update)
			merch.With(admin...).Delete("/{id}", handlers.Merch.Delete)
		})

		api.Route("/news", func(news chi.Router) {
			news.Get("/", handlers.News.List)
			news.Get("/{id}", handlers.News.Get)
			news.With(admin...).Post("/", handlers.News.Create)
			news.With(admin...).Put("/{id}", handlers.News.Update)
			news.With(admin...).Delete("/{id}", handlers.News.Delete)
		})
	})

	return r
}
