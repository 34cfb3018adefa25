package api

import (
	"log/slog"
	"net/http"

	"github.com/dom/petshop-api/internal/api/handlers"
	"github.com/dom/petshop-api/internal/api/middleware"
	"github.com/dom/petshop-api/internal/config"
	"github.com/dom/petshop-api/internal/ratelimit"
	"github.com/dom/petshop-api/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires every route. A nil limiter disables rate limiting.
func NewRouter(services *service.Services, limiter ratelimit.Limiter, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.Metrics)

	r.Get("/health", handlers.Health)
	r.Handle("/metrics", promhttp.Handler())

	throttle := func(bucket string) func(http.Handler) http.Handler {
		if limiter == nil {
			return func(next http.Handler) http.Handler { return next }
		}
		return middleware.RateLimit(limiter, bucket)
	}
	auth := middleware.Auth(services.Tokens)
	admin := middleware.Admin(services.Tokens)

	userHandler := handlers.NewUserHandler(services.Auth, services.User)
	adminHandler := handlers.NewAdminHandler(services.Auth, services.User)
	categoryHandler := handlers.NewCategoryHandler(services.Category)
	productHandler := handlers.NewProductHandler(services.Product)
	fileHandler := handlers.NewFileHandler(services.File, cfg.MaxUploadBytes())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/bacs-response", handlers.Bacs)

		r.Route("/user", func(r chi.Router) {
			r.Post("/create", userHandler.Create)
			r.With(throttle("login")).Post("/login", userHandler.Login)
			r.With(throttle("forgot-password")).Post("/forgot-password", userHandler.ForgotPassword)
			r.Post("/reset-password-token", userHandler.ResetPassword)

			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Get("/", userHandler.Me)
				r.Delete("/", userHandler.Delete)
				r.Put("/edit", userHandler.Edit)
				r.Get("/logout", userHandler.Logout)
				r.Get("/orders", userHandler.Orders)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.With(throttle("admin-login")).Post("/login", adminHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(admin)
				r.Post("/create", adminHandler.Create)
				r.Get("/logout", adminHandler.Logout)
				r.Get("/user-listing", adminHandler.UserListing)
				r.Put("/user-edit/{uuid}", adminHandler.EditUser)
				r.Delete("/user-delete/{uuid}", adminHandler.DeleteUser)
			})
		})

		// Catalog reads are public
		r.Get("/categories", categoryHandler.List)
		r.Get("/category/{uuid}", categoryHandler.Get)
		r.Get("/products", productHandler.List)
		r.Get("/product/{uuid}", productHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(admin)
			r.Post("/category/create", categoryHandler.Create)
			r.Put("/category/{uuid}", categoryHandler.Update)
			r.Patch("/category/{uuid}", categoryHandler.Update)
			r.Delete("/category/{uuid}", categoryHandler.Delete)
			r.Post("/product/create", productHandler.Create)
			r.Put("/product/{uuid}", productHandler.Update)
			r.Delete("/product/{uuid}", productHandler.Delete)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Post("/file/upload", fileHandler.Upload)
			r.Get("/file/{uuid}", fileHandler.Download)
		})
	})

	return r
}
