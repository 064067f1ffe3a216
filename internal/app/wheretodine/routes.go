// Package wheretodine предоставляет маршруты для основного приложения.
package wheretodine

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/wheretodine/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/wheretodine/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/wheretodine/internal/http/handlers/auth/profile"
	"github.com/magabrotheeeer/wheretodine/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/wheretodine/internal/http/handlers/health"
	"github.com/magabrotheeeer/wheretodine/internal/http/handlers/lists/getlist"
	"github.com/magabrotheeeer/wheretodine/internal/http/handlers/lists/toggle"
	"github.com/magabrotheeeer/wheretodine/internal/http/middlewarectx"
	"github.com/magabrotheeeer/wheretodine/internal/models"
	authservice "github.com/magabrotheeeer/wheretodine/internal/services/auth"
	listsservice "github.com/magabrotheeeer/wheretodine/internal/services/lists"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.AuthService, listsService *listsservice.ListsService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Открытые конечные точки
	r.Post("/register", register.New(logger, authService).ServeHTTP)
	r.Post("/login", login.New(logger, authService).ServeHTTP)
	r.Post("/logout", logout.New(logger).ServeHTTP)
	r.Get("/health", health.New(logger).ServeHTTP)

	// Группа с JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(authService, logger))
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Get("/profile", profile.New(logger, authService).ServeHTTP)
		r.Get("/get-favorites", getlist.New(logger, listsService, models.ListFavorites).ServeHTTP)
		r.Post("/update-favorites", toggle.New(logger, listsService, models.ListFavorites).ServeHTTP)
		r.Get("/get-visit-later", getlist.New(logger, listsService, models.ListVisitLater).ServeHTTP)
		r.Post("/update-visit-later", toggle.New(logger, listsService, models.ListVisitLater).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
