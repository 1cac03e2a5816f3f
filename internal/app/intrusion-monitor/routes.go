// Package intrusionmonitor предоставляет маршруты для основного приложения.
package intrusionmonitor

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/intrusion-monitor/internal/http/handlers/admin/ban"
	"github.com/magabrotheeeer/intrusion-monitor/internal/http/handlers/admin/purge"
	"github.com/magabrotheeeer/intrusion-monitor/internal/http/handlers/auth/signin"
	"github.com/magabrotheeeer/intrusion-monitor/internal/http/handlers/auth/signup"
	"github.com/magabrotheeeer/intrusion-monitor/internal/http/handlers/event/health"
	"github.com/magabrotheeeer/intrusion-monitor/internal/http/handlers/event/ingest"
	"github.com/magabrotheeeer/intrusion-monitor/internal/http/handlers/event/list"
	"github.com/magabrotheeeer/intrusion-monitor/internal/http/handlers/event/updatestatus"
	"github.com/magabrotheeeer/intrusion-monitor/internal/http/handlers/user/profile"
	"github.com/magabrotheeeer/intrusion-monitor/internal/http/middlewarectx"
	"github.com/magabrotheeeer/intrusion-monitor/internal/models"
	authservice "github.com/magabrotheeeer/intrusion-monitor/internal/services/auth"
	eventservice "github.com/magabrotheeeer/intrusion-monitor/internal/services/event"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.AuthService, eventService *eventservice.EventService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/health", health.New())
		r.Post("/auth/signup", signup.New(logger, authService).ServeHTTP)
		r.Post("/auth/signin", signin.New(logger, authService).ServeHTTP)
		r.With(middlewarectx.RateLimitMiddleware(logger)).
			Post("/ingest", ingest.New(logger, eventService).ServeHTTP)
		r.Get("/logs", list.New(logger, eventService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Get("/user/profile", profile.New(logger, authService).ServeHTTP)
			r.Put("/logs/{id}/status", updatestatus.New(logger, eventService).ServeHTTP)

			// Операции, требующие роли admin
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRoleMiddleware(models.RoleAdmin, logger))
				r.Delete("/admin/purge", purge.New(logger, eventService).ServeHTTP)
				r.Post("/admin/ban", ban.New(logger, eventService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
