package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/intrusion-monitor/internal/http/response"
)

// RequireRoleMiddleware создает middleware, пропускающий только пользователей
// с требуемой ролью. Проверка выполняется строго до вызова обработчика,
// поэтому при отказе никаких побочных эффектов не происходит.
func RequireRoleMiddleware(requiredRole string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireRoleMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			role, ok := r.Context().Value(Role).(string)
			if !ok || role != requiredRole {
				log.Error("access denied", slog.String("role", role),
					slog.String("required_role", requiredRole))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("access denied: admin privileges required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
