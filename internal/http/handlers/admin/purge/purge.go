// Package purge реализует HTTP-обработчик полной очистки журнала атак.
//
// Маршрут защищен ролью admin на уровне middleware, поэтому обработчик
// предполагает уже авторизованного администратора.
package purge

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/intrusion-monitor/internal/http/middlewarectx"
	"github.com/magabrotheeeer/intrusion-monitor/internal/http/response"
	"github.com/magabrotheeeer/intrusion-monitor/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики очистки журнала.
type Service interface {
	Purge(ctx context.Context) error
}

// Handler обрабатывает HTTP-запросы очистки журнала.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Очистка журнала атак
// @Description Полностью удаляет все события журнала. Доступно только администратору.
// @Tags Admin
// @Produce  json
// @Success 200 {object} response.Response "Журнал очищен"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /admin/purge [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.purge"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := h.service.Purge(r.Context()); err != nil {
		log.Error("failed to purge logs", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("server error during purge"))
		return
	}

	email, _ := r.Context().Value(middlewarectx.Email).(string)
	log.Info("all logs purged", slog.String("by", email))
	render.JSON(w, r, response.OK("all logs purged successfully"))
}
