// Package list реализует HTTP-обработчик выдачи журнала атак.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/intrusion-monitor/internal/http/response"
	"github.com/magabrotheeeer/intrusion-monitor/internal/lib/sl"
	"github.com/magabrotheeeer/intrusion-monitor/internal/models"
)

// Service описывает интерфейс бизнес-логики выдачи журнала.
type Service interface {
	ListLogs(ctx context.Context) ([]*models.AttackLog, error)
}

// Handler обрабатывает HTTP-запросы списка событий.
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
// @Summary Журнал атак
// @Description Возвращает все события журнала, новые первыми.
// @Tags Events
// @Produce  json
// @Success 200 {object} response.Response "Список событий"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /logs [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	logs, err := h.service.ListLogs(r.Context())
	if err != nil {
		log.Error("failed to list logs", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("server error"))
		return
	}
	// Пустой журнал отдается как [], а не как отсутствующее поле data.
	if logs == nil {
		logs = []*models.AttackLog{}
	}

	render.JSON(w, r, response.OKWithData(logs))
}
