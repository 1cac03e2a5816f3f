// Package ingest реализует HTTP-обработчик приема событий вторжения.
//
// События с заблокированных IP-адресов отклоняются с кодом 403 до записи в журнал.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/intrusion-monitor/internal/http/response"
	"github.com/magabrotheeeer/intrusion-monitor/internal/lib/sl"
	"github.com/magabrotheeeer/intrusion-monitor/internal/models"
	eventservice "github.com/magabrotheeeer/intrusion-monitor/internal/services/event"
)

// Request — структура входных данных события вторжения.
type Request struct {
	SourceIP   string `json:"source_ip" validate:"required,ip"`
	AttackType string `json:"attack_type" validate:"required"`
	Severity   string `json:"severity" validate:"required"`
}

// Service описывает интерфейс бизнес-логики приема событий.
type Service interface {
	Ingest(ctx context.Context, entry models.AttackLog) (*models.AttackLog, error)
}

// Handler обрабатывает HTTP-запросы приема событий.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Прием события вторжения
// @Description Регистрирует событие в журнале атак. События с заблокированных адресов отклоняются.
// @Tags Events
// @Accept  json
// @Produce  json
// @Param request body Request true "Событие вторжения"
// @Success 200 {object} response.Response "Событие зарегистрировано"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 403 {object} response.ErrorResponse "Адрес заблокирован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /ingest [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.ingest"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	entry := models.AttackLog{
		SourceIP:   req.SourceIP,
		AttackType: req.AttackType,
		Severity:   req.Severity,
	}
	created, err := h.service.Ingest(r.Context(), entry)
	if err != nil {
		if errors.Is(err, eventservice.ErrIPBanned) {
			log.Info("blocked attack from banned ip", slog.String("source_ip", req.SourceIP))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("connection refused by security policy"))
			return
		}
		log.Error("failed to ingest event", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("server error"))
		return
	}

	render.JSON(w, r, response.OKWithData(created))
}
