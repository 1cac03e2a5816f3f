// Package ban реализует HTTP-обработчик блокировки IP-адреса.
//
// Маршрут защищен ролью admin на уровне middleware. Повторная блокировка
// того же адреса идемпотентна.
package ban

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/intrusion-monitor/internal/http/middlewarectx"
	"github.com/magabrotheeeer/intrusion-monitor/internal/http/response"
	"github.com/magabrotheeeer/intrusion-monitor/internal/lib/sl"
)

// Request — структура входных данных блокировки.
type Request struct {
	IPAddress string `json:"ip_address" validate:"required,ip"`
}

// Service описывает интерфейс бизнес-логики блокировки.
type Service interface {
	Ban(ctx context.Context, ipAddress, bannedBy string) error
}

// Handler обрабатывает HTTP-запросы блокировки IP-адресов.
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
// @Summary Блокировка IP-адреса
// @Description Добавляет IP-адрес в список заблокированных. Доступно только администратору.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body Request true "Блокируемый адрес"
// @Success 200 {object} response.Response "Адрес заблокирован"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или адрес"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /admin/ban [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.ban"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("ip address is required"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	email, _ := r.Context().Value(middlewarectx.Email).(string)
	if err := h.service.Ban(r.Context(), req.IPAddress, email); err != nil {
		log.Error("failed to ban ip", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("server error during ban"))
		return
	}

	log.Info("ip banned", slog.String("ip_address", req.IPAddress), slog.String("by", email))
	render.JSON(w, r, response.OK(fmt.Sprintf("ip %s has been banned successfully", req.IPAddress)))
}
