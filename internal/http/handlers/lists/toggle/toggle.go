// Package toggle реализует HTTP-обработчик переключения элемента
// пользовательского списка. Направление операции не задается клиентом,
// а определяется текущим членством: имеющийся элемент удаляется,
// отсутствующий — добавляется. Повторный идентичный запрос переключает
// состояние обратно.
package toggle

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/wheretodine/internal/http/middlewarectx"
	"github.com/magabrotheeeer/wheretodine/internal/http/response"
	"github.com/magabrotheeeer/wheretodine/internal/lib/sl"
	"github.com/magabrotheeeer/wheretodine/internal/models"
	services "github.com/magabrotheeeer/wheretodine/internal/services/lists"
)

// Request — тело запроса с индексом заведения.
type Request struct {
	CafeIndex string `json:"cafeIndex" validate:"required"`
}

// Response — выполненное действие и сообщение для пользователя.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Service описывает интерфейс бизнес-логики переключения.
type Service interface {
	ToggleItem(ctx context.Context, username, item string, list models.ListName) (string, error)
}

// Handler обрабатывает HTTP-запросы переключения элемента списка.
type Handler struct {
	log      *slog.Logger
	service  Service
	list     models.ListName
	validate *validator.Validate
}

// New создает обработчик для заданного списка.
func New(log *slog.Logger, service Service, list models.ListName) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		list:     list,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Переключение элемента списка
// @Description Добавляет заведение в список, если его там нет, иначе удаляет. Ответ отправляется только после подтверждения записи.
// @Tags Lists
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Индекс заведения"
// @Success 200 {object} Response "Выполненное действие: added или removed"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Нет или невалидный токен"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /update-favorites [post]
// @Router /update-visit-later [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.lists.toggle"

	log := h.log.With(
		slog.String("op", op),
		slog.String("list", string(h.list)),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	action, err := h.service.ToggleItem(r.Context(), username, req.CafeIndex, h.list)
	if err != nil {
		log.Error("failed to toggle list item", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("database error"))
		return
	}

	var message string
	if action == services.ActionAdded {
		message = fmt.Sprintf("Cafe added to %s!", h.list.Label())
	} else {
		message = fmt.Sprintf("Cafe removed from %s!", h.list.Label())
	}

	log.Info("list item toggled",
		slog.String("item", req.CafeIndex),
		slog.String("action", action))
	render.JSON(w, r, Response{
		Status:  action,
		Message: message,
	})
}
