// Package getlist реализует HTTP-обработчик чтения пользовательского списка
// заведений. Один обработчик обслуживает оба списка: имя списка задается
// при создании и определяет ключ ответа.
package getlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/wheretodine/internal/http/middlewarectx"
	"github.com/magabrotheeeer/wheretodine/internal/http/response"
	"github.com/magabrotheeeer/wheretodine/internal/lib/sl"
	"github.com/magabrotheeeer/wheretodine/internal/models"
)

// Service описывает интерфейс бизнес-логики чтения списков.
type Service interface {
	GetList(ctx context.Context, username string, list models.ListName) ([]string, error)
}

// Handler обрабатывает HTTP-запросы чтения списка.
type Handler struct {
	log     *slog.Logger
	service Service
	list    models.ListName
}

// New создает обработчик для заданного списка.
func New(log *slog.Logger, service Service, list models.ListName) *Handler {
	return &Handler{
		log:     log,
		service: service,
		list:    list,
	}
}

// ServeHTTP godoc
// @Summary Список заведений пользователя
// @Description Возвращает избранные заведения или список "посетить позже". Пустой список — не ошибка.
// @Tags Lists
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string][]string "Содержимое списка"
// @Failure 401 {object} response.ErrorResponse "Нет или невалидный токен"
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /get-favorites [get]
// @Router /get-visit-later [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.lists.getlist"

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

	items, err := h.service.GetList(r.Context(), username, h.list)
	if err != nil {
		log.Error("failed to read list", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("database error"))
		return
	}

	log.Info("list read", slog.Int("count", len(items)))
	render.JSON(w, r, map[string][]string{
		h.list.JSONKey(): items,
	})
}
