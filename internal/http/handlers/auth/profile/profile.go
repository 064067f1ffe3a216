// Package profile реализует HTTP-обработчик чтения профиля пользователя.
//
// Идентичность берется из контекста, заполненного JWT middleware. Ответ
// содержит только публичные поля: хэш пароля наружу не отдается никогда.
package profile

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/wheretodine/internal/http/middlewarectx"
	"github.com/magabrotheeeer/wheretodine/internal/http/response"
	"github.com/magabrotheeeer/wheretodine/internal/lib/sl"
	"github.com/magabrotheeeer/wheretodine/internal/models"
	"github.com/magabrotheeeer/wheretodine/internal/storage/repository"
)

// Response — публичные поля профиля.
type Response struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// Service описывает интерфейс бизнес-логики чтения профиля.
type Service interface {
	Profile(ctx context.Context, userUID string) (*models.User, error)
}

// Handler обрабатывает HTTP-запросы профиля.
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
// @Summary Профиль пользователя
// @Description Возвращает публичные данные пользователя из токена.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} Response "Профиль"
// @Failure 401 {object} response.ErrorResponse "Нет или невалидный токен"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /profile [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.profile"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("useruid not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	user, err := h.service.Profile(r.Context(), userUID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			log.Error("user not found", slog.String("useruid", userUID))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to load profile", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	render.JSON(w, r, Response{
		Username: user.Username,
		Email:    user.Email,
	})
}
