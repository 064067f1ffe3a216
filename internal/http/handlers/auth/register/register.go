// Package register реализует HTTP-обработчик регистрации пользователей.
//
// Обработчик декодирует JSON, валидирует поля и делегирует создание
// пользователя сервису аутентификации. При успехе возвращается JSON
// с сообщением и JWT нового пользователя.
package register

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/wheretodine/internal/http/response"
	"github.com/magabrotheeeer/wheretodine/internal/lib/sl"
	"github.com/magabrotheeeer/wheretodine/internal/storage/repository"
)

// Request — входные данные для регистрации.
// Пароль в лог не попадает: тело запроса не логируется целиком.
type Request struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// Response — ответ с токеном нового пользователя.
type Response struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Handler обрабатывает HTTP-запросы регистрации.
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
// @Summary Регистрация пользователя
// @Description Создает пользователя и возвращает JWT. Имя пользователя должно быть уникальным.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные нового пользователя"
// @Success 200 {object} Response "Пользователь создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 409 {object} response.ErrorResponse "Имя пользователя занято"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("username", req.Username))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	token, err := h.service.Register(r.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			log.Error("username already taken", slog.String("username", req.Username))
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("username already taken"))
			return
		}
		log.Error("registration failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register user"))
		return
	}

	log.Info("user registered", slog.String("username", req.Username))
	render.JSON(w, r, Response{
		Message: "User registered successfully!",
		Token:   token,
	})
}
