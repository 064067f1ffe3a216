// Package logout реализует HTTP-обработчик выхода из системы.
//
// Токены не хранятся на сервере, поэтому у выхода нет серверного эффекта:
// обработчик только подтверждает, что клиенту пора удалить токен у себя.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

// Response — подтверждение выхода.
type Response struct {
	Message string `json:"message"`
}

// Handler обрабатывает HTTP-запросы выхода.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Выход пользователя
// @Description Подтверждает выход. Токен удаляется на стороне клиента.
// @Tags Auth
// @Produce  json
// @Success 200 {object} Response "Выход подтвержден"
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	).Info("logout acknowledged")

	render.JSON(w, r, Response{Message: "Logged out successfully"})
}
