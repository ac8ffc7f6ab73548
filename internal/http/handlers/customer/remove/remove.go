// Package remove реализует HTTP-обработчик удаления карточки клиента.
package remove

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"pdf-marketplace/internal/http/response"
	"pdf-marketplace/internal/lib/sl"
)

// Service описывает интерфейс удаления карточки клиента.
type Service interface {
	Remove(ctx context.Context, id int) (int, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить карточку клиента
// @Description Удаляет карточку клиента по ID. Учётная запись пользователя при этом сохраняется. Только для администратора.
// @Tags Customers
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID карточки"
// @Success 200 {object} map[string]any "Карточка удалена"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 404 {object} response.ErrorResponse "Карточка не найдена"
// @Router /customers/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.customer.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid customer id"))
		return
	}

	count, err := h.service.Remove(r.Context(), id)
	if err != nil {
		log.Error("failed to remove customer", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to remove customer"))
		return
	}
	if count == 0 {
		log.Info("customer not found", slog.Int("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("customer not found"))
		return
	}

	log.Info("customer removed", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"removed": count,
	}))
}
