// Package list реализует HTTP-обработчик чтения карточек клиентов
// для админ-консоли.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"pdf-marketplace/internal/http/response"
	"pdf-marketplace/internal/lib/sl"
	"pdf-marketplace/internal/models"
)

// Service описывает интерфейс чтения карточек клиентов.
type Service interface {
	List(ctx context.Context) ([]*models.Customer, error)
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
// @Summary Список клиентов
// @Description Возвращает все карточки клиентов. Только для администратора.
// @Tags Customers
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Список клиентов"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Router /customers [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.customer.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	customers, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list customers", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list customers"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"customers": customers,
	}))
}
