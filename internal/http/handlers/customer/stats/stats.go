// Package stats реализует HTTP-обработчик агрегатов по клиентам.
package stats

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

// Service описывает интерфейс чтения агрегатов.
type Service interface {
	Stats(ctx context.Context) (*models.CustomerStats, error)
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
// @Summary Статистика по клиентам
// @Description Возвращает количество клиентов по статусам и суммарную выручку. Только для администратора.
// @Tags Customers
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Агрегаты"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Router /customers/stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.customer.stats"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	stats, err := h.service.Stats(r.Context())
	if err != nil {
		log.Error("failed to read customer stats", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read customer stats"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"stats": stats,
	}))
}
