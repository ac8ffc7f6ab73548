// Package purchases реализует HTTP-обработчик отчёта о покупках подписок
// для админ-консоли.
package purchases

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

// Service описывает интерфейс чтения покупок подписок.
type Service interface {
	ListPurchases(ctx context.Context) ([]*models.PurchaseInfo, error)
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
// @Summary Список покупок подписок
// @Description Возвращает покупки подписок всех пользователей с описанием возможностей планов. Только для администратора.
// @Tags Payments
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Список покупок"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Router /payment/purchases [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.purchases"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	purchases, err := h.service.ListPurchases(r.Context())
	if err != nil {
		log.Error("failed to list purchases", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list purchases"))
		return
	}

	log.Info("purchases listed", slog.Int("count", len(purchases)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"purchases": purchases,
	}))
}
