// Package top реализует HTTP-обработчик чтения самых продаваемых товаров.
package top

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"pdf-marketplace/internal/http/response"
	"pdf-marketplace/internal/lib/sl"
	"pdf-marketplace/internal/models"
)

// defaultLimit — количество товаров по умолчанию для витрины.
const defaultLimit = 4

// Service описывает интерфейс чтения топа продаж.
type Service interface {
	Top(ctx context.Context, limit int) ([]*models.Product, error)
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
// @Summary Топ продаж
// @Description Возвращает самые продаваемые товары. Количество задается параметром limit.
// @Tags Products
// @Produce  json
// @Param limit query int false "Количество товаров, по умолчанию 4"
// @Success 200 {object} map[string]any "Список товаров"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /products/top [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.top"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			log.Error("invalid limit query param", slog.String("limit", raw))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid limit"))
			return
		}
		limit = parsed
	}

	products, err := h.service.Top(r.Context(), limit)
	if err != nil {
		log.Error("failed to list top products", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list top products"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"products": products,
	}))
}
