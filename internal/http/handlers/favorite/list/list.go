// Package list реализует HTTP-обработчик чтения избранных товаров.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"pdf-marketplace/internal/http/middlewarectx"
	"pdf-marketplace/internal/http/response"
	"pdf-marketplace/internal/lib/sl"
	"pdf-marketplace/internal/models"
)

// Service описывает интерфейс чтения избранного.
type Service interface {
	List(ctx context.Context, userUID string) ([]*models.Product, error)
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
// @Summary Получить избранное
// @Description Возвращает товары из избранного текущего пользователя.
// @Tags Favorites
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Список товаров"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /favorites [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.favorite.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok {
		log.Error("missing user uid in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	products, err := h.service.List(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list favorites", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list favorites"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"products": products,
	}))
}
