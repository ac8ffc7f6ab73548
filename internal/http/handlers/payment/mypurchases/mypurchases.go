// Package mypurchases реализует HTTP-обработчик истории покупок PDF пользователя.
package mypurchases

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

// Service описывает интерфейс чтения истории покупок пользователя.
type Service interface {
	MyPurchases(ctx context.Context, userUID string) ([]*models.PdfPurchase, error)
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
// @Summary История покупок PDF
// @Description Возвращает покупки PDF текущего пользователя, новые первыми.
// @Tags Payments
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Список покупок пользователя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при чтении покупок"
// @Router /payment/my-purchases [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.mypurchases"

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

	purchases, err := h.service.MyPurchases(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list user purchases", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list purchases"))
		return
	}

	log.Info("user purchases listed",
		slog.String("user_uid", userUID), slog.Int("count", len(purchases)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"purchases": purchases,
	}))
}
