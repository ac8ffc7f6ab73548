// Package toggle реализует HTTP-обработчик переключения товара в избранном.
package toggle

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"pdf-marketplace/internal/http/middlewarectx"
	"pdf-marketplace/internal/http/response"
	"pdf-marketplace/internal/lib/sl"
)

// Request — товар для переключения в избранном.
type Request struct {
	PdfID int `json:"pdfId" validate:"required,gt=0"`
}

// Service описывает интерфейс бизнес-логики избранного.
type Service interface {
	Toggle(ctx context.Context, userUID string, productID int) ([]int, error)
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Переключить избранное
// @Description Добавляет товар в избранное или убирает его, если он уже там. Возвращает новый набор ID.
// @Tags Favorites
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "ID товара"
// @Success 200 {object} map[string]any "Текущий набор избранного"
// @Failure 400 {object} response.ErrorResponse "Некорректные данные"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /favorites/toggle [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.favorite.toggle"

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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	ids, err := h.service.Toggle(r.Context(), userUID, req.PdfID)
	if err != nil {
		log.Error("failed to toggle favorite", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to toggle favorite"))
		return
	}

	log.Info("favorite toggled",
		slog.String("user_uid", userUID), slog.Int("product_id", req.PdfID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"favorites": ids,
	}))
}
