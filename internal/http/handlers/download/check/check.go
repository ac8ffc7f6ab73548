// Package check реализует HTTP-обработчик проверки права на скачивание PDF.
//
// Обработчик только читает состояние квоты и никогда не изменяет счётчик.
package check

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"pdf-marketplace/internal/http/middlewarectx"
	"pdf-marketplace/internal/http/response"
	"pdf-marketplace/internal/lib/sl"
	"pdf-marketplace/internal/services/download"
	"pdf-marketplace/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики проверки квоты.
type Service interface {
	Check(ctx context.Context, userUID string) (*download.Status, error)
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
// @Summary Проверить квоту на скачивание
// @Description Возвращает текущий план, счётчик скачиваний и лимит. При исчерпанной квоте отвечает 403.
// @Tags Download
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Скачивание разрешено"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} map[string]any "Лимит скачиваний исчерпан"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Router /download-check [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.download.check"

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

	status, err := h.service.Check(r.Context(), userUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Info("user not found", slog.String("user_uid", userUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to check download quota", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to check download quota"))
		return
	}

	data := map[string]any{
		"success":       status.Allowed,
		"plan":          status.Plan,
		"downloadCount": status.DownloadCount,
		"limit":         status.Limit,
	}
	if !status.Allowed {
		data["message"] = "Download limit reached. Upgrade your plan to continue downloading."
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, data)
		return
	}

	log.Info("download allowed",
		slog.String("user_uid", userUID), slog.Int("count", status.DownloadCount))
	render.JSON(w, r, data)
}
