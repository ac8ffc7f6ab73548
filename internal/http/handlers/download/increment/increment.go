// Package increment реализует HTTP-обработчик фиксации скачивания PDF.
//
// Инкремент счётчика выполняется хранилищем атомарно с проверкой лимита,
// поэтому две параллельные фиксации на последнем слоте не пройдут обе.
package increment

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

// Service описывает интерфейс бизнес-логики учёта скачиваний.
type Service interface {
	Record(ctx context.Context, userUID string) (*download.Status, error)
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
// @Summary Зафиксировать скачивание
// @Description Атомарно увеличивает счётчик скачиваний. При исчерпанном лимите отвечает 403.
// @Tags Download
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Новое значение счётчика"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Лимит скачиваний исчерпан"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Router /download-check/increment [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.download.increment"

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

	status, err := h.service.Record(r.Context(), userUID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrQuotaExceeded):
			log.Info("download quota exceeded", slog.String("user_uid", userUID))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("download limit reached"))
		case errors.Is(err, repository.ErrNotFound):
			log.Info("user not found", slog.String("user_uid", userUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		default:
			log.Error("failed to record download", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to record download"))
		}
		return
	}

	log.Info("download recorded",
		slog.String("user_uid", userUID), slog.Int("count", status.DownloadCount))
	// Счётчик отдаётся на верхнем уровне, клиент читает downloadCount напрямую.
	render.JSON(w, r, map[string]any{
		"success":       true,
		"downloadCount": status.DownloadCount,
	})
}
