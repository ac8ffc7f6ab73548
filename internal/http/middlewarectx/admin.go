package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"pdf-marketplace/internal/http/response"
)

// AdminOnlyMiddleware пропускает дальше только пользователей с ролью admin.
// Предполагается, что до него уже отработал JWTMiddleware.
func AdminOnlyMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(Role).(string)
			if !ok || role != "admin" {
				log.Error("access denied, admin only", slog.String("role", role))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("access denied, admin only"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
