package middlewarectx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf-marketplace/internal/lib/jwt"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestJWTMiddleware(t *testing.T) {
	maker := jwt.NewMaker("test-secret", time.Hour)
	token, err := maker.GenerateToken("uid-1", "alice", "user")
	require.NoError(t, err)

	expiredMaker := jwt.NewMaker("test-secret", -time.Minute)
	expired, err := expiredMaker.GenerateToken("uid-1", "alice", "user")
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantNext   bool
	}{
		{"валидный токен", "Bearer " + token, http.StatusOK, true},
		{"нет заголовка", "", http.StatusUnauthorized, false},
		{"без префикса Bearer", token, http.StatusUnauthorized, false},
		{"просроченный токен", "Bearer " + expired, http.StatusUnauthorized, false},
		{"мусор вместо токена", "Bearer garbage", http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				assert.Equal(t, "uid-1", r.Context().Value(UserUID))
				assert.Equal(t, "user", r.Context().Value(Role))
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			JWTMiddleware(maker, newNoopLogger())(next).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
		})
	}
}

func TestAdminOnlyMiddleware(t *testing.T) {
	maker := jwt.NewMaker("test-secret", time.Hour)

	makeToken := func(role string) string {
		token, err := maker.GenerateToken("uid-1", "alice", role)
		require.NoError(t, err)
		return token
	}

	tests := []struct {
		name       string
		role       string
		wantStatus int
	}{
		{"админ проходит", "admin", http.StatusOK},
		{"обычный пользователь получает 403", "user", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+makeToken(tt.role))
			w := httptest.NewRecorder()

			chain := JWTMiddleware(maker, newNoopLogger())(AdminOnlyMiddleware(newNoopLogger())(next))
			chain.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
