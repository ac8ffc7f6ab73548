package check

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pdf-marketplace/internal/http/middlewarectx"
	"pdf-marketplace/internal/services/download"
	"pdf-marketplace/internal/storage/repository"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Check(ctx context.Context, userUID string) (*download.Status, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*download.Status), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCheckHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		withUserUID    bool
		setupMocks     func(s *MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "download allowed",
			withUserUID: true,
			setupMocks: func(s *MockService) {
				s.On("Check", mock.Anything, "user123").Return(&download.Status{
					Allowed:       true,
					Plan:          "basic",
					DownloadCount: 3,
					Limit:         5,
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true,"plan":"basic","downloadCount":3,"limit":5}`,
		},
		{
			name:        "quota exhausted",
			withUserUID: true,
			setupMocks: func(s *MockService) {
				s.On("Check", mock.Anything, "user123").Return(&download.Status{
					Allowed:       false,
					Plan:          "free",
					DownloadCount: 2,
					Limit:         2,
				}, nil).Once()
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"success":false,"plan":"free","downloadCount":2,"limit":2,"message":"Download limit reached. Upgrade your plan to continue downloading."}`,
		},
		{
			name:        "premium unlimited",
			withUserUID: true,
			setupMocks: func(s *MockService) {
				s.On("Check", mock.Anything, "user123").Return(&download.Status{
					Allowed:       true,
					Plan:          "premium",
					DownloadCount: 120,
					Limit:         -1,
					Unlimited:     true,
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true,"plan":"premium","downloadCount":120,"limit":-1}`,
		},
		{
			name:           "missing user uid",
			withUserUID:    false,
			setupMocks:     func(*MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:        "user not found",
			withUserUID: true,
			setupMocks: func(s *MockService) {
				s.On("Check", mock.Anything, "user123").
					Return(nil, repository.ErrNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"user not found"}`,
		},
		{
			name:        "storage error",
			withUserUID: true,
			setupMocks: func(s *MockService) {
				s.On("Check", mock.Anything, "user123").
					Return(nil, errors.New("db error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to check download quota"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			handler := New(newNoopLogger(), service)

			tt.setupMocks(service)

			req := httptest.NewRequest(http.MethodPost, "/api/download-check", nil)
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "req-id")
			if tt.withUserUID {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, "user123")
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())

			service.AssertExpectations(t)
		})
	}
}
