package myplan

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
	"pdf-marketplace/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) CurrentPlan(ctx context.Context, userUID string) (*models.Subscription, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestMyPlanHandler_ServeHTTP(t *testing.T) {
	current := &models.Subscription{
		ID:       42,
		UserUID:  "user123",
		PlanName: "basic",
		Amount:   49.75,
		Status:   models.SubscriptionActive,
	}

	tests := []struct {
		name           string
		withUserUID    bool
		setupMocks     func(s *MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "active plan under plan key",
			withUserUID: true,
			setupMocks: func(s *MockService) {
				s.On("CurrentPlan", mock.Anything, "user123").
					Return(current, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"plan":{"id":42,"user_uid":"user123","plan_name":"basic","amount":49.75,"start_date":"0001-01-01T00:00:00Z","expiry_date":"0001-01-01T00:00:00Z","status":"active"}}`,
		},
		{
			name:        "no active plan returns null",
			withUserUID: true,
			setupMocks: func(s *MockService) {
				s.On("CurrentPlan", mock.Anything, "user123").
					Return(nil, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"plan":null}`,
		},
		{
			name:           "missing user uid",
			withUserUID:    false,
			setupMocks:     func(*MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:        "storage error",
			withUserUID: true,
			setupMocks: func(s *MockService) {
				s.On("CurrentPlan", mock.Anything, "user123").
					Return(nil, errors.New("db error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to read current plan"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			handler := New(newNoopLogger(), service)

			tt.setupMocks(service)

			req := httptest.NewRequest(http.MethodGet, "/api/subscriptions/my-plan", nil)

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
