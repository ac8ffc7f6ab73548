package activate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
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
	"pdf-marketplace/internal/services/subscription"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Activate(ctx context.Context, userUID, planName string, durationDays int, amount float64) (*models.Subscription, error) {
	args := m.Called(ctx, userUID, planName, durationDays, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestActivateHandler_ServeHTTP(t *testing.T) {
	created := &models.Subscription{
		ID:       42,
		UserUID:  "user123",
		PlanName: "basic",
		Amount:   49.75,
		Status:   models.SubscriptionActive,
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		withUserUID    bool
		setupMocks     func(s *MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "success activate",
			requestBody: Request{PlanName: "basic", DurationDays: 30, Amount: 49.75},
			withUserUID: true,
			setupMocks: func(s *MockService) {
				s.On("Activate", mock.Anything, "user123", "basic", 30, 49.75).
					Return(created, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody: fmt.Sprintf(
				`{"status":"OK","data":{"subscription":{"id":42,"user_uid":"user123","plan_name":"basic","amount":49.75,"start_date":"0001-01-01T00:00:00Z","expiry_date":"0001-01-01T00:00:00Z","status":"%s"}}}`,
				models.SubscriptionActive),
		},
		{
			name:        "raw client body uses planName key",
			requestBody: `{"planName":"basic","durationDays":30,"amount":49.75}`,
			withUserUID: true,
			setupMocks: func(s *MockService) {
				s.On("Activate", mock.Anything, "user123", "basic", 30, 49.75).
					Return(created, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody: fmt.Sprintf(
				`{"status":"OK","data":{"subscription":{"id":42,"user_uid":"user123","plan_name":"basic","amount":49.75,"start_date":"0001-01-01T00:00:00Z","expiry_date":"0001-01-01T00:00:00Z","status":"%s"}}}`,
				models.SubscriptionActive),
		},
		{
			name:           "invalid JSON",
			requestBody:    "not a json",
			withUserUID:    true,
			setupMocks:     func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "missing plan",
			requestBody:    Request{DurationDays: 30, Amount: 49.75},
			withUserUID:    true,
			setupMocks:     func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field PlanName is a required field"}`,
		},
		{
			name:           "missing user uid",
			requestBody:    Request{PlanName: "basic", DurationDays: 30, Amount: 49.75},
			withUserUID:    false,
			setupMocks:     func(*MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:        "unknown plan rejected by service",
			requestBody: Request{PlanName: "platinum", DurationDays: 30, Amount: 49.75},
			withUserUID: true,
			setupMocks: func(s *MockService) {
				s.On("Activate", mock.Anything, "user123", "platinum", 30, 49.75).
					Return(nil, fmt.Errorf("%w: unknown plan", subscription.ErrValidation)).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid plan or duration"}`,
		},
		{
			name:        "storage error",
			requestBody: Request{PlanName: "basic", DurationDays: 30, Amount: 49.75},
			withUserUID: true,
			setupMocks: func(s *MockService) {
				s.On("Activate", mock.Anything, "user123", "basic", 30, 49.75).
					Return(nil, errors.New("db error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to activate subscription"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			handler := New(newNoopLogger(), service)

			tt.setupMocks(service)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/subscriptions/activate", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

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
