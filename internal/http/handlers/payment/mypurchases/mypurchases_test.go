package mypurchases

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

func (m *MockService) MyPurchases(ctx context.Context, userUID string) ([]*models.PdfPurchase, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PdfPurchase), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestMyPurchasesHandler_ServeHTTP(t *testing.T) {
	stored := []*models.PdfPurchase{
		{ID: 11, UserUID: "user123", ProductID: 5, PdfName: "go-basics.pdf", Amount: 49.75, Status: "paid"},
	}

	tests := []struct {
		name           string
		withUserUID    bool
		setupMocks     func(s *MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "success list",
			withUserUID: true,
			setupMocks: func(s *MockService) {
				s.On("MyPurchases", mock.Anything, "user123").
					Return(stored, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"purchases":[{"id":11,"user_uid":"user123","product_id":5,"pdf_name":"go-basics.pdf","amount":49.75,"razorpay_order_id":"","razorpay_payment_id":"","status":"paid","created_at":"0001-01-01T00:00:00Z"}]}}`,
		},
		{
			name:        "empty history",
			withUserUID: true,
			setupMocks: func(s *MockService) {
				s.On("MyPurchases", mock.Anything, "user123").
					Return([]*models.PdfPurchase{}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"purchases":[]}}`,
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
				s.On("MyPurchases", mock.Anything, "user123").
					Return(nil, errors.New("db error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to list purchases"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			handler := New(newNoopLogger(), service)

			tt.setupMocks(service)

			req := httptest.NewRequest(http.MethodGet, "/api/payment/my-purchases", nil)

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
