// Package verifypdf реализует HTTP-обработчик проверки оплаты PDF.
//
// Покупка записывается только после успешной проверки подписи колбэка,
// при несовпадении подписи состояние не меняется.
package verifypdf

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"pdf-marketplace/internal/http/middlewarectx"
	"pdf-marketplace/internal/http/response"
	"pdf-marketplace/internal/lib/sl"
	"pdf-marketplace/internal/models"
	"pdf-marketplace/internal/services/payment"
)

// Request — данные колбэка Razorpay об оплате PDF.
type Request struct {
	RazorpayOrderID   string  `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string  `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string  `json:"razorpay_signature" validate:"required"`
	PdfID             int     `json:"pdfId" validate:"required,gt=0"`
	PdfName           string  `json:"pdfName" validate:"required"`
	Amount            float64 `json:"amount" validate:"gte=0"`
}

// Service описывает интерфейс бизнес-логики проверки оплаты.
type Service interface {
	VerifyPdfPayment(ctx context.Context, userUID string, req payment.VerifyRequest) (*models.PdfPurchase, error)
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
// @Summary Проверить оплату PDF
// @Description Сверяет подпись платёжного колбэка и фиксирует покупку PDF.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Идентификаторы заказа, платежа и подпись"
// @Success 200 {object} map[string]any "Покупка зафиксирована"
// @Failure 400 {object} response.ErrorResponse "Некорректные данные или неверная подпись"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при фиксации покупки"
// @Router /payment/verify-pdf-payment [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.verifypdf"

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

	purchase, err := h.service.VerifyPdfPayment(r.Context(), userUID, payment.VerifyRequest{
		OrderID:   req.RazorpayOrderID,
		PaymentID: req.RazorpayPaymentID,
		Signature: req.RazorpaySignature,
		ProductID: req.PdfID,
		PdfName:   req.PdfName,
		Amount:    req.Amount,
	})
	if err != nil {
		if errors.Is(err, payment.ErrInvalidSignature) {
			log.Info("payment signature mismatch",
				slog.String("order_id", req.RazorpayOrderID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("payment verification failed"))
			return
		}
		log.Error("failed to verify pdf payment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to verify payment"))
		return
	}

	log.Info("pdf payment verified",
		slog.String("user_uid", userUID), slog.String("payment_id", req.RazorpayPaymentID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"purchase": purchase,
	}))
}
