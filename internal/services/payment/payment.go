// Package payment содержит бизнес-логику платежей: создание заказов
// у провайдера и проверку колбэков об успешной оплате PDF.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pdf-marketplace/internal/lib/rabbitmq"
	"pdf-marketplace/internal/models"
	"pdf-marketplace/internal/razorpay"
)

// ErrInvalidSignature — подпись платёжного колбэка не сошлась.
// Никакие записи при этом не создаются.
var ErrInvalidSignature = errors.New("invalid payment signature")

// ProviderClient описывает операции платёжного провайдера.
type ProviderClient interface {
	CreateOrder(ctx context.Context, amount float64) (*razorpay.Order, error)
	KeyID() string
	KeySecret() string
}

// PurchaseRepository определяет методы хранилища для фиксации покупок.
type PurchaseRepository interface {
	CreatePdfPurchase(ctx context.Context, p models.PdfPurchase) (int, error)
	ListPdfPurchases(ctx context.Context, userUID string) ([]*models.PdfPurchase, error)
	IncrementSold(ctx context.Context, productID int) error
	RecordCustomerPurchase(ctx context.Context, userUID string, amount float64) error
}

// EventPublisher публикует события для внешних потребителей.
type EventPublisher interface {
	Publish(routingKey string, event rabbitmq.Event) error
}

// VerifyRequest — данные колбэка Razorpay об оплате конкретного PDF.
type VerifyRequest struct {
	OrderID   string
	PaymentID string
	Signature string
	ProductID int
	PdfName   string
	Amount    float64
}

// PaymentService реализует операции платежей.
type PaymentService struct {
	provider ProviderClient
	repo     PurchaseRepository
	events   EventPublisher // nil, если брокер не настроен
	log      *slog.Logger
}

// New создает новый экземпляр PaymentService.
func New(provider ProviderClient, repo PurchaseRepository, events EventPublisher, log *slog.Logger) *PaymentService {
	return &PaymentService{
		provider: provider,
		repo:     repo,
		events:   events,
		log:      log,
	}
}

// CreateOrder создаёт заказ у провайдера и возвращает его вместе с публичным
// ключом для платёжного виджета.
func (s *PaymentService) CreateOrder(ctx context.Context, amount float64) (*razorpay.Order, string, error) {
	const op = "payment.CreateOrder"
	order, err := s.provider.CreateOrder(ctx, amount)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return order, s.provider.KeyID(), nil
}

// VerifyPdfPayment проверяет подпись колбэка и только после успешной
// проверки фиксирует покупку: запись в pdf_purchases, инкремент продаж
// товара, обновление агрегатов клиента и событие для брокера.
// При несовпадении подписи возвращается ErrInvalidSignature и ничего
// не записывается.
func (s *PaymentService) VerifyPdfPayment(ctx context.Context, userUID string, req VerifyRequest) (*models.PdfPurchase, error) {
	const op = "payment.VerifyPdfPayment"

	if !razorpay.VerifySignature(req.OrderID, req.PaymentID, req.Signature, s.provider.KeySecret()) {
		return nil, ErrInvalidSignature
	}

	purchase := models.PdfPurchase{
		UserUID:           userUID,
		ProductID:         req.ProductID,
		PdfName:           req.PdfName,
		Amount:            req.Amount,
		RazorpayOrderID:   req.OrderID,
		RazorpayPaymentID: req.PaymentID,
		Status:            "paid",
		CreatedAt:         time.Now(),
	}
	id, err := s.repo.CreatePdfPurchase(ctx, purchase)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	purchase.ID = id

	if err := s.repo.IncrementSold(ctx, req.ProductID); err != nil {
		s.log.Warn("failed to increment sold counter", slog.Any("err", err))
	}
	if err := s.repo.RecordCustomerPurchase(ctx, userUID, req.Amount); err != nil {
		s.log.Warn("failed to update customer aggregates", slog.Any("err", err))
	}

	s.log.Info("pdf payment verified",
		slog.String("user_uid", userUID), slog.String("payment_id", req.PaymentID))

	if s.events != nil {
		if err := s.events.Publish(rabbitmq.RoutingKeyPdfPurchased, rabbitmq.Event{
			UserUID:   userUID,
			Subject:   req.PdfName,
			Amount:    req.Amount,
			CreatedAt: purchase.CreatedAt,
		}); err != nil {
			s.log.Warn("failed to publish purchase event", slog.Any("err", err))
		}
	}

	return &purchase, nil
}

// MyPurchases возвращает историю покупок PDF пользователя, новые первыми.
func (s *PaymentService) MyPurchases(ctx context.Context, userUID string) ([]*models.PdfPurchase, error) {
	const op = "payment.MyPurchases"

	purchases, err := s.repo.ListPdfPurchases(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if purchases == nil {
		purchases = []*models.PdfPurchase{}
	}
	return purchases, nil
}
