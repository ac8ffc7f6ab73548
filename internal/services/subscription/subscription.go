// Package subscription содержит бизнес-логику жизненного цикла подписок:
// активацию тарифного плана, чтение актуального плана и отчёт о покупках.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pdf-marketplace/internal/lib/plan"
	"pdf-marketplace/internal/lib/rabbitmq"
	"pdf-marketplace/internal/models"
)

// ErrValidation — входные данные активации не прошли проверку.
var ErrValidation = errors.New("validation failed")

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	// ActivateSubscription атомарно гасит старые активные подписки
	// пользователя и вставляет новую.
	ActivateSubscription(ctx context.Context, sub models.Subscription) (*models.Subscription, error)
	// GetCurrentSubscription возвращает актуальную подписку или nil.
	GetCurrentSubscription(ctx context.Context, userUID string) (*models.Subscription, error)
	// ListPurchases возвращает подписки всех пользователей для админки.
	ListPurchases(ctx context.Context) ([]*models.PurchaseInfo, error)
}

// EventPublisher публикует события для внешних потребителей.
type EventPublisher interface {
	Publish(routingKey string, event rabbitmq.Event) error
}

// SubscriptionService реализует операции над подписками.
type SubscriptionService struct {
	repo   SubscriptionRepository
	events EventPublisher // nil, если брокер не настроен
	log    *slog.Logger
}

// New создает новый экземпляр SubscriptionService.
func New(repo SubscriptionRepository, events EventPublisher, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:   repo,
		events: events,
		log:    log,
	}
}

// Activate активирует платный план пользователя на durationDays дней.
//
// Проверки: план известен, durationDays > 0, amount >= 0 — иначе ErrValidation.
// Сама смена плана выполняется хранилищем как одна транзакция, так что
// у пользователя в любой момент не больше одной активной подписки.
func (s *SubscriptionService) Activate(ctx context.Context, userUID, planName string, durationDays int, amount float64) (*models.Subscription, error) {
	p := plan.Parse(planName)
	if planName == "" || !plan.Known(p) {
		return nil, fmt.Errorf("%w: unknown plan %q", ErrValidation, planName)
	}
	if durationDays <= 0 {
		return nil, fmt.Errorf("%w: durationDays must be positive", ErrValidation)
	}
	if amount < 0 {
		return nil, fmt.Errorf("%w: amount must not be negative", ErrValidation)
	}

	now := time.Now()
	sub := models.Subscription{
		UserUID:    userUID,
		PlanName:   string(p),
		Amount:     amount,
		StartDate:  now,
		ExpiryDate: now.AddDate(0, 0, durationDays),
	}

	created, err := s.repo.ActivateSubscription(ctx, sub)
	if err != nil {
		return nil, err
	}
	s.log.Info("activated subscription",
		slog.String("user_uid", userUID), slog.String("plan", string(p)))

	if s.events != nil {
		if err := s.events.Publish(rabbitmq.RoutingKeySubscriptionActivated, rabbitmq.Event{
			UserUID:   userUID,
			Subject:   string(p),
			Amount:    amount,
			CreatedAt: now,
		}); err != nil {
			s.log.Warn("failed to publish subscription event", slog.Any("err", err))
		}
	}

	return created, nil
}

// CurrentPlan возвращает актуальную подписку пользователя или nil,
// если активной и не истёкшей по дате подписки нет.
func (s *SubscriptionService) CurrentPlan(ctx context.Context, userUID string) (*models.Subscription, error) {
	return s.repo.GetCurrentSubscription(ctx, userUID)
}

// ListPurchases возвращает покупки подписок для админ-консоли,
// дополняя каждую строку описанием возможностей плана.
func (s *SubscriptionService) ListPurchases(ctx context.Context) ([]*models.PurchaseInfo, error) {
	purchases, err := s.repo.ListPurchases(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range purchases {
		p.Features = plan.Features(plan.Parse(p.PlanName))
	}
	return purchases, nil
}
