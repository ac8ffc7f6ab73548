// Package customer содержит CRM-логику админ-консоли: карточки клиентов,
// их блокировку и агрегаты. На учётные записи пользователей и логику квот
// эти операции не влияют.
package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"pdf-marketplace/internal/models"
)

// ErrValidation — недопустимый статус клиента.
var ErrValidation = errors.New("validation failed")

// CustomerRepository определяет методы хранилища для карточек клиентов.
type CustomerRepository interface {
	ListCustomers(ctx context.Context) ([]*models.Customer, error)
	UpdateCustomerStatus(ctx context.Context, id int, status string) (int, error)
	RemoveCustomer(ctx context.Context, id int) (int, error)
	CustomerStats(ctx context.Context) (*models.CustomerStats, error)
}

// CustomerService реализует CRM-операции.
type CustomerService struct {
	repo CustomerRepository
	log  *slog.Logger
}

// New создает новый экземпляр CustomerService.
func New(repo CustomerRepository, log *slog.Logger) *CustomerService {
	return &CustomerService{
		repo: repo,
		log:  log,
	}
}

// List возвращает все карточки клиентов.
func (s *CustomerService) List(ctx context.Context) ([]*models.Customer, error) {
	return s.repo.ListCustomers(ctx)
}

// UpdateStatus меняет статус карточки: active или blocked.
func (s *CustomerService) UpdateStatus(ctx context.Context, id int, status string) (int, error) {
	if status != models.CustomerActive && status != models.CustomerBlocked {
		return 0, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	count, err := s.repo.UpdateCustomerStatus(ctx, id, status)
	if err != nil {
		return 0, err
	}
	s.log.Info("updated customer status", slog.Int("id", id), slog.String("status", status))
	return count, nil
}

// Remove удаляет карточку клиента.
func (s *CustomerService) Remove(ctx context.Context, id int) (int, error) {
	return s.repo.RemoveCustomer(ctx, id)
}

// Stats возвращает агрегаты по клиентам.
func (s *CustomerService) Stats(ctx context.Context) (*models.CustomerStats, error) {
	return s.repo.CustomerStats(ctx)
}
