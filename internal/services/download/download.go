// Package download реализует учёт скачиваний PDF: проверку права на
// скачивание и атомарный инкремент счётчика.
package download

import (
	"context"
	"fmt"
	"log/slog"

	"pdf-marketplace/internal/lib/plan"
)

// UserRepository определяет методы хранилища для учёта скачиваний.
type UserRepository interface {
	// GetDownloadState возвращает план и счётчик скачиваний пользователя.
	GetDownloadState(ctx context.Context, userUID string) (string, int, error)
	// IncrementDownloadCount атомарно увеличивает счётчик, если лимит не выбран.
	IncrementDownloadCount(ctx context.Context, userUID string, limit int, unlimited bool) (int, error)
}

// Status — результат проверки или инкремента для отдачи клиенту.
type Status struct {
	Allowed       bool
	Plan          string
	DownloadCount int
	Limit         int
	Unlimited     bool
}

// DownloadService реализует проверку квоты и учёт скачиваний.
type DownloadService struct {
	repo UserRepository
	log  *slog.Logger
}

// New создает новый экземпляр DownloadService.
func New(repo UserRepository, log *slog.Logger) *DownloadService {
	return &DownloadService{
		repo: repo,
		log:  log,
	}
}

// Check сообщает, разрешено ли пользователю скачивание при текущем плане
// и счётчике. Счётчик не изменяется.
func (s *DownloadService) Check(ctx context.Context, userUID string) (*Status, error) {
	planName, count, err := s.repo.GetDownloadState(ctx, userUID)
	if err != nil {
		return nil, err
	}
	e := plan.CanDownload(plan.Parse(planName), count)
	return &Status{
		Allowed:       e.Allowed,
		Plan:          planName,
		DownloadCount: count,
		Limit:         e.Limit,
		Unlimited:     e.Unlimited,
	}, nil
}

// Record фиксирует факт скачивания: перечитывает план пользователя и
// атомарно увеличивает счётчик. Проверка лимита повторяется в момент
// инкремента самим условным UPDATE, а не только на предварительной
// проверке, поэтому гонка двух одновременных скачиваний на последнем
// слоте невозможна. Идемпотентности нет: каждый вызов — новое скачивание.
func (s *DownloadService) Record(ctx context.Context, userUID string) (*Status, error) {
	const op = "download.Record"
	planName, _, err := s.repo.GetDownloadState(ctx, userUID)
	if err != nil {
		return nil, err
	}
	limits := plan.LimitsFor(plan.Parse(planName))

	newCount, err := s.repo.IncrementDownloadCount(ctx, userUID, limits.DownloadLimit, limits.Unlimited)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("recorded pdf download",
		slog.String("user_uid", userUID), slog.Int("count", newCount))
	limit := limits.DownloadLimit
	if limits.Unlimited {
		limit = -1
	}
	return &Status{
		Allowed:       true,
		Plan:          planName,
		DownloadCount: newCount,
		Limit:         limit,
		Unlimited:     limits.Unlimited,
	}, nil
}
