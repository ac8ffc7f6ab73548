package repository

import (
	"context"
	"database/sql"
	"fmt"

	"pdf-marketplace/internal/models"
)

// RegisterUser сохраняет нового пользователя и возвращает его UID.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (name, email, phone, address, password_hash, role, plan, pdf_download_count)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, 0)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Name, user.Email, user.Phone, user.Address, user.PasswordHash,
		user.Role, user.Plan).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByEmail возвращает пользователя по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, email, phone, address, password_hash, role, plan,
			      plan_expiry, pdf_download_count, created_at
			  FROM users
			  WHERE email = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, email), op)
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, email, phone, address, password_hash, role, plan,
			      plan_expiry, pdf_download_count, created_at
			  FROM users
			  WHERE uid = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, userUID), op)
}

func (s *Storage) scanUser(row *sql.Row, op string) (*models.User, error) {
	u := &models.User{}
	var planExpiry sql.NullTime
	if err := row.Scan(&u.UID, &u.Name, &u.Email, &u.Phone, &u.Address,
		&u.PasswordHash, &u.Role, &u.Plan, &planExpiry,
		&u.PdfDownloadCount, &u.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if planExpiry.Valid {
		u.PlanExpiry = &planExpiry.Time
	}
	return u, nil
}

// GetDownloadState возвращает план и текущий счётчик скачиваний пользователя.
func (s *Storage) GetDownloadState(ctx context.Context, userUID string) (string, int, error) {
	const op = "storage.GetDownloadState"
	select {
	case <-ctx.Done():
		return "", 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT plan, pdf_download_count FROM users WHERE uid = $1`
	var plan string
	var count int
	if err := s.DB.QueryRowContext(ctx, query, userUID).Scan(&plan, &count); err != nil {
		if err == sql.ErrNoRows {
			return "", 0, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return "", 0, fmt.Errorf("%s: %w", op, err)
	}
	return plan, count, nil
}

// IncrementDownloadCount атомарно увеличивает счётчик скачиваний на единицу
// и возвращает новое значение. Инкремент проходит только если до него счётчик
// ещё не достиг лимита (unlimited снимает проверку) — условие и запись
// выполняются одним UPDATE, поэтому два конкурентных запроса не могут
// оба проскочить на последнем оставшемся слоте.
func (s *Storage) IncrementDownloadCount(ctx context.Context, userUID string, limit int, unlimited bool) (int, error) {
	const op = "storage.IncrementDownloadCount"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET pdf_download_count = pdf_download_count + 1
			  WHERE uid = $1
			    AND ($3 OR pdf_download_count < $2)
			  RETURNING pdf_download_count`
	var newCount int
	err := s.DB.QueryRowContext(ctx, query, userUID, limit, unlimited).Scan(&newCount)
	if err == sql.ErrNoRows {
		// либо пользователь не существует, либо лимит уже выбран
		var exists bool
		if checkErr := s.DB.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM users WHERE uid = $1)`, userUID).Scan(&exists); checkErr != nil {
			return 0, fmt.Errorf("%s: %w", op, checkErr)
		}
		if !exists {
			return 0, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, ErrQuotaExceeded)
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newCount, nil
}
