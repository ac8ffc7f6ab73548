// Package auth содержит бизнес-логику регистрации и входа пользователей.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"pdf-marketplace/internal/lib/jwt"
	"pdf-marketplace/internal/lib/password"
	"pdf-marketplace/internal/lib/plan"
	"pdf-marketplace/internal/models"
)

// ErrInvalidCredentials — неверная пара email/пароль.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)
	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// CreateCustomer создаёт карточку клиента для админ-консоли.
	CreateCustomer(ctx context.Context, c models.Customer) (int, error)
}

// AuthService отвечает за регистрацию и авторизацию.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// New создает новый экземпляр AuthService.
func New(users UserRepository, jwtMaker jwt.Maker, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// Register создаёт пользователя на плане free с нулевым счётчиком скачиваний,
// заводит карточку клиента для админки и сразу выдаёт JWT.
func (s *AuthService) Register(ctx context.Context, name, email, phone, address, rawPassword string) (*models.User, string, error) {
	const op = "auth.Register"
	hashed, err := password.Hash(rawPassword)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		Address:      address,
		PasswordHash: hashed,
		Role:         "user", // дефолтная роль при регистрации
		Plan:         string(plan.Free),
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	user.UID = uid

	// Карточка клиента — денормализация для админки; на логику квот
	// и подписок она не влияет, поэтому её ошибка регистрацию не отменяет.
	if _, err := s.users.CreateCustomer(ctx, models.Customer{
		Name:    name,
		Email:   email,
		Phone:   phone,
		Address: address,
		Status:  models.CustomerActive,
	}); err != nil {
		s.log.Warn("failed to create customer card", slog.Any("err", err))
	}

	token, err := s.jwtMaker.GenerateToken(uid, name, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return &user, token, nil
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.User, string, error) {
	const op = "auth.Login"
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := password.Compare(user.PasswordHash, rawPassword); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.UID, user.Name, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return user, token, nil
}
