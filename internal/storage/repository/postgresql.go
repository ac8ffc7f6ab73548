// Package repository реализует хранилище данных на основе PostgreSQL
// для маркетплейса PDF: пользователи, подписки, товары, покупки и карточки
// клиентов. Вся координация конкурентных изменений (счётчик скачиваний,
// единственная активная подписка) выполняется средствами самой базы:
// условными UPDATE и транзакциями, без разделяемого состояния в процессе.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Типизированные ошибки хранилища. Сервисы и обработчики различают их
// через errors.Is и переводят в соответствующие HTTP-статусы.
var (
	// ErrNotFound — запись с указанным идентификатором отсутствует.
	ErrNotFound = errors.New("not found")
	// ErrQuotaExceeded — условный инкремент счётчика скачиваний не прошёл:
	// лимит плана уже исчерпан.
	ErrQuotaExceeded = errors.New("download quota exceeded")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'users'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table users missing or query error: %w", err)
	}
	return nil
}
