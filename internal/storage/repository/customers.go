package repository

import (
	"context"
	"database/sql"
	"fmt"

	"pdf-marketplace/internal/models"
)

// CreateCustomer создаёт карточку клиента для админ-консоли.
// Вызывается при регистрации пользователя; дальше карточка живёт отдельно.
func (s *Storage) CreateCustomer(ctx context.Context, c models.Customer) (int, error) {
	const op = "storage.CreateCustomer"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO customers (name, email, phone, address, status, total_orders,
			      total_spent, last_active)
			  VALUES ($1, $2, $3, $4, $5, 0, 0, NOW())
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		c.Name, c.Email, c.Phone, c.Address, models.CustomerActive).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListCustomers возвращает все карточки клиентов.
func (s *Storage) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	const op = "storage.ListCustomers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, email, phone, address, city, country, zip_code, status,
			      total_orders, total_spent, last_active, notes
			  FROM customers
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Customer
	for rows.Next() {
		var c models.Customer
		var phone, address, city, country, zipCode, notes sql.NullString
		var lastActive sql.NullTime
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &phone, &address, &city, &country,
			&zipCode, &c.Status, &c.TotalOrders, &c.TotalSpent, &lastActive, &notes); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		c.Phone = phone.String
		c.Address = address.String
		c.City = city.String
		c.Country = country.String
		c.ZipCode = zipCode.String
		c.Notes = notes.String
		if lastActive.Valid {
			c.LastActive = &lastActive.Time
		}
		result = append(result, &c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateCustomerStatus меняет статус карточки клиента (active или blocked).
// Учётную запись пользователя операция не затрагивает.
func (s *Storage) UpdateCustomerStatus(ctx context.Context, id int, status string) (int, error) {
	const op = "storage.UpdateCustomerStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx,
		`UPDATE customers SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveCustomer удаляет карточку клиента и возвращает количество удалённых строк.
func (s *Storage) RemoveCustomer(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveCustomer"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// CustomerStats считает агрегаты по клиентам для дашборда.
func (s *Storage) CustomerStats(ctx context.Context) (*models.CustomerStats, error) {
	const op = "storage.CustomerStats"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*),
			      COUNT(*) FILTER (WHERE status = $1),
			      COUNT(*) FILTER (WHERE status = $2),
			      COALESCE(SUM(total_spent), 0)
			  FROM customers`
	var stats models.CustomerStats
	err := s.DB.QueryRowContext(ctx, query, models.CustomerActive, models.CustomerBlocked).
		Scan(&stats.Total, &stats.Active, &stats.Blocked, &stats.Revenue)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &stats, nil
}

// RecordCustomerPurchase обновляет агрегаты карточки клиента после покупки:
// количество заказов, потраченную сумму и время последней активности.
func (s *Storage) RecordCustomerPurchase(ctx context.Context, userUID string, amount float64) error {
	const op = "storage.RecordCustomerPurchase"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE customers
			  SET total_orders = total_orders + 1,
			      total_spent = total_spent + $1,
			      last_active = NOW()
			  WHERE email = (SELECT email FROM users WHERE uid = $2)`
	_, err := s.DB.ExecContext(ctx, query, amount, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
