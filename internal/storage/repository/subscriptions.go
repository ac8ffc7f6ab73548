package repository

import (
	"context"
	"database/sql"
	"fmt"

	"pdf-marketplace/internal/models"
)

// ActivateSubscription атомарно активирует новую подписку пользователя.
//
// В одной транзакции: все прежние активные подписки пользователя помечаются
// expired, вставляется новая активная запись, у пользователя обновляются
// план и дата его окончания, а счётчик скачиваний сбрасывается в ноль.
// Ни один читатель не увидит ни две активные подписки разом, ни момент
// «между» снятием старой и вставкой новой.
func (s *Storage) ActivateSubscription(ctx context.Context, sub models.Subscription) (*models.Subscription, error) {
	const op = "storage.ActivateSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx,
		`UPDATE subscriptions SET status = $1 WHERE user_uid = $2 AND status = $3`,
		models.SubscriptionExpired, sub.UserUID, models.SubscriptionActive)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO subscriptions (user_uid, plan_name, amount, razorpay_order_id,
			      razorpay_payment_id, start_date, expiry_date, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	if err = tx.QueryRowContext(ctx, query,
		sub.UserUID, sub.PlanName, sub.Amount, sub.RazorpayOrderID, sub.RazorpayPaymentID,
		sub.StartDate, sub.ExpiryDate, models.SubscriptionActive).Scan(&sub.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE users SET plan = $1, plan_expiry = $2, pdf_download_count = 0 WHERE uid = $3`,
		sub.PlanName, sub.ExpiryDate, sub.UserUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sub.Status = models.SubscriptionActive
	return &sub, nil
}

// GetCurrentSubscription возвращает актуальную подписку пользователя:
// активную по статусу И с ещё не прошедшей датой окончания, с самой поздней
// датой начала. Подписка с истёкшей датой, но не перещёлкнутым статусом,
// актуальной не считается. Если актуальной подписки нет — (nil, nil).
func (s *Storage) GetCurrentSubscription(ctx context.Context, userUID string) (*models.Subscription, error) {
	const op = "storage.GetCurrentSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, plan_name, amount, razorpay_order_id, razorpay_payment_id,
			      start_date, expiry_date, status
			  FROM subscriptions
			  WHERE user_uid = $1
			    AND status = $2
			    AND expiry_date > NOW()
			  ORDER BY start_date DESC
			  LIMIT 1`
	var sub models.Subscription
	var orderID, paymentID sql.NullString
	err := s.DB.QueryRowContext(ctx, query, userUID, models.SubscriptionActive).Scan(
		&sub.ID, &sub.UserUID, &sub.PlanName, &sub.Amount, &orderID, &paymentID,
		&sub.StartDate, &sub.ExpiryDate, &sub.Status)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sub.RazorpayOrderID = orderID.String
	sub.RazorpayPaymentID = paymentID.String
	return &sub, nil
}

// ListPurchases возвращает подписки всех пользователей для админ-консоли,
// новые первыми.
func (s *Storage) ListPurchases(ctx context.Context) ([]*models.PurchaseInfo, error) {
	const op = "storage.ListPurchases"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT s.id, u.name, u.email, s.plan_name, s.amount, s.status,
			      s.start_date, s.expiry_date
			  FROM subscriptions s
			  JOIN users u ON s.user_uid = u.uid
			  ORDER BY s.start_date DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.PurchaseInfo
	for rows.Next() {
		var pi models.PurchaseInfo
		if err := rows.Scan(&pi.ID, &pi.CustomerName, &pi.Email, &pi.PlanName,
			&pi.Price, &pi.Status, &pi.PurchaseDate, &pi.ExpiryDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &pi)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
