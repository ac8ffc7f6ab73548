package repository

import (
	"context"
	"fmt"

	"pdf-marketplace/internal/models"
)

// CreatePdfPurchase сохраняет запись о разовой покупке PDF и возвращает её ID.
// Вызывается только после успешной проверки подписи платежа.
func (s *Storage) CreatePdfPurchase(ctx context.Context, p models.PdfPurchase) (int, error) {
	const op = "storage.CreatePdfPurchase"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO pdf_purchases (user_uid, product_id, pdf_name, amount,
			      razorpay_order_id, razorpay_payment_id, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		p.UserUID, p.ProductID, p.PdfName, p.Amount,
		p.RazorpayOrderID, p.RazorpayPaymentID, p.Status).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListPdfPurchases возвращает покупки пользователя, новые первыми.
func (s *Storage) ListPdfPurchases(ctx context.Context, userUID string) ([]*models.PdfPurchase, error) {
	const op = "storage.ListPdfPurchases"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, product_id, pdf_name, amount, razorpay_order_id,
			      razorpay_payment_id, status, created_at
			  FROM pdf_purchases
			  WHERE user_uid = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.PdfPurchase
	for rows.Next() {
		var p models.PdfPurchase
		if err := rows.Scan(&p.ID, &p.UserUID, &p.ProductID, &p.PdfName, &p.Amount,
			&p.RazorpayOrderID, &p.RazorpayPaymentID, &p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
