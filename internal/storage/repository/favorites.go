package repository

import (
	"context"
	"fmt"

	"pdf-marketplace/internal/models"
)

// ToggleFavorite переключает товар в избранном пользователя и возвращает
// новый набор идентификаторов. Набор хранится строками таблицы favorites
// с составным первичным ключом, поэтому повторное добавление невозможно.
func (s *Storage) ToggleFavorite(ctx context.Context, userUID string, productID int) ([]int, error) {
	const op = "storage.ToggleFavorite"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_uid = $1 AND product_id = $2`, userUID, productID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if removed == 0 {
		_, err = s.DB.ExecContext(ctx,
			`INSERT INTO favorites (user_uid, product_id) VALUES ($1, $2)
			 ON CONFLICT DO NOTHING`, userUID, productID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT product_id FROM favorites WHERE user_uid = $1 ORDER BY product_id`, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ids, nil
}

// ListFavorites возвращает товары из избранного пользователя.
func (s *Storage) ListFavorites(ctx context.Context, userUID string) ([]*models.Product, error) {
	const op = "storage.ListFavorites"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT p.id, p.name, p.price, p.description, p.category, p.stock,
			      p.image_url, p.pdf_url, p.sold, p.created_at, p.updated_at
			  FROM favorites f
			  JOIN products p ON p.id = f.product_id
			  WHERE f.user_uid = $1
			  ORDER BY p.id`
	return s.listProducts(ctx, op, query, userUID)
}
