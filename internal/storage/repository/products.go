package repository

import (
	"context"
	"database/sql"
	"fmt"

	"pdf-marketplace/internal/models"
)

const productColumns = `id, name, price, description, category, stock, image_url, pdf_url,
			      sold, created_at, updated_at`

// CreateProduct вставляет новый товар и возвращает его ID.
func (s *Storage) CreateProduct(ctx context.Context, p models.Product) (int, error) {
	const op = "storage.CreateProduct"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO products (name, price, description, category, stock, image_url, pdf_url)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		p.Name, p.Price, p.Description, p.Category, p.Stock, p.ImageURL, p.PdfURL).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadProduct возвращает товар по ID.
func (s *Storage) ReadProduct(ctx context.Context, id int) (*models.Product, error) {
	const op = "storage.ReadProduct"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(s.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// ListProducts возвращает все товары, новые первыми.
func (s *Storage) ListProducts(ctx context.Context) ([]*models.Product, error) {
	const op = "storage.ListProducts"
	return s.listProducts(ctx, op,
		`SELECT `+productColumns+` FROM products ORDER BY created_at DESC`)
}

// ListTopProducts возвращает limit самых продаваемых товаров.
func (s *Storage) ListTopProducts(ctx context.Context, limit int) ([]*models.Product, error) {
	const op = "storage.ListTopProducts"
	return s.listProducts(ctx, op,
		`SELECT `+productColumns+` FROM products ORDER BY sold DESC LIMIT $1`, limit)
}

func (s *Storage) listProducts(ctx context.Context, op, query string, args ...any) ([]*models.Product, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Product
	for rows.Next() {
		var p models.Product
		var imageURL, pdfURL sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.Category,
			&p.Stock, &imageURL, &pdfURL, &p.Sold, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		p.ImageURL = imageURL.String
		p.PdfURL = pdfURL.String
		p.Status = models.StockStatus(p.Stock)
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateProduct обновляет товар по ID и возвращает количество изменённых строк.
func (s *Storage) UpdateProduct(ctx context.Context, p models.Product, id int) (int, error) {
	const op = "storage.UpdateProduct"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE products
			  SET name = $1, price = $2, description = $3, category = $4, stock = $5,
			      image_url = $6, pdf_url = $7, updated_at = NOW()
			  WHERE id = $8`
	result, err := s.DB.ExecContext(ctx, query,
		p.Name, p.Price, p.Description, p.Category, p.Stock, p.ImageURL, p.PdfURL, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveProduct удаляет товар по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveProduct(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveProduct"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// IncrementSold увеличивает счётчик продаж товара.
func (s *Storage) IncrementSold(ctx context.Context, id int) error {
	const op = "storage.IncrementSold"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	_, err := s.DB.ExecContext(ctx, `UPDATE products SET sold = sold + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func scanProduct(row *sql.Row) (*models.Product, error) {
	var p models.Product
	var imageURL, pdfURL sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.Category,
		&p.Stock, &imageURL, &pdfURL, &p.Sold, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.ImageURL = imageURL.String
	p.PdfURL = pdfURL.String
	p.Status = models.StockStatus(p.Stock)
	return &p, nil
}
