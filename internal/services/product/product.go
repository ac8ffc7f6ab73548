// Package product содержит бизнес-логику каталога PDF-документов,
// включая кеширование горячих чтений.
package product

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"pdf-marketplace/internal/models"
)

// ProductRepository определяет методы для работы с товарами в хранилище.
type ProductRepository interface {
	CreateProduct(ctx context.Context, p models.Product) (int, error)
	ReadProduct(ctx context.Context, id int) (*models.Product, error)
	ListProducts(ctx context.Context) ([]*models.Product, error)
	ListTopProducts(ctx context.Context, limit int) ([]*models.Product, error)
	UpdateProduct(ctx context.Context, p models.Product, id int) (int, error)
	RemoveProduct(ctx context.Context, id int) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// ProductService реализует операции каталога с кешированием чтений.
type ProductService struct {
	repo  ProductRepository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр ProductService.
func New(repo ProductRepository, cache Cache, log *slog.Logger) *ProductService {
	return &ProductService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create добавляет товар в каталог и возвращает его ID.
func (s *ProductService) Create(ctx context.Context, req models.DummyProduct) (int, error) {
	p := models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		PdfURL:      req.PdfURL,
	}
	id, err := s.repo.CreateProduct(ctx, p)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new product", slog.Int("id", id))
	return id, nil
}

// Read возвращает товар по ID, используя кеш или репозиторий.
// Статус наличия выводится из остатка при чтении.
func (s *ProductService) Read(ctx context.Context, id int) (*models.Product, error) {
	var result *models.Product
	cacheKey := fmt.Sprintf("product:%d", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("cache read failed", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found && result != nil {
		result.Status = models.StockStatus(result.Stock)
		return result, nil
	}

	result, err = s.repo.ReadProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache product", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// List возвращает весь каталог.
func (s *ProductService) List(ctx context.Context) ([]*models.Product, error) {
	return s.repo.ListProducts(ctx)
}

// Top возвращает самые продаваемые товары.
func (s *ProductService) Top(ctx context.Context, limit int) ([]*models.Product, error) {
	return s.repo.ListTopProducts(ctx, limit)
}

// Update обновляет товар и инвалидирует кеш.
func (s *ProductService) Update(ctx context.Context, req models.DummyProduct, id int) (int, error) {
	p := models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		PdfURL:      req.PdfURL,
	}
	count, err := s.repo.UpdateProduct(ctx, p, id)
	if err != nil {
		return 0, err
	}
	cacheKey := fmt.Sprintf("product:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return count, nil
}

// Remove удаляет товар и инвалидирует кеш.
func (s *ProductService) Remove(ctx context.Context, id int) (int, error) {
	cacheKey := fmt.Sprintf("product:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return s.repo.RemoveProduct(ctx, id)
}
