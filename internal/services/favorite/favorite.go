// Package favorite содержит логику избранных товаров пользователя.
package favorite

import (
	"context"
	"log/slog"

	"pdf-marketplace/internal/models"
)

// FavoriteRepository определяет методы хранилища для избранного.
type FavoriteRepository interface {
	// ToggleFavorite переключает членство товара в избранном
	// и возвращает новый набор идентификаторов.
	ToggleFavorite(ctx context.Context, userUID string, productID int) ([]int, error)
	// ListFavorites возвращает товары из избранного.
	ListFavorites(ctx context.Context, userUID string) ([]*models.Product, error)
}

// FavoriteService реализует операции с избранным.
type FavoriteService struct {
	repo FavoriteRepository
	log  *slog.Logger
}

// New создает новый экземпляр FavoriteService.
func New(repo FavoriteRepository, log *slog.Logger) *FavoriteService {
	return &FavoriteService{
		repo: repo,
		log:  log,
	}
}

// Toggle переключает товар в избранном и возвращает новый набор ID.
func (s *FavoriteService) Toggle(ctx context.Context, userUID string, productID int) ([]int, error) {
	ids, err := s.repo.ToggleFavorite(ctx, userUID, productID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int{}
	}
	return ids, nil
}

// List возвращает товары из избранного пользователя.
func (s *FavoriteService) List(ctx context.Context, userUID string) ([]*models.Product, error) {
	products, err := s.repo.ListFavorites(ctx, userUID)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []*models.Product{}
	}
	return products, nil
}
