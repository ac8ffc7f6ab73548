package product

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pdf-marketplace/internal/models"
	"pdf-marketplace/internal/storage/repository"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateProduct(ctx context.Context, p models.Product) (int, error) {
	args := m.Called(ctx, p)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) ReadProduct(ctx context.Context, id int) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *RepoMock) ListProducts(ctx context.Context) ([]*models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *RepoMock) ListTopProducts(ctx context.Context, limit int) ([]*models.Product, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *RepoMock) UpdateProduct(ctx context.Context, p models.Product, id int) (int, error) {
	args := m.Called(ctx, p, id)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) RemoveProduct(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestProductService_Read(t *testing.T) {
	stored := &models.Product{
		ID:     3,
		Name:   "Go Patterns",
		Price:  199,
		Stock:  7,
		Status: models.ProductLowStock,
	}

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, c *CacheMock)
		wantStatus string
		wantErr    error
	}{
		{
			name: "cache hit derives stock status",
			setupMocks: func(_ *RepoMock, c *CacheMock) {
				c.On("Get", "product:3", mock.Anything).Return(true, nil).Run(func(args mock.Arguments) {
					ptr := args.Get(1).(**models.Product)
					cached := *stored
					*ptr = &cached
				}).Once()
			},
			wantStatus: "Low stock",
		},
		{
			name: "cache miss falls back to repo and fills cache",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", "product:3", mock.Anything).Return(false, nil).Once()
				r.On("ReadProduct", mock.Anything, 3).Return(stored, nil).Once()
				c.On("Set", "product:3", stored, time.Hour).Return(nil).Once()
			},
			wantStatus: "Low stock",
		},
		{
			name: "cache error is not fatal",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", "product:3", mock.Anything).
					Return(false, errors.New("redis down")).Once()
				r.On("ReadProduct", mock.Anything, 3).Return(stored, nil).Once()
				c.On("Set", "product:3", stored, time.Hour).Return(nil).Once()
			},
			wantStatus: "Low stock",
		},
		{
			name: "product not found",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", "product:3", mock.Anything).Return(false, nil).Once()
				r.On("ReadProduct", mock.Anything, 3).Return(nil, repository.ErrNotFound).Once()
			},
			wantErr: repository.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			svc := New(repo, cache, newNoopLogger())

			tt.setupMocks(repo, cache)

			got, err := svc.Read(context.Background(), 3)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantStatus, got.Status)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestProductService_Update(t *testing.T) {
	req := models.DummyProduct{
		Name:     "Go Patterns",
		Price:    249,
		Category: "other",
		Stock:    12,
	}

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, c *CacheMock)
		wantCount  int
		wantErr    bool
	}{
		{
			name: "success invalidates cache",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("UpdateProduct", mock.Anything, mock.MatchedBy(func(p models.Product) bool {
					return p.Name == "Go Patterns" && p.Price == 249 && p.Stock == 12
				}), 3).Return(1, nil).Once()
				c.On("Invalidate", "product:3").Return(nil).Once()
			},
			wantCount: 1,
		},
		{
			name: "cache invalidate error does not fail update",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("UpdateProduct", mock.Anything, mock.Anything, 3).Return(1, nil).Once()
				c.On("Invalidate", "product:3").Return(errors.New("redis down")).Once()
			},
			wantCount: 1,
		},
		{
			name: "repo error",
			setupMocks: func(r *RepoMock, _ *CacheMock) {
				r.On("UpdateProduct", mock.Anything, mock.Anything, 3).
					Return(0, errors.New("db error")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			svc := New(repo, cache, newNoopLogger())

			tt.setupMocks(repo, cache)

			count, err := svc.Update(context.Background(), req, 3)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantCount, count)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestProductService_Remove(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	cache.On("Invalidate", "product:9").Return(nil).Once()
	repo.On("RemoveProduct", mock.Anything, 9).Return(1, nil).Once()

	svc := New(repo, cache, newNoopLogger())

	count, err := svc.Remove(context.Background(), 9)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}
