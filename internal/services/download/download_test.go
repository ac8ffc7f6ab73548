package download

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pdf-marketplace/internal/storage/repository"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) GetDownloadState(ctx context.Context, userUID string) (string, int, error) {
	args := m.Called(ctx, userUID)
	return args.String(0), args.Int(1), args.Error(2)
}

func (m *RepoMock) IncrementDownloadCount(ctx context.Context, userUID string, limit int, unlimited bool) (int, error) {
	args := m.Called(ctx, userUID, limit, unlimited)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestDownloadService_Check(t *testing.T) {
	tests := []struct {
		name        string
		setupMocks  func(r *RepoMock)
		wantAllowed bool
		wantLimit   int
		wantCount   int
		wantErr     error
	}{
		{
			name: "free plan with quota left",
			setupMocks: func(r *RepoMock) {
				r.On("GetDownloadState", mock.Anything, "uid-1").Return("free", 1, nil).Once()
			},
			wantAllowed: true,
			wantLimit:   2,
			wantCount:   1,
		},
		{
			name: "free plan exhausted",
			setupMocks: func(r *RepoMock) {
				r.On("GetDownloadState", mock.Anything, "uid-1").Return("free", 2, nil).Once()
			},
			wantAllowed: false,
			wantLimit:   2,
			wantCount:   2,
		},
		{
			name: "basic plan below limit",
			setupMocks: func(r *RepoMock) {
				r.On("GetDownloadState", mock.Anything, "uid-1").Return("basic", 4, nil).Once()
			},
			wantAllowed: true,
			wantLimit:   5,
			wantCount:   4,
		},
		{
			name: "premium is unlimited",
			setupMocks: func(r *RepoMock) {
				r.On("GetDownloadState", mock.Anything, "uid-1").Return("premium", 9000, nil).Once()
			},
			wantAllowed: true,
			wantLimit:   -1,
			wantCount:   9000,
		},
		{
			name: "unknown plan gets zero quota",
			setupMocks: func(r *RepoMock) {
				r.On("GetDownloadState", mock.Anything, "uid-1").Return("platinum", 0, nil).Once()
			},
			wantAllowed: false,
			wantLimit:   0,
			wantCount:   0,
		},
		{
			name: "user not found",
			setupMocks: func(r *RepoMock) {
				r.On("GetDownloadState", mock.Anything, "uid-1").
					Return("", 0, repository.ErrNotFound).Once()
			},
			wantErr: repository.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			svc := New(repo, newNoopLogger())

			tt.setupMocks(repo)

			got, err := svc.Check(context.Background(), "uid-1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantAllowed, got.Allowed)
				assert.Equal(t, tt.wantLimit, got.Limit)
				assert.Equal(t, tt.wantCount, got.DownloadCount)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestDownloadService_Record(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(r *RepoMock)
		wantCount  int
		wantLimit  int
		wantErr    error
	}{
		{
			name: "basic plan increments",
			setupMocks: func(r *RepoMock) {
				r.On("GetDownloadState", mock.Anything, "uid-1").Return("basic", 4, nil).Once()
				r.On("IncrementDownloadCount", mock.Anything, "uid-1", 5, false).Return(5, nil).Once()
			},
			wantCount: 5,
			wantLimit: 5,
		},
		{
			name: "premium passes unlimited flag",
			setupMocks: func(r *RepoMock) {
				r.On("GetDownloadState", mock.Anything, "uid-1").Return("premium", 100, nil).Once()
				r.On("IncrementDownloadCount", mock.Anything, "uid-1", 0, true).Return(101, nil).Once()
			},
			wantCount: 101,
			wantLimit: -1,
		},
		{
			name: "quota exhausted at the moment of increment",
			setupMocks: func(r *RepoMock) {
				r.On("GetDownloadState", mock.Anything, "uid-1").Return("free", 1, nil).Once()
				r.On("IncrementDownloadCount", mock.Anything, "uid-1", 2, false).
					Return(0, repository.ErrQuotaExceeded).Once()
			},
			wantErr: repository.ErrQuotaExceeded,
		},
		{
			name: "user not found",
			setupMocks: func(r *RepoMock) {
				r.On("GetDownloadState", mock.Anything, "uid-1").
					Return("", 0, repository.ErrNotFound).Once()
			},
			wantErr: repository.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			svc := New(repo, newNoopLogger())

			tt.setupMocks(repo)

			got, err := svc.Record(context.Background(), "uid-1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.True(t, got.Allowed)
				assert.Equal(t, tt.wantCount, got.DownloadCount)
				assert.Equal(t, tt.wantLimit, got.Limit)
			}

			repo.AssertExpectations(t)
		})
	}
}
