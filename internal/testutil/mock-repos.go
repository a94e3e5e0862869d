package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"keyword-match-service/internal/domain"
)

// MockKeywordSource is a mock of KeywordSource.
type MockKeywordSource struct {
	mock.Mock
}

func (m *MockKeywordSource) Fetch(ctx context.Context, filter, version string) (*domain.KeywordSet, time.Duration, error) {
	args := m.Called(ctx, filter, version)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*domain.KeywordSet), args.Get(1).(time.Duration), args.Error(2)
}

// MockSnapshotRepo is a mock of SnapshotRepository.
type MockSnapshotRepo struct {
	mock.Mock
}

func (m *MockSnapshotRepo) Upsert(ctx context.Context, snap *domain.Snapshot) error {
	args := m.Called(ctx, snap)
	return args.Error(0)
}

func (m *MockSnapshotRepo) GetByKey(ctx context.Context, cacheKey string) (*domain.Snapshot, error) {
	args := m.Called(ctx, cacheKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Snapshot), args.Error(1)
}

func (m *MockSnapshotRepo) List(ctx context.Context) ([]*domain.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Snapshot), args.Error(1)
}

// MockAuditRepo is a mock of AuditRepository.
type MockAuditRepo struct {
	mock.Mock
}

func (m *MockAuditRepo) Record(ctx context.Context, rec *domain.MatchRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockAuditRepo) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.MatchRecord, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.MatchRecord), args.Int(1), args.Error(2)
}

func (m *MockAuditRepo) Stats(ctx context.Context) (*domain.MatchStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MatchStats), args.Error(1)
}
