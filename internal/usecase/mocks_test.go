package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/crashstats-service/internal/domain"
)

// MockCrashRepository is a mock of CrashRepository
type MockCrashRepository struct {
	mock.Mock
}

func (m *MockCrashRepository) QuerySummary(ctx context.Context, polygonGeoJSON string, filters *domain.Filters) (*domain.Summary, error) {
	args := m.Called(ctx, polygonGeoJSON, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Summary), args.Error(1)
}

func (m *MockCrashRepository) QueryCrashes(ctx context.Context, polygonGeoJSON string, filters *domain.Filters, limit int) ([]domain.CrashPoint, error) {
	args := m.Called(ctx, polygonGeoJSON, filters, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CrashPoint), args.Error(1)
}

// MockMetaRepository is a mock of MetaRepository
type MockMetaRepository struct {
	mock.Mock
}

func (m *MockMetaRepository) GetMeta(ctx context.Context) (*domain.DataMeta, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DataMeta), args.Error(1)
}

// MockGeocodeRepository is a mock of GeocodeRepository
type MockGeocodeRepository struct {
	mock.Mock
}

func (m *MockGeocodeRepository) ForwardGeocode(ctx context.Context, query string) ([]byte, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockCounterRepository is a mock of CounterRepository
type MockCounterRepository struct {
	mock.Mock
}

func (m *MockCounterRepository) IncrDailyCounter(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}
