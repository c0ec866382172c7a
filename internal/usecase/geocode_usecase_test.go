package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/crashstats-service/internal/pkg/errors"
	"github.com/crashstats-service/internal/usecase"
)

func TestGeocodeUseCase_ForwardGeocode(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("success under the daily cap", func(t *testing.T) {
		mockGeocode := &MockGeocodeRepository{}
		mockCounter := &MockCounterRepository{}

		mockCounter.On("IncrDailyCounter", ctx, "geocode:mapbox").Return(int64(3), nil)
		mockGeocode.On("ForwardGeocode", ctx, "Mordialloc").Return([]byte(`{"features":[]}`), nil)

		uc := usecase.NewGeocodeUseCase(mockGeocode, mockCounter, 100, logger)
		body, err := uc.ForwardGeocode(ctx, "Mordialloc")

		require.NoError(t, err)
		assert.Equal(t, `{"features":[]}`, string(body))
		mockCounter.AssertExpectations(t)
		mockGeocode.AssertExpectations(t)
	})

	t.Run("query is trimmed", func(t *testing.T) {
		mockGeocode := &MockGeocodeRepository{}
		mockGeocode.On("ForwardGeocode", ctx, "Mordialloc").Return([]byte(`{}`), nil)

		uc := usecase.NewGeocodeUseCase(mockGeocode, nil, 0, logger)
		_, err := uc.ForwardGeocode(ctx, "  Mordialloc  ")

		require.NoError(t, err)
		mockGeocode.AssertExpectations(t)
	})

	t.Run("empty query", func(t *testing.T) {
		mockGeocode := &MockGeocodeRepository{}

		uc := usecase.NewGeocodeUseCase(mockGeocode, nil, 0, logger)
		body, err := uc.ForwardGeocode(ctx, "   ")

		assert.Nil(t, body)
		assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
		mockGeocode.AssertNotCalled(t, "ForwardGeocode", mock.Anything, mock.Anything)
	})

	t.Run("daily cap exceeded", func(t *testing.T) {
		mockGeocode := &MockGeocodeRepository{}
		mockCounter := &MockCounterRepository{}

		mockCounter.On("IncrDailyCounter", ctx, "geocode:mapbox").Return(int64(101), nil)

		uc := usecase.NewGeocodeUseCase(mockGeocode, mockCounter, 100, logger)
		body, err := uc.ForwardGeocode(ctx, "Mordialloc")

		assert.Nil(t, body)
		assert.ErrorIs(t, err, apperrors.ErrGeocodeDailyLimit)
		mockGeocode.AssertNotCalled(t, "ForwardGeocode", mock.Anything, mock.Anything)
	})

	t.Run("count equal to the cap still passes", func(t *testing.T) {
		mockGeocode := &MockGeocodeRepository{}
		mockCounter := &MockCounterRepository{}

		mockCounter.On("IncrDailyCounter", ctx, "geocode:mapbox").Return(int64(100), nil)
		mockGeocode.On("ForwardGeocode", ctx, "Mordialloc").Return([]byte(`{}`), nil)

		uc := usecase.NewGeocodeUseCase(mockGeocode, mockCounter, 100, logger)
		_, err := uc.ForwardGeocode(ctx, "Mordialloc")

		require.NoError(t, err)
	})

	t.Run("counter failure does not block geocoding", func(t *testing.T) {
		mockGeocode := &MockGeocodeRepository{}
		mockCounter := &MockCounterRepository{}

		mockCounter.On("IncrDailyCounter", ctx, "geocode:mapbox").Return(int64(0), errors.New("redis down"))
		mockGeocode.On("ForwardGeocode", ctx, "Mordialloc").Return([]byte(`{}`), nil)

		uc := usecase.NewGeocodeUseCase(mockGeocode, mockCounter, 100, logger)
		_, err := uc.ForwardGeocode(ctx, "Mordialloc")

		require.NoError(t, err)
		mockGeocode.AssertExpectations(t)
	})

	t.Run("no counter configured skips the cap", func(t *testing.T) {
		mockGeocode := &MockGeocodeRepository{}
		mockGeocode.On("ForwardGeocode", ctx, "Mordialloc").Return([]byte(`{}`), nil)

		uc := usecase.NewGeocodeUseCase(mockGeocode, nil, 100, logger)
		_, err := uc.ForwardGeocode(ctx, "Mordialloc")

		require.NoError(t, err)
		mockGeocode.AssertExpectations(t)
	})

	t.Run("upstream failure maps to unavailable", func(t *testing.T) {
		mockGeocode := &MockGeocodeRepository{}
		mockGeocode.On("ForwardGeocode", ctx, "Mordialloc").Return(nil, errors.New("connection refused"))

		uc := usecase.NewGeocodeUseCase(mockGeocode, nil, 0, logger)
		body, err := uc.ForwardGeocode(ctx, "Mordialloc")

		assert.Nil(t, body)
		assert.ErrorIs(t, err, apperrors.ErrGeocodeUnavailable)
	})
}
