package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/crashstats-service/internal/domain"
	apperrors "github.com/crashstats-service/internal/pkg/errors"
	"github.com/crashstats-service/internal/usecase"
	"github.com/crashstats-service/internal/usecase/dto"
)

func severityPtr(label string) *string { return &label }

func TestCrashesUseCase_GetCrashes(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("with polygon", func(t *testing.T) {
		mockCrash := &MockCrashRepository{}
		points := []domain.CrashPoint{
			{AccidentNo: "T0002", Lat: -37.9, Lon: 145.1},
			{AccidentNo: "T0001", Lat: -37.8, Lon: 145.0},
		}
		mockCrash.On("QueryCrashes", ctx, mock.AnythingOfType("string"), (*domain.Filters)(nil), 0).
			Return(points, nil)

		uc := usecase.NewCrashesUseCase(mockCrash, logger)
		resp, err := uc.GetCrashes(ctx, dto.CrashesRequest{Polygon: json.RawMessage(testPolygon)})

		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, points, resp.Results)
	})

	t.Run("without polygon queries unconstrained", func(t *testing.T) {
		mockCrash := &MockCrashRepository{}
		mockCrash.On("QueryCrashes", ctx, "", (*domain.Filters)(nil), 100).
			Return([]domain.CrashPoint{}, nil)

		uc := usecase.NewCrashesUseCase(mockCrash, logger)
		resp, err := uc.GetCrashes(ctx, dto.CrashesRequest{Limit: 100})

		require.NoError(t, err)
		assert.Empty(t, resp.Results)
		mockCrash.AssertExpectations(t)
	})

	t.Run("null polygon treated as absent", func(t *testing.T) {
		mockCrash := &MockCrashRepository{}
		mockCrash.On("QueryCrashes", ctx, "", (*domain.Filters)(nil), 0).
			Return([]domain.CrashPoint{}, nil)

		uc := usecase.NewCrashesUseCase(mockCrash, logger)
		_, err := uc.GetCrashes(ctx, dto.CrashesRequest{Polygon: json.RawMessage(`null`)})

		require.NoError(t, err)
		mockCrash.AssertExpectations(t)
	})

	t.Run("invalid polygon short-circuits", func(t *testing.T) {
		mockCrash := &MockCrashRepository{}

		uc := usecase.NewCrashesUseCase(mockCrash, logger)
		resp, err := uc.GetCrashes(ctx, dto.CrashesRequest{
			Polygon: json.RawMessage(`{"type":"Polygon","coordinates":"bad"}`),
		})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, apperrors.ErrMalformedCoordinates)
		mockCrash.AssertNotCalled(t, "QueryCrashes", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("repository error propagates", func(t *testing.T) {
		mockCrash := &MockCrashRepository{}
		mockCrash.On("QueryCrashes", ctx, mock.AnythingOfType("string"), (*domain.Filters)(nil), 0).
			Return(nil, apperrors.ErrSpatialCapabilityUnavailable)

		uc := usecase.NewCrashesUseCase(mockCrash, logger)
		resp, err := uc.GetCrashes(ctx, dto.CrashesRequest{Polygon: json.RawMessage(testPolygon)})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, apperrors.ErrSpatialCapabilityUnavailable)
	})
}

func TestCrashesUseCase_GetClusters(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("co-located points group into one cluster", func(t *testing.T) {
		mockCrash := &MockCrashRepository{}
		points := []domain.CrashPoint{
			{AccidentNo: "A", Lat: -37.8, Lon: 145.0, Severity: severityPtr(domain.SeverityLabelNonInjury)},
			{AccidentNo: "B", Lat: -37.8, Lon: 145.0, Severity: severityPtr(domain.SeverityLabelFatal)},
			{AccidentNo: "C", Lat: -37.9, Lon: 145.1, Severity: severityPtr(domain.SeverityLabelOther)},
		}
		mockCrash.On("QueryCrashes", ctx, mock.AnythingOfType("string"), (*domain.Filters)(nil), 0).
			Return(points, nil)

		uc := usecase.NewCrashesUseCase(mockCrash, logger)
		resp, err := uc.GetClusters(ctx, dto.CrashesRequest{Polygon: json.RawMessage(testPolygon)})

		require.NoError(t, err)
		require.Len(t, resp.Clusters, 2)
		assert.Equal(t, 2, resp.Clusters[0].Count)
		assert.Equal(t, domain.SeverityLabelFatal, resp.Clusters[0].Severity)
		assert.Equal(t, 1, resp.Clusters[1].Count)
	})

	t.Run("empty result yields empty cluster list", func(t *testing.T) {
		mockCrash := &MockCrashRepository{}
		mockCrash.On("QueryCrashes", ctx, "", (*domain.Filters)(nil), 0).
			Return([]domain.CrashPoint{}, nil)

		uc := usecase.NewCrashesUseCase(mockCrash, logger)
		resp, err := uc.GetClusters(ctx, dto.CrashesRequest{})

		require.NoError(t, err)
		assert.NotNil(t, resp.Clusters)
		assert.Empty(t, resp.Clusters)
	})
}
