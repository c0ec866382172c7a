package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/crashstats-service/internal/domain"
	"github.com/crashstats-service/internal/domain/repository"
	"github.com/crashstats-service/internal/pkg/cluster"
	"github.com/crashstats-service/internal/pkg/geometry"
	"github.com/crashstats-service/internal/usecase/dto"
)

// CrashesUseCase answers point listing requests, optionally grouping
// co-located points into map clusters.
type CrashesUseCase struct {
	crashRepo repository.CrashRepository
	logger    *zap.Logger
}

func NewCrashesUseCase(crashRepo repository.CrashRepository, logger *zap.Logger) *CrashesUseCase {
	return &CrashesUseCase{
		crashRepo: crashRepo,
		logger:    logger,
	}
}

func (uc *CrashesUseCase) GetCrashes(ctx context.Context, req dto.CrashesRequest) (*dto.CrashesResponse, error) {
	points, err := uc.queryPoints(ctx, req)
	if err != nil {
		return nil, err
	}
	return &dto.CrashesResponse{Results: points}, nil
}

func (uc *CrashesUseCase) GetClusters(ctx context.Context, req dto.CrashesRequest) (*dto.ClustersResponse, error) {
	points, err := uc.queryPoints(ctx, req)
	if err != nil {
		return nil, err
	}
	return &dto.ClustersResponse{Clusters: cluster.Build(points)}, nil
}

func (uc *CrashesUseCase) queryPoints(ctx context.Context, req dto.CrashesRequest) ([]domain.CrashPoint, error) {
	var polygonJSON string
	if req.HasPolygon() {
		feature, err := geometry.ValidateFeature(req.Polygon)
		if err != nil {
			return nil, err
		}
		polygonJSON = feature.GeometryJSON()
	}

	return uc.crashRepo.QueryCrashes(ctx, polygonJSON, req.Filters, req.Limit)
}
