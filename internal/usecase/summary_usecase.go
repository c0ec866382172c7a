package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/crashstats-service/internal/domain/repository"
	"github.com/crashstats-service/internal/pkg/geometry"
	"github.com/crashstats-service/internal/usecase/dto"
)

// SummaryUseCase answers polygon summary requests: validate the polygon,
// run the aggregate battery, attach the dataset freshness label.
type SummaryUseCase struct {
	crashRepo repository.CrashRepository
	metaRepo  repository.MetaRepository
	logger    *zap.Logger
}

func NewSummaryUseCase(
	crashRepo repository.CrashRepository,
	metaRepo repository.MetaRepository,
	logger *zap.Logger,
) *SummaryUseCase {
	return &SummaryUseCase{
		crashRepo: crashRepo,
		metaRepo:  metaRepo,
		logger:    logger,
	}
}

func (uc *SummaryUseCase) GetSummary(ctx context.Context, req dto.SummaryRequest) (*dto.SummaryResponse, error) {
	feature, err := geometry.ValidateFeature(req.Polygon)
	if err != nil {
		return nil, err
	}

	summary, err := uc.crashRepo.QuerySummary(ctx, feature.GeometryJSON(), req.Filters)
	if err != nil {
		return nil, err
	}

	resp := &dto.SummaryResponse{Summary: summary}

	// Freshness label is best-effort: a missing meta file must not fail the
	// summary itself.
	if meta, metaErr := uc.metaRepo.GetMeta(ctx); metaErr == nil {
		resp.DataVersion = &meta.DataVersion
	} else {
		uc.logger.Warn("Failed to read data metadata", zap.Error(metaErr))
	}

	return resp, nil
}
