package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/crashstats-service/internal/domain"
	"github.com/crashstats-service/internal/domain/repository"
	apperrors "github.com/crashstats-service/internal/pkg/errors"
)

// MetaUseCase exposes dataset provenance for the dashboard footer.
type MetaUseCase struct {
	metaRepo repository.MetaRepository
	logger   *zap.Logger
}

func NewMetaUseCase(metaRepo repository.MetaRepository, logger *zap.Logger) *MetaUseCase {
	return &MetaUseCase{
		metaRepo: metaRepo,
		logger:   logger,
	}
}

func (uc *MetaUseCase) GetMeta(ctx context.Context) (*domain.DataMeta, error) {
	meta, err := uc.metaRepo.GetMeta(ctx)
	if err != nil {
		uc.logger.Error("Failed to read data metadata", zap.Error(err))
		return nil, apperrors.ErrInternalServer
	}
	return meta, nil
}
