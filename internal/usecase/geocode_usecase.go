package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/crashstats-service/internal/domain/repository"
	apperrors "github.com/crashstats-service/internal/pkg/errors"
)

// GeocodeUseCase proxies forward geocoding through the upstream provider,
// enforcing an optional Redis-backed daily request cap.
type GeocodeUseCase struct {
	geocodeRepo repository.GeocodeRepository
	counterRepo repository.CounterRepository // nil when Redis is not configured
	dailyLimit  int
	logger      *zap.Logger
}

func NewGeocodeUseCase(
	geocodeRepo repository.GeocodeRepository,
	counterRepo repository.CounterRepository,
	dailyLimit int,
	logger *zap.Logger,
) *GeocodeUseCase {
	return &GeocodeUseCase{
		geocodeRepo: geocodeRepo,
		counterRepo: counterRepo,
		dailyLimit:  dailyLimit,
		logger:      logger,
	}
}

func (uc *GeocodeUseCase) ForwardGeocode(ctx context.Context, query string) ([]byte, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.ErrInvalidRequest
	}

	if uc.dailyLimit > 0 {
		if uc.counterRepo == nil {
			uc.logger.Warn("Geocode daily cap configured but Redis is not; cap disabled")
		} else {
			count, err := uc.counterRepo.IncrDailyCounter(ctx, "geocode:mapbox")
			if err != nil {
				// Counter trouble should not take geocoding down with it.
				uc.logger.Warn("Daily counter unavailable, skipping cap", zap.Error(err))
			} else if count > int64(uc.dailyLimit) {
				return nil, apperrors.ErrGeocodeDailyLimit
			}
		}
	}

	body, err := uc.geocodeRepo.ForwardGeocode(ctx, query)
	if err != nil {
		uc.logger.Error("Forward geocode failed", zap.Error(err))
		return nil, apperrors.ErrGeocodeUnavailable
	}

	return body, nil
}
