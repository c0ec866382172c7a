package repository

import (
	"context"

	"github.com/crashstats-service/internal/domain"
)

// CrashRepository answers spatial queries over the read-only crash dataset.
// polygonGeoJSON is the geometry part of a validated GeoJSON feature; for
// QueryCrashes an empty string means "no spatial constraint".
type CrashRepository interface {
	QuerySummary(ctx context.Context, polygonGeoJSON string, filters *domain.Filters) (*domain.Summary, error)
	QueryCrashes(ctx context.Context, polygonGeoJSON string, filters *domain.Filters, limit int) ([]domain.CrashPoint, error)
}

// MetaRepository reports dataset provenance written by the ETL step.
type MetaRepository interface {
	GetMeta(ctx context.Context) (*domain.DataMeta, error)
}

// CounterRepository backs daily usage caps (geocode proxy). Counters reset
// at UTC midnight.
type CounterRepository interface {
	IncrDailyCounter(ctx context.Context, name string) (int64, error)
}

// GeocodeRepository proxies forward geocoding to the upstream provider and
// returns the provider response verbatim.
type GeocodeRepository interface {
	ForwardGeocode(ctx context.Context, query string) ([]byte, error)
}
