package dto

import (
	"encoding/json"

	"github.com/crashstats-service/internal/domain"
)

// SummaryRequest asks for aggregate statistics inside a drawn polygon.
// Polygon is kept raw here; the geometry validator owns its interpretation.
type SummaryRequest struct {
	Polygon json.RawMessage `json:"polygon" validate:"required"`
	Filters *domain.Filters `json:"filters,omitempty"`
}

// CrashesRequest asks for individual crash points. Polygon is optional:
// absent means no spatial constraint.
type CrashesRequest struct {
	Polygon   json.RawMessage `json:"polygon,omitempty"`
	Filters   *domain.Filters `json:"filters,omitempty"`
	Limit     int             `json:"limit,omitempty" validate:"omitempty,min=1,max=5000"`
	Clustered bool            `json:"clustered,omitempty"`
}

// HasPolygon reports whether the request carries a spatial constraint.
func (r *CrashesRequest) HasPolygon() bool {
	trimmed := string(r.Polygon)
	return trimmed != "" && trimmed != "null"
}
