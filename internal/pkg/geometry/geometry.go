package geometry

import (
	"bytes"
	"encoding/json"

	"github.com/peterstace/simplefeatures/geom"

	"github.com/crashstats-service/internal/pkg/errors"
)

// Feature is a normalized GeoJSON feature wrapping a Polygon or MultiPolygon.
// Bare geometry payloads are wrapped into a feature with empty properties so
// both input shapes behave identically downstream.
type Feature struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   json.RawMessage        `json:"geometry"`
}

// GeometryJSON returns the geometry as GeoJSON text, ready to bind into
// ST_GeomFromGeoJSON.
func (f *Feature) GeometryJSON() string {
	return string(f.Geometry)
}

type geometryHeader struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// ValidateFeature validates and normalizes an inbound polygon payload. It
// accepts either a Feature or a bare geometry and fails with a client-input
// AppError when the payload is missing, the geometry type is unsupported,
// the coordinate structure does not match the declared type, or the geometry
// breaks OGC validity rules (open rings, self-intersections, bad hole
// nesting). Pure: no side effects.
func ValidateFeature(raw json.RawMessage) (*Feature, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, errors.ErrInvalidPayload
	}
	if trimmed[0] != '{' {
		return nil, errors.ErrInvalidPayload
	}

	var probe struct {
		Type       string                 `json:"type"`
		Properties map[string]interface{} `json:"properties"`
		Geometry   json.RawMessage        `json:"geometry"`
	}
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return nil, errors.ErrInvalidPayload
	}

	feature := &Feature{Type: "Feature", Properties: map[string]interface{}{}}
	if probe.Type == "Feature" {
		geomRaw := bytes.TrimSpace(probe.Geometry)
		if len(geomRaw) == 0 || bytes.Equal(geomRaw, []byte("null")) {
			return nil, errors.ErrInvalidPayload
		}
		feature.Geometry = geomRaw
		if probe.Properties != nil {
			feature.Properties = probe.Properties
		}
	} else {
		// Bare geometry payload: wrap it as a feature.
		feature.Geometry = trimmed
	}

	var header geometryHeader
	if err := json.Unmarshal(feature.Geometry, &header); err != nil {
		return nil, errors.ErrInvalidPayload
	}

	switch header.Type {
	case "Polygon":
		var coords [][][]float64
		if err := json.Unmarshal(header.Coordinates, &coords); err != nil || coords == nil {
			return nil, errors.ErrMalformedCoordinates
		}
	case "MultiPolygon":
		var coords [][][][]float64
		if err := json.Unmarshal(header.Coordinates, &coords); err != nil || coords == nil {
			return nil, errors.ErrMalformedCoordinates
		}
	default:
		return nil, errors.ErrUnsupportedGeometryType
	}

	// Structure is sound at this point, so any remaining failure is an OGC
	// validity violation.
	if _, err := geom.UnmarshalGeoJSON(feature.Geometry); err != nil {
		return nil, errors.ErrInvalidGeometry.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		})
	}

	return feature, nil
}
