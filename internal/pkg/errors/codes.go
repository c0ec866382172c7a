package errors

import "net/http"

var (
	ErrInvalidPayload = New(
		"INVALID_PAYLOAD",
		"Polygon payload is required and must be a GeoJSON object",
		http.StatusBadRequest,
	)

	ErrUnsupportedGeometryType = New(
		"UNSUPPORTED_GEOMETRY_TYPE",
		"Polygon geometry must be a Polygon or MultiPolygon",
		http.StatusBadRequest,
	)

	ErrMalformedCoordinates = New(
		"MALFORMED_COORDINATES",
		"Polygon coordinates are missing or malformed",
		http.StatusBadRequest,
	)

	ErrInvalidGeometry = New(
		"INVALID_GEOMETRY",
		"Polygon geometry is invalid",
		http.StatusBadRequest,
	)

	ErrSpatialCapabilityUnavailable = New(
		"SPATIAL_CAPABILITY_UNAVAILABLE",
		"Spatial extension could not be loaded",
		http.StatusInternalServerError,
	)

	ErrQueryExecution = New(
		"QUERY_EXECUTION_ERROR",
		"Crash query failed",
		http.StatusInternalServerError,
	)

	ErrRateLimited = New(
		"RATE_LIMITED",
		"Too many requests. Please slow down.",
		http.StatusTooManyRequests,
	)

	ErrGeocodeDailyLimit = New(
		"GEOCODE_DAILY_LIMIT",
		"Geocoding temporarily disabled (daily limit reached)",
		http.StatusTooManyRequests,
	)

	ErrGeocodeUnavailable = New(
		"GEOCODE_UNAVAILABLE",
		"Geocoding unavailable",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
