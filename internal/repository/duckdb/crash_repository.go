package duckdb

import (
	"context"
	"database/sql"
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/crashstats-service/internal/domain"
	"github.com/crashstats-service/internal/domain/repository"
	apperrors "github.com/crashstats-service/internal/pkg/errors"
)

// maxPointResults is the absolute cap on point listings, bounding both the
// response size and client rendering cost.
const maxPointResults = 5000

type crashRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewCrashRepository(db *DB, logger *zap.Logger) repository.CrashRepository {
	return &crashRepository{
		db:     db,
		logger: logger,
	}
}

// QuerySummary runs the fixed battery of aggregate queries over one shared
// filtered view: crashes with non-null geometry intersecting the polygon and
// matching the filter predicate. The nine queries run sequentially on one
// session; either all complete or the whole operation fails.
func (r *crashRepository) QuerySummary(ctx context.Context, polygonGeoJSON string, filters *domain.Filters) (*domain.Summary, error) {
	session, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, r.wrapQueryError("acquire session", err)
	}
	defer session.Close()

	filterSQL, filterParams := BuildFilterClause(filters)
	cte := summaryCTE(filterSQL)
	args := make([]interface{}, 0, len(filterParams)+1)
	args = append(args, polygonGeoJSON)
	args = append(args, filterParams...)

	summary := &domain.Summary{}

	if err := session.Get(ctx, &summary.Total, cte+`SELECT CAST(COUNT(*) AS BIGINT) AS count FROM filtered`, args...); err != nil {
		return nil, r.wrapQueryError("total", err)
	}

	groupings := []struct {
		name   string
		expr   string
		target *[]domain.SummaryBucket
	}{
		{"severity", "COALESCE(severity, 'Unknown')", &summary.BySeverity},
		{"accident type", "COALESCE(accident_type, 'Unknown')", &summary.ByType},
		{"speed zone", "COALESCE(CAST(speed_zone AS VARCHAR), 'Unknown')", &summary.BySpeedZone},
		{"road geometry", "COALESCE(road_geometry, 'Unknown')", &summary.ByRoadGeometry},
		{"day of week", "COALESCE(day_of_week, 'Unknown')", &summary.ByDayOfWeek},
		{"light condition", "COALESCE(light_condition, 'Unknown')", &summary.ByLightCondition},
	}

	for _, grouping := range groupings {
		// Secondary sort on the bucket label keeps tied counts byte-stable
		// across runs.
		query := cte + `
SELECT ` + grouping.expr + ` AS bucket, CAST(COUNT(*) AS BIGINT) AS count
FROM filtered
GROUP BY 1
ORDER BY count DESC, bucket ASC`

		buckets := []domain.SummaryBucket{}
		if err := session.Select(ctx, &buckets, query, args...); err != nil {
			return nil, r.wrapQueryError(grouping.name, err)
		}
		*grouping.target = buckets
	}

	if err := session.Get(ctx, &summary.Totals, cte+`
SELECT
	CAST(COALESCE(SUM(total_persons), 0) AS BIGINT) AS persons,
	CAST(COALESCE(SUM(pedestrian_count), 0) AS BIGINT) AS pedestrians,
	CAST(COALESCE(SUM(bicyclist_count), 0) AS BIGINT) AS cyclists,
	CAST(COALESCE(SUM(heavy_vehicle_count), 0) AS BIGINT) AS heavy_vehicles
FROM filtered`, args...); err != nil {
		return nil, r.wrapQueryError("person totals", err)
	}

	var latest sql.NullString
	if err := session.Get(ctx, &latest, cte+`SELECT CAST(MAX(accident_date) AS VARCHAR) AS latest FROM filtered`, args...); err != nil {
		return nil, r.wrapQueryError("latest date", err)
	}
	if latest.Valid {
		summary.LatestAccidentDate = &latest.String
	}

	return summary, nil
}

// QueryCrashes lists individual crashes for map display, newest accident
// date first with nulls last. An empty polygonGeoJSON means no spatial
// constraint. The result set is capped at maxPointResults regardless of the
// requested limit.
func (r *crashRepository) QueryCrashes(ctx context.Context, polygonGeoJSON string, filters *domain.Filters, limit int) ([]domain.CrashPoint, error) {
	session, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, r.wrapQueryError("acquire session", err)
	}
	defer session.Close()

	if limit <= 0 || limit > maxPointResults {
		limit = maxPointResults
	}

	filterSQL, filterParams := BuildFilterClause(filters)
	query := pointsQuery(polygonGeoJSON != "", filterSQL)

	args := make([]interface{}, 0, len(filterParams)+2)
	if polygonGeoJSON != "" {
		args = append(args, polygonGeoJSON)
	}
	args = append(args, filterParams...)
	args = append(args, limit)

	points := []domain.CrashPoint{}
	if err := session.Select(ctx, &points, query, args...); err != nil {
		return nil, r.wrapQueryError("points", err)
	}

	return points, nil
}

func (r *crashRepository) wrapQueryError(op string, err error) error {
	var appErr *apperrors.AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	// Full detail stays server-side; clients see a generic failure.
	r.logger.Error("Crash query failed", zap.String("op", op), zap.Error(err))
	return apperrors.ErrQueryExecution
}

func summaryCTE(filterSQL string) string {
	where := ""
	if filterSQL != "" {
		where = "\n	  AND " + filterSQL
	}
	return `
WITH input AS (SELECT ST_GeomFromGeoJSON(?) AS geom),
filtered AS (
	SELECT crashes.*
	FROM crashes, input
	WHERE crashes.geom IS NOT NULL
	  AND ST_Intersects(crashes.geom, input.geom)` + where + `
)
`
}

// pointColumns projects the point-display shape: classification, participant
// counts and coordinates extracted from the stored geometry.
const pointColumns = `
	crashes.accident_no AS accident_no,
	CAST(crashes.accident_date AS VARCHAR) AS accident_date,
	crashes.accident_type AS accident_type,
	crashes.severity AS severity,
	CAST(crashes.speed_zone AS VARCHAR) AS speed_zone,
	crashes.road_geometry AS road_geometry,
	crashes.day_of_week AS day_of_week,
	crashes.light_condition AS light_condition,
	COALESCE(crashes.total_persons, 0) AS total_persons,
	COALESCE(crashes.pedestrian_count, 0) AS pedestrian_count,
	COALESCE(crashes.bicyclist_count, 0) AS bicyclist_count,
	COALESCE(crashes.heavy_vehicle_count, 0) AS heavy_vehicle_count,
	COALESCE(crashes.passenger_vehicle_count, 0) AS passenger_vehicle_count,
	COALESCE(crashes.motorcycle_count, 0) AS motorcycle_count,
	COALESCE(crashes.public_transport_vehicle_count, 0) AS public_transport_vehicle_count,
	COALESCE(crashes.passenger_count, 0) AS passenger_count,
	COALESCE(crashes.driver_count, 0) AS driver_count,
	COALESCE(crashes.pillion_count, 0) AS pillion_count,
	COALESCE(crashes.motorcyclist_count, 0) AS motorcyclist_count,
	COALESCE(crashes.unknown_count, 0) AS unknown_count,
	COALESCE(crashes.ped_cyclist_5_12, 0) AS ped_cyclist_5_12,
	COALESCE(crashes.ped_cyclist_13_18, 0) AS ped_cyclist_13_18,
	COALESCE(crashes.old_ped_65_and_over, 0) AS old_ped_65_and_over,
	COALESCE(crashes.old_driver_75_and_over, 0) AS old_driver_75_and_over,
	COALESCE(crashes.young_driver_18_25, 0) AS young_driver_18_25,
	COALESCE(crashes.no_of_vehicles, 0) AS no_of_vehicles,
	ST_X(crashes.geom) AS lon,
	ST_Y(crashes.geom) AS lat`

func pointsQuery(withPolygon bool, filterSQL string) string {
	where := ""
	if filterSQL != "" {
		where = "\n	  AND " + filterSQL
	}

	if withPolygon {
		return `
WITH input AS (SELECT ST_GeomFromGeoJSON(?) AS geom),
filtered AS (
	SELECT` + pointColumns + `
	FROM crashes, input
	WHERE crashes.geom IS NOT NULL
	  AND ST_Intersects(crashes.geom, input.geom)` + where + `
),
limited AS (
	SELECT *
	FROM filtered
	ORDER BY accident_date DESC NULLS LAST
	LIMIT ?
)
SELECT * FROM limited`
	}

	return `
WITH filtered AS (
	SELECT` + pointColumns + `
	FROM crashes
	WHERE crashes.geom IS NOT NULL` + where + `
),
limited AS (
	SELECT *
	FROM filtered
	ORDER BY accident_date DESC NULLS LAST
	LIMIT ?
)
SELECT * FROM limited`
}
