package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/marcboeker/go-duckdb/v2"
	"go.uber.org/zap"

	"github.com/crashstats-service/internal/domain"
	"github.com/crashstats-service/internal/pkg/logger"
)

const defaultSourceURL = "https://opendata.transport.vic.gov.au/dataset/bb77800e-1857-4edc-bf9e-e188437a1c8e/resource/5df1f373-0c90-48f5-80e1-7b2a35507134/download/victorian_road_crash_data.csv"

// Offline dataset refresh: download the source CSV, build the crashes table
// with typed casts and a spatial index, and write meta.json for the serving
// layer. Never run concurrently with serving traffic.
func main() {
	var (
		source      = flag.String("source", defaultSourceURL, "CSV source URL or local path")
		dataDir     = flag.String("data-dir", "data", "output directory")
		lga         = flag.String("lga", "KINGSTON", "local government area to keep")
		dataVersion = flag.String("data-version", "", "data version label (defaults to latest accident date)")
		logLevel    = flag.String("log-level", "info", "log level")
	)
	flag.Parse()

	log, err := logger.New(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	if err := run(log, *source, *dataDir, *lga, *dataVersion); err != nil {
		log.Fatal("Dataset refresh failed", zap.Error(err))
	}
}

func run(log *zap.Logger, source, dataDir, lga, dataVersion string) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	csvPath := filepath.Join(dataDir, "raw.csv")
	dbPath := filepath.Join(dataDir, "crashes.duckdb")
	metaPath := filepath.Join(dataDir, "meta.json")
	downloadedAt := time.Now().UTC().Format(time.RFC3339)

	log.Info("Fetching crash data", zap.String("source", source))
	if err := fetchSource(source, csvPath); err != nil {
		return fmt.Errorf("fetch source: %w", err)
	}

	log.Info("Building DuckDB dataset", zap.String("path", dbPath))
	// Rebuild from scratch so a failed refresh never leaves a half-written file.
	if err := os.RemoveAll(dbPath); err != nil {
		return fmt.Errorf("remove old database: %w", err)
	}

	db, err := sqlx.Connect("duckdb", dbPath)
	if err != nil {
		return fmt.Errorf("open duckdb: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	for _, stmt := range []string{"PRAGMA threads=4", "INSTALL spatial", "LOAD spatial"} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", stmt, err)
		}
	}

	// CSV path and LGA are operator input, not request data; they go in as
	// escaped literals because DuckDB DDL does not take bound parameters.
	importSQL := buildImportSQL(csvPath, lga)
	if _, err := db.ExecContext(ctx, importSQL); err != nil {
		return fmt.Errorf("import crashes: %w", err)
	}

	if _, err := db.ExecContext(ctx, "CREATE INDEX IF NOT EXISTS crashes_geom_idx ON crashes USING RTREE (geom)"); err != nil {
		return fmt.Errorf("create spatial index: %w", err)
	}

	var snapshot struct {
		RowCount int64   `db:"row_count"`
		Latest   *string `db:"latest_accident_date"`
	}
	if err := db.GetContext(ctx, &snapshot, `
SELECT
	CAST(COUNT(*) AS BIGINT) AS row_count,
	CAST(MAX(accident_date) AS VARCHAR) AS latest_accident_date
FROM crashes`); err != nil {
		return fmt.Errorf("read dataset snapshot: %w", err)
	}

	version := dataVersion
	if version == "" && snapshot.Latest != nil {
		version = *snapshot.Latest
	}
	if version == "" {
		version = "unknown"
	}

	meta := domain.DataMeta{
		SourceURL:          source,
		DownloadedAt:       downloadedAt,
		RowCount:           snapshot.RowCount,
		LatestAccidentDate: snapshot.Latest,
		DataVersion:        version,
	}
	raw, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal meta: %w", err)
	}
	if err := os.WriteFile(metaPath, raw, 0o644); err != nil {
		return fmt.Errorf("write meta: %w", err)
	}

	log.Info("Dataset refreshed",
		zap.Int64("rows", meta.RowCount),
		zap.Stringp("latest_accident_date", meta.LatestAccidentDate),
		zap.String("data_version", meta.DataVersion),
	)
	return nil
}

func fetchSource(source, destination string) error {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := http.Get(source)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("download failed: %s", resp.Status)
		}
		out, err := os.Create(destination)
		if err != nil {
			return err
		}
		defer out.Close()
		_, err = io.Copy(out, resp.Body)
		return err
	}

	if abs, _ := filepath.Abs(source); abs == mustAbs(destination) {
		return nil
	}
	raw, err := os.ReadFile(source)
	if err != nil {
		return err
	}
	return os.WriteFile(destination, raw, 0o644)
}

func mustAbs(path string) string {
	abs, _ := filepath.Abs(path)
	return abs
}

func escapeLiteral(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

// buildImportSQL stages the raw CSV as text and materializes the crashes
// table: typed casts, speed zone parsed out of a noisy text field, point
// geometry from lon/lat. Rows without parseable coordinates are excluded,
// and the dataset is filtered to one municipality.
func buildImportSQL(csvPath, lga string) string {
	csvLiteral := escapeLiteral(mustAbs(csvPath))
	lgaLiteral := escapeLiteral(strings.ToUpper(lga))

	return `
CREATE OR REPLACE TABLE staging AS
SELECT *
FROM read_csv_auto(` + csvLiteral + `, header=true, ignore_errors=true, sample_size=-1, all_varchar=true);

CREATE OR REPLACE TABLE crashes AS
SELECT
	ACCIDENT_NO::TEXT AS accident_no,
	COALESCE(
		TRY_CAST(ACCIDENT_DATE AS DATE),
		TRY_STRPTIME(ACCIDENT_DATE, '%Y%m%d')::DATE
	) AS accident_date,
	ACCIDENT_TIME AS accident_time,
	ACCIDENT_TYPE AS accident_type,
	DCA_CODE_DESCRIPTION AS dca_code_description,
	SEVERITY AS severity,
	DAY_OF_WEEK AS day_of_week,
	TRY_CAST(NULLIF(TRIM(REGEXP_EXTRACT(SPEED_ZONE, '([0-9]+)')), '') AS INTEGER) AS speed_zone,
	ST_Point(CAST(LONGITUDE AS DOUBLE), CAST(LATITUDE AS DOUBLE)) AS geom,
	LGA_NAME AS lga_name,
	LIGHT_CONDITION AS light_condition,
	ROAD_GEOMETRY AS road_geometry,
	TRY_CAST(NULLIF(TRIM(TOTAL_PERSONS), '') AS INTEGER) AS total_persons,
	TRY_CAST(NULLIF(TRIM(BICYCLIST), '') AS INTEGER) AS bicyclist_count,
	TRY_CAST(NULLIF(TRIM(PEDESTRIAN), '') AS INTEGER) AS pedestrian_count,
	TRY_CAST(NULLIF(TRIM(HEAVYVEHICLE), '') AS INTEGER) AS heavy_vehicle_count,
	TRY_CAST(NULLIF(TRIM(PASSENGER), '') AS INTEGER) AS passenger_count,
	TRY_CAST(NULLIF(TRIM(DRIVER), '') AS INTEGER) AS driver_count,
	TRY_CAST(NULLIF(TRIM(PILLION), '') AS INTEGER) AS pillion_count,
	TRY_CAST(NULLIF(TRIM(MOTORCYCLIST), '') AS INTEGER) AS motorcyclist_count,
	TRY_CAST(NULLIF(TRIM(UNKNOWN), '') AS INTEGER) AS unknown_count,
	TRY_CAST(NULLIF(TRIM(PED_CYCLIST_5_12), '') AS INTEGER) AS ped_cyclist_5_12,
	TRY_CAST(NULLIF(TRIM(PED_CYCLIST_13_18), '') AS INTEGER) AS ped_cyclist_13_18,
	TRY_CAST(NULLIF(TRIM(OLD_PED_65_AND_OVER), '') AS INTEGER) AS old_ped_65_and_over,
	TRY_CAST(NULLIF(TRIM(OLD_DRIVER_75_AND_OVER), '') AS INTEGER) AS old_driver_75_and_over,
	TRY_CAST(NULLIF(TRIM(YOUNG_DRIVER_18_25), '') AS INTEGER) AS young_driver_18_25,
	TRY_CAST(NULLIF(TRIM(NO_OF_VEHICLES), '') AS INTEGER) AS no_of_vehicles,
	TRY_CAST(NULLIF(TRIM(PASSENGERVEHICLE), '') AS INTEGER) AS passenger_vehicle_count,
	TRY_CAST(NULLIF(TRIM(MOTORCYCLE), '') AS INTEGER) AS motorcycle_count,
	TRY_CAST(NULLIF(TRIM(PT_VEHICLE), '') AS INTEGER) AS public_transport_vehicle_count,
	RMA AS rma
FROM staging
WHERE TRY_CAST(LONGITUDE AS DOUBLE) IS NOT NULL
  AND TRY_CAST(LATITUDE AS DOUBLE) IS NOT NULL
  AND UPPER(LGA_NAME) = ` + lgaLiteral + `;

DROP TABLE staging;
`
}
