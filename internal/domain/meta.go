package domain

// DataMeta describes the provenance and freshness of the crash dataset.
// Written by the ETL step, read-only at serving time.
type DataMeta struct {
	SourceURL          string  `json:"sourceUrl"`
	DownloadedAt       string  `json:"downloadedAt"`
	RowCount           int64   `json:"rowCount"`
	LatestAccidentDate *string `json:"latestAccidentDate"`
	DataVersion        string  `json:"dataVersion"`
}
