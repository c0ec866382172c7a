package dto

import (
	"github.com/crashstats-service/internal/domain"
	"github.com/crashstats-service/internal/pkg/cluster"
)

// SummaryResponse is the aggregate answer plus the dataset freshness label.
type SummaryResponse struct {
	*domain.Summary
	DataVersion *string `json:"dataVersion"`
}

// CrashesResponse lists individual crash points, newest first.
type CrashesResponse struct {
	Results []domain.CrashPoint `json:"results"`
}

// ClustersResponse groups co-located crash points into map markers.
type ClustersResponse struct {
	Clusters []*cluster.Cluster `json:"clusters"`
}
