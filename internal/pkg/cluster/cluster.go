package cluster

import (
	"fmt"

	"github.com/crashstats-service/internal/domain"
)

// Cluster groups crashes sharing the same coordinate (rounded to 6 decimal
// places, roughly 0.1m) into one map marker. It carries the multiplicity and
// the most severe classification among the co-located crashes.
type Cluster struct {
	Lon      float64             `json:"lon"`
	Lat      float64             `json:"lat"`
	Count    int                 `json:"count"`
	Severity string              `json:"severity"`
	Rank     int                 `json:"severityRank"`
	Crashes  []domain.CrashPoint `json:"crashes"`
}

// Build groups the ordered point results into clusters. Output follows
// first-seen cluster order; within a cluster the displayed severity is the
// highest-ranked label, ties broken by first-seen. Rebuilt from scratch on
// every call, never incrementally maintained.
func Build(points []domain.CrashPoint) []*Cluster {
	index := make(map[string]*Cluster, len(points))
	clusters := make([]*Cluster, 0, len(points))

	for _, point := range points {
		key := coordinateKey(point.Lat, point.Lon)
		rank := domain.SeverityRank(point.SeverityLabel())

		if existing, ok := index[key]; ok {
			existing.Count++
			existing.Crashes = append(existing.Crashes, point)
			if rank > existing.Rank {
				existing.Severity = point.SeverityLabel()
				existing.Rank = rank
			}
			continue
		}

		c := &Cluster{
			Lon:      point.Lon,
			Lat:      point.Lat,
			Count:    1,
			Severity: point.SeverityLabel(),
			Rank:     rank,
			Crashes:  []domain.CrashPoint{point},
		}
		index[key] = c
		clusters = append(clusters, c)
	}

	return clusters
}

func coordinateKey(lat, lon float64) string {
	return fmt.Sprintf("%.6f,%.6f", lat, lon)
}
