package duckdb

import (
	"regexp"
	"strings"

	"github.com/crashstats-service/internal/domain"
)

// maxSeverityValues bounds the IN (...) clause size; excess values are
// silently dropped.
const maxSeverityValues = 20

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// BuildFilterClause turns sparse filter criteria into a conjunction of
// column comparisons plus the ordered parameter list matching placeholder
// order. Both the summary and point paths use this one function, so the two
// response shapes can never disagree on filter semantics.
//
// Malformed input never errors: date strings not matching YYYY-MM-DD and
// blank severity values are dropped, severities are trimmed and deduplicated
// in first-seen order. Date bounds are inclusive. No constraints yields an
// empty clause.
func BuildFilterClause(filters *domain.Filters) (string, []interface{}) {
	if filters == nil {
		return "", nil
	}

	var clauses []string
	var params []interface{}

	if isoDatePattern.MatchString(filters.DateFrom) {
		clauses = append(clauses, "crashes.accident_date >= ?")
		params = append(params, filters.DateFrom)
	}

	if isoDatePattern.MatchString(filters.DateTo) {
		clauses = append(clauses, "crashes.accident_date <= ?")
		params = append(params, filters.DateTo)
	}

	severities := normalizeSeverities(filters.Severity)
	if len(severities) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(severities)), ", ")
		clauses = append(clauses, "crashes.severity IN ("+placeholders+")")
		for _, value := range severities {
			params = append(params, value)
		}
	}

	return strings.Join(clauses, " AND "), params
}

func normalizeSeverities(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
		if len(result) == maxSeverityValues {
			break
		}
	}

	return result
}
