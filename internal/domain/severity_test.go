package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityRank(t *testing.T) {
	t.Run("fatal outranks everything", func(t *testing.T) {
		assert.Greater(t, SeverityRank(SeverityLabelFatal), SeverityRank(SeverityLabelSerious))
		assert.Greater(t, SeverityRank(SeverityLabelSerious), SeverityRank(SeverityLabelOther))
		assert.Greater(t, SeverityRank(SeverityLabelOther), SeverityRank(SeverityLabelNonInjury))
		assert.Greater(t, SeverityRank(SeverityLabelNonInjury), SeverityRank(SeverityLabelUnknown))
	})

	t.Run("unrecognized labels rank lowest", func(t *testing.T) {
		assert.Equal(t, 0, SeverityRank("Catastrophic"))
		assert.Equal(t, 0, SeverityRank(""))
	})
}

func TestCrashPoint_SeverityLabel(t *testing.T) {
	fatal := SeverityLabelFatal
	empty := ""

	assert.Equal(t, SeverityLabelFatal, (&CrashPoint{Severity: &fatal}).SeverityLabel())
	assert.Equal(t, SeverityLabelUnknown, (&CrashPoint{Severity: &empty}).SeverityLabel())
	assert.Equal(t, SeverityLabelUnknown, (&CrashPoint{}).SeverityLabel())
}

func TestFilters_IsZero(t *testing.T) {
	assert.True(t, (*Filters)(nil).IsZero())
	assert.True(t, (&Filters{}).IsZero())
	assert.False(t, (&Filters{DateFrom: "2024-01-01"}).IsZero())
	assert.False(t, (&Filters{Severity: []string{SeverityLabelFatal}}).IsZero())
}
