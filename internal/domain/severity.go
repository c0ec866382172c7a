package domain

// Display labels for crash severity as they appear in the crashes table.
// The dataset stores these verbatim; both the summary and point paths return
// the stored label, so there is exactly one representation across the service.
const (
	SeverityLabelFatal     = "Fatal accident"
	SeverityLabelSerious   = "Serious injury accident"
	SeverityLabelOther     = "Other injury accident"
	SeverityLabelNonInjury = "Non injury accident"
	SeverityLabelUnknown   = "Unknown"
)

// SeverityRank returns the total order used when picking the most severe
// crash at a location. Higher outranks lower; unrecognized labels rank 0.
func SeverityRank(label string) int {
	switch label {
	case SeverityLabelFatal:
		return 4
	case SeverityLabelSerious:
		return 3
	case SeverityLabelOther:
		return 2
	case SeverityLabelNonInjury:
		return 1
	default:
		return 0
	}
}
