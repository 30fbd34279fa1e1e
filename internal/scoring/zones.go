package scoring

// Zone is one of three fixed effectiveness tiers derived from a percentage
// score. Wire values match the original report payloads.
type Zone string

const (
	ZoneDeveloping     Zone = "developing"
	ZoneCommonPractice Zone = "common"
	ZoneLeadingEdge    Zone = "leading"
)

// Label returns the member-facing tier name.
func (z Zone) Label() string {
	switch z {
	case ZoneLeadingEdge:
		return "Leading Edge"
	case ZoneCommonPractice:
		return "Common Practice"
	case ZoneDeveloping:
		return "Developing"
	}
	return string(z)
}

// Thresholds holds the instrument-wide zone cut points, inclusive lower
// bounds. They apply identically to single-respondent and aggregated scores.
type Thresholds struct {
	Common  float64 `json:"common"`  // percentage at which CommonPractice starts
	Leading float64 `json:"leading"` // percentage at which LeadingEdge starts
}

// DefaultThresholds is the production 60/80 split.
var DefaultThresholds = Thresholds{Common: 60, Leading: 80}

// Classify maps a percentage to its zone. Exactly 80.0 is LeadingEdge and
// 79.9 is CommonPractice; the three tiers partition [0,100] with no gaps.
func (t Thresholds) Classify(percentage float64) Zone {
	switch {
	case percentage >= t.Leading:
		return ZoneLeadingEdge
	case percentage >= t.Common:
		return ZoneCommonPractice
	default:
		return ZoneDeveloping
	}
}
