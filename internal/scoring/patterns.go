package scoring

import (
	"sort"

	"github.com/nonprofitedge/assessments/internal/instrument"
)

// PatternResult is the matched (or fallback) narrative for the two weakest
// dimensions, plus the labels report copy leads with.
type PatternResult struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Teaser        string `json:"teaser"`
	OneThing      string `json:"oneThing"`      // label of the weakest dimension
	InfluencedBy  string `json:"influencedBy"`  // label of the second-weakest
	PrimaryWeak   string `json:"primaryWeak"`   // dimension id
	SecondaryWeak string `json:"secondaryWeak"` // dimension id
	Matched       bool   `json:"matched"`       // false when the fallback fired
}

// fallbackPattern keeps the diagnostic flow alive for pairs the table's
// author did not anticipate. A designed degradation, not an error.
var fallbackPattern = instrument.Pattern{
	Name:        "Unique Pattern",
	Description: "Your constraint pattern is unique.",
	Teaser:      "Let's explore what's holding your organization back.",
}

// RankAscending returns a copy of scores sorted weakest first. The sort is
// stable, so exact ties resolve by dimension declaration order and identical
// input always yields identical ranking.
func RankAscending(scores []DimensionScore) []DimensionScore {
	ranked := make([]DimensionScore, len(scores))
	copy(ranked, scores)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Percentage < ranked[j].Percentage
	})
	return ranked
}

// MatchPattern ranks dimensions and looks up the directed (weakest,
// second-weakest) pair in the instrument's pattern table. The scores slice
// must be in dimension declaration order, as produced by Scorer.ScoreAll.
// ok is false when the instrument has fewer than two dimensions.
func MatchPattern(inst *instrument.Instrument, scores []DimensionScore) (PatternResult, bool) {
	if len(scores) < 2 {
		return PatternResult{}, false
	}

	ranked := RankAscending(scores)
	primary, secondary := ranked[0], ranked[1]

	pattern, matched := inst.PatternFor(primary.DimensionID, secondary.DimensionID)
	if !matched {
		pattern = fallbackPattern
	}

	return PatternResult{
		Name:          pattern.Name,
		Description:   pattern.Description,
		Teaser:        pattern.Teaser,
		OneThing:      primary.Label,
		InfluencedBy:  secondary.Label,
		PrimaryWeak:   primary.DimensionID,
		SecondaryWeak: secondary.DimensionID,
		Matched:       matched,
	}, true
}
