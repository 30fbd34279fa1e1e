package scoring

import "github.com/nonprofitedge/assessments/internal/instrument"

// Report is the single-respondent report model: scores per dimension, the
// matched pattern where the instrument has a table, and the growth plan
// where it has templates. Open responses pass through verbatim.
type Report struct {
	InstrumentID    string                    `json:"instrumentId"`
	SubjectID       string                    `json:"subjectId,omitempty"`
	DimensionScores map[string]DimensionScore `json:"dimensionScores"`
	Ranked          []string                  `json:"ranked"` // dimension ids, weakest first
	Pattern         *PatternResult            `json:"pattern,omitempty"`
	GrowthPlan      *GrowthPlanResult         `json:"growthPlan,omitempty"`
	OpenResponses   map[string]string         `json:"openResponses,omitempty"`
}

// BuildReport runs the full single-respondent pipeline: score all dimensions,
// rank, match the pattern, select the growth plan.
func BuildReport(inst *instrument.Instrument, thresholds Thresholds, rs ResponseSet) (*Report, error) {
	scorer := NewScorer(inst, thresholds)
	scores, err := scorer.ScoreAll(rs)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]DimensionScore, len(scores))
	for _, s := range scores {
		byID[s.DimensionID] = s
	}

	ranked := RankAscending(scores)
	rankedIDs := make([]string, len(ranked))
	for i, s := range ranked {
		rankedIDs[i] = s.DimensionID
	}

	report := &Report{
		InstrumentID:    inst.ID,
		SubjectID:       rs.SubjectID,
		DimensionScores: byID,
		Ranked:          rankedIDs,
		OpenResponses:   rs.Open,
	}

	if inst.Patterns != nil {
		if pattern, ok := MatchPattern(inst, scores); ok {
			report.Pattern = &pattern
		}
	}
	report.GrowthPlan = SelectGrowthPlan(inst, scores)

	return report, nil
}
