package multirater

import (
	"math"
	"sort"

	"github.com/nonprofitedge/assessments/internal/apperrors"
	"github.com/nonprofitedge/assessments/internal/instrument"
	"github.com/nonprofitedge/assessments/internal/scoring"
)

// DefaultMinimumRaters is the anonymity threshold: below it a gap comparison
// could de-anonymize a single rater's score.
const DefaultMinimumRaters = 3

// Config holds aggregation policy. Zero values fall back to production
// defaults.
type Config struct {
	MinimumRaters int
	Thresholds    scoring.Thresholds
}

// AggregateScore is one dimension's board-visible aggregate. It structurally
// excludes per-rater detail: there is no field a consumer could use to render
// one evaluator's answers.
type AggregateScore struct {
	DimensionID string       `json:"dimensionId"`
	Label       string       `json:"label"`
	Percentage  float64      `json:"percentage"`
	Zone        scoring.Zone `json:"zone"`
	SampleSize  int          `json:"sampleSize"`
}

// SelfComparison is the numeric side-by-side of self-rating vs rater pool.
// Only the numbers are board-visible; the subject's written reflections are
// not part of this type.
type SelfComparison struct {
	SelfPercentage      float64 `json:"selfPercentage"`
	AggregatePercentage float64 `json:"aggregatePercentage"`
	Gap                 float64 `json:"gap"` // self minus aggregate
}

// Reflection is one of the subject's private written answers. Always private;
// surfaced only on the subject-facing report.
type Reflection struct {
	DimensionID string `json:"dimensionId"`
	Prompt      string `json:"prompt"`
	Text        string `json:"text"`
	Private     bool   `json:"private"`
}

// BoardReport is the multi-rater report model. Rater open responses are
// unattributed and sorted so nothing about submission order or identity
// leaks.
type BoardReport struct {
	EvaluationID    string                    `json:"evaluationId"`
	SubjectID       string                    `json:"subjectId"`
	SubjectName     string                    `json:"subjectName,omitempty"`
	SampleSize      int                       `json:"sampleSize"`
	AggregateScores map[string]AggregateScore `json:"aggregateScores"`
	SelfComparison  map[string]SelfComparison `json:"selfComparison,omitempty"`
	OpenResponses   map[string][]string       `json:"openResponses,omitempty"`
}

// Aggregator combines independent evaluator response sets into per-dimension
// aggregate statistics.
type Aggregator struct {
	inst *instrument.Instrument
	cfg  Config
}

// NewAggregator creates an aggregator for one instrument.
func NewAggregator(inst *instrument.Instrument, cfg Config) *Aggregator {
	if cfg.MinimumRaters <= 0 {
		cfg.MinimumRaters = DefaultMinimumRaters
	}
	if cfg.Thresholds == (scoring.Thresholds{}) {
		cfg.Thresholds = scoring.DefaultThresholds
	}
	return &Aggregator{inst: inst, cfg: cfg}
}

// Aggregate computes the board report from the set of submitted response
// sets at query time. Below the minimum-rater threshold it refuses with
// INSUFFICIENT_RATERS and computes no per-dimension mean; that is an expected
// waiting state, not a failure.
//
// The mean over a set is commutative, so shuffling submission order cannot
// change the result — only adding or removing raters can.
func (a *Aggregator) Aggregate(eval *Evaluation) (*BoardReport, error) {
	responses, self := eval.Snapshot()
	if len(responses) < a.cfg.MinimumRaters {
		return nil, apperrors.NewInsufficientRaters(len(responses), a.cfg.MinimumRaters)
	}

	scorer := scoring.NewScorer(a.inst, a.cfg.Thresholds)

	// Deterministic iteration; the mean doesn't need it, the error path does.
	raterIDs := make([]string, 0, len(responses))
	for raterID := range responses {
		raterIDs = append(raterIDs, raterID)
	}
	sort.Strings(raterIDs)

	sums := make(map[string]float64, len(a.inst.Dimensions))
	for _, raterID := range raterIDs {
		scores, err := scorer.ScoreAll(responses[raterID])
		if err != nil {
			return nil, err
		}
		for _, s := range scores {
			sums[s.DimensionID] += s.Percentage
		}
	}

	sampleSize := len(responses)
	aggregates := make(map[string]AggregateScore, len(a.inst.Dimensions))
	for _, d := range a.inst.Dimensions {
		pct := round1(sums[d.ID] / float64(sampleSize))
		aggregates[d.ID] = AggregateScore{
			DimensionID: d.ID,
			Label:       d.Label,
			Percentage:  pct,
			Zone:        a.cfg.Thresholds.Classify(pct),
			SampleSize:  sampleSize,
		}
	}

	report := &BoardReport{
		EvaluationID:    eval.ID,
		SubjectID:       eval.SubjectID,
		SubjectName:     eval.SubjectName,
		SampleSize:      sampleSize,
		AggregateScores: aggregates,
		OpenResponses:   a.collectOpenResponses(responses),
	}

	if self != nil {
		selfScores, err := scorer.ScoreAll(*self)
		if err != nil {
			return nil, err
		}
		comparison := make(map[string]SelfComparison, len(selfScores))
		for _, s := range selfScores {
			agg := aggregates[s.DimensionID]
			comparison[s.DimensionID] = SelfComparison{
				SelfPercentage:      s.Percentage,
				AggregatePercentage: agg.Percentage,
				Gap:                 round1(s.Percentage - agg.Percentage),
			}
		}
		report.SelfComparison = comparison
	}

	return report, nil
}

// SelfReflections returns the subject's private written answers to each
// dimension's reflection prompt. Deliberately a separate call from Aggregate:
// no board-facing code path can reach these.
func (a *Aggregator) SelfReflections(eval *Evaluation) []Reflection {
	_, self := eval.Snapshot()
	if self == nil {
		return nil
	}

	var out []Reflection
	for _, d := range a.inst.Dimensions {
		if d.ReflectionPrompt == "" {
			continue
		}
		text, ok := self.Open[d.ID]
		if !ok || text == "" {
			continue
		}
		out = append(out, Reflection{
			DimensionID: d.ID,
			Prompt:      d.ReflectionPrompt,
			Text:        text,
			Private:     true,
		})
	}
	return out
}

// collectOpenResponses gathers rater free-text answers per open question,
// unattributed and sorted so the output is independent of submission order.
func (a *Aggregator) collectOpenResponses(responses map[string]scoring.ResponseSet) map[string][]string {
	if len(a.inst.OpenQuestions) == 0 {
		return nil
	}

	out := make(map[string][]string)
	for _, oq := range a.inst.OpenQuestions {
		var texts []string
		for _, rs := range responses {
			if text, ok := rs.Open[oq.ID]; ok && text != "" {
				texts = append(texts, text)
			}
		}
		if len(texts) > 0 {
			sort.Strings(texts)
			out[oq.ID] = texts
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
