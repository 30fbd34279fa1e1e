package scoring

import (
	"math"

	"github.com/nonprofitedge/assessments/internal/apperrors"
	"github.com/nonprofitedge/assessments/internal/instrument"
)

// Scorer reduces a finalized ResponseSet into one normalized score per
// dimension. It is a pure function of (instrument, response set): no clock,
// no randomness, no I/O.
type Scorer struct {
	inst       *instrument.Instrument
	thresholds Thresholds
}

// NewScorer creates a scorer bound to one instrument and zone thresholds.
func NewScorer(inst *instrument.Instrument, thresholds Thresholds) *Scorer {
	return &Scorer{inst: inst, thresholds: thresholds}
}

// ScoreAll scores every dimension in declaration order.
func (s *Scorer) ScoreAll(rs ResponseSet) ([]DimensionScore, error) {
	out := make([]DimensionScore, 0, len(s.inst.Dimensions))
	for _, d := range s.inst.Dimensions {
		score, err := s.ScoreDimension(d.ID, rs)
		if err != nil {
			return nil, err
		}
		out = append(out, score)
	}
	return out, nil
}

// ScoreDimension averages the (possibly reverse-mapped) answers of one
// dimension's questions. Reverse-scored answers are flipped on the scale
// before averaging, so a 1 on a reverse item contributes a 5.
func (s *Scorer) ScoreDimension(dimensionID string, rs ResponseSet) (DimensionScore, error) {
	dim, ok := s.inst.Dimension(dimensionID)
	if !ok {
		return DimensionScore{}, apperrors.NewNotFound("dimension", dimensionID)
	}

	var (
		sum         float64
		weighted    float64
		maxWeighted float64
		missing     []string
	)
	uniform := true
	questions := s.inst.QuestionsForDimension(dimensionID)
	for _, q := range questions {
		if q.Weight != 1 {
			uniform = false
		}
		v, answered := rs.Answers[q.ID]
		if !answered {
			missing = append(missing, q.ID)
			continue
		}
		if q.ReverseScored {
			v = s.inst.Scale.Reverse(v)
		}
		sum += float64(v)
		weighted += float64(v) * q.Weight
		maxWeighted += float64(s.inst.Scale.Max) * q.Weight
	}
	if len(missing) > 0 {
		return DimensionScore{}, apperrors.NewIncomplete(s.inst.ID, missing)
	}

	raw := round1(sum / float64(len(questions)))

	// Unweighted dimensions derive the percentage from the rounded raw, so
	// raw and percentage always agree and ties in raw stay ties. Weighted
	// dimensions keep full precision over the weighted ceiling.
	var percentage float64
	if uniform {
		percentage = round1(raw / float64(s.inst.Scale.Max) * 100)
	} else {
		percentage = round1(weighted / maxWeighted * 100)
	}

	return DimensionScore{
		DimensionID: dim.ID,
		Label:       dim.Label,
		Raw:         raw,
		Weighted:    round1(weighted),
		MaxWeighted: round1(maxWeighted),
		Percentage:  percentage,
		Zone:        s.thresholds.Classify(percentage),
	}, nil
}

// Thresholds returns the zone cut points this scorer classifies with.
func (s *Scorer) Thresholds() Thresholds {
	return s.thresholds
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
