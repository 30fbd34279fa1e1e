package instrument

import (
	"fmt"

	"github.com/nonprofitedge/assessments/internal/apperrors"
)

// Scale is the answer range an instrument accepts, e.g. 1..5 Likert.
type Scale struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// DefaultScale is the five-point agreement scale all built-in instruments use.
var DefaultScale = Scale{Min: 1, Max: 5}

// InRange reports whether v is a valid answer on this scale.
func (s Scale) InRange(v int) bool {
	return v >= s.Min && v <= s.Max
}

// Reverse flips a reverse-scored answer. Works for any scale width:
// on 1..5 a 1 becomes 5, on 1..7 a 2 becomes 6.
func (s Scale) Reverse(v int) int {
	return s.Min + s.Max - v
}

// Midpoint is the neutral answer, used only when a collector explicitly
// allows partial submissions.
func (s Scale) Midpoint() int {
	return (s.Min + s.Max) / 2
}

// Question is a single scored item. Identity is the ID; definitions are
// immutable once an instrument is loaded.
type Question struct {
	ID            string  `json:"id"`
	DimensionID   string  `json:"dimensionId"`
	Text          string  `json:"text"`
	ReverseScored bool    `json:"reverseScored,omitempty"`
	Weight        float64 `json:"weight,omitempty"`
}

// Dimension is a named construct measured by a fixed, ordered group of
// questions. Declaration order of dimensions is the tie-break order for
// ranking, so it must be stable across loads.
type Dimension struct {
	ID               string   `json:"id"`
	Label            string   `json:"label"`
	QuestionIDs      []string `json:"questionIds"`
	ReflectionPrompt string   `json:"reflectionPrompt,omitempty"`
}

// OpenQuestion is a free-text item. Responses are stored and surfaced
// verbatim, never scored.
type OpenQuestion struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Pattern is a named diagnosis keyed by the ordered pair of an instrument's
// two weakest dimensions.
type Pattern struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Teaser      string `json:"teaser"`
}

// GrowthPlan holds the three staged actions for one dimension, near to far
// horizon (30/60/90 days in the member-facing copy).
type GrowthPlan struct {
	Near string `json:"near"`
	Mid  string `json:"mid"`
	Far  string `json:"far"`
}

// Instrument is a versioned, read-only assessment definition.
type Instrument struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version string `json:"version"`
	Scale   Scale  `json:"scale"`

	Dimensions    []Dimension    `json:"dimensions"`
	Questions     []Question     `json:"questions"`
	OpenQuestions []OpenQuestion `json:"openQuestions,omitempty"`

	// Patterns maps a directed "<primaryWeak>|<secondaryWeak>" dimension
	// pair to its narrative. (A,B) and (B,A) are distinct entries. Nil when
	// the instrument has no pattern lookup.
	Patterns map[string]Pattern `json:"-"`

	// GrowthPlans is keyed by dimension id. When present it must cover every
	// dimension; totality is a load-time invariant.
	GrowthPlans map[string]GrowthPlan `json:"-"`

	questionsByID  map[string]Question
	dimensionsByID map[string]Dimension
}

// PatternKey builds the directed lookup key for a weakest-dimension pair.
func PatternKey(primaryWeak, secondaryWeak string) string {
	return primaryWeak + "|" + secondaryWeak
}

// Validate checks the structural invariants and builds the internal indexes.
// A violated definition is a configuration defect, not a runtime failure, so
// this must run (and halt the caller) before any respondent-facing flow.
func (in *Instrument) Validate() error {
	if in.ID == "" {
		return apperrors.NewMisconfiguredInstrument("(unnamed)", "instrument id is empty")
	}
	if in.Scale.Min >= in.Scale.Max {
		return apperrors.NewMisconfiguredInstrument(in.ID, fmt.Sprintf("scale %d..%d is not a range", in.Scale.Min, in.Scale.Max))
	}
	if len(in.Dimensions) == 0 {
		return apperrors.NewMisconfiguredInstrument(in.ID, "instrument has no dimensions")
	}

	in.dimensionsByID = make(map[string]Dimension, len(in.Dimensions))
	for _, d := range in.Dimensions {
		if _, dup := in.dimensionsByID[d.ID]; dup {
			return apperrors.NewMisconfiguredInstrument(in.ID, fmt.Sprintf("duplicate dimension %s", d.ID))
		}
		if len(d.QuestionIDs) == 0 {
			return apperrors.NewMisconfiguredInstrument(in.ID, fmt.Sprintf("dimension %s has no questions", d.ID))
		}
		in.dimensionsByID[d.ID] = d
	}

	in.questionsByID = make(map[string]Question, len(in.Questions))
	for i, q := range in.Questions {
		if _, dup := in.questionsByID[q.ID]; dup {
			return apperrors.NewMisconfiguredInstrument(in.ID, fmt.Sprintf("duplicate question %s", q.ID))
		}
		if _, ok := in.dimensionsByID[q.DimensionID]; !ok {
			return apperrors.NewMisconfiguredInstrument(in.ID, fmt.Sprintf("question %s references unknown dimension %s", q.ID, q.DimensionID))
		}
		if q.Weight == 0 {
			q.Weight = 1
			in.Questions[i] = q
		}
		if q.Weight < 0 {
			return apperrors.NewMisconfiguredInstrument(in.ID, fmt.Sprintf("question %s has negative weight", q.ID))
		}
		in.questionsByID[q.ID] = q
	}

	// Every question belongs to exactly one dimension, and each dimension's
	// question list references real questions of that dimension.
	referenced := make(map[string]int, len(in.Questions))
	for _, d := range in.Dimensions {
		for _, qid := range d.QuestionIDs {
			q, ok := in.questionsByID[qid]
			if !ok {
				return apperrors.NewMisconfiguredInstrument(in.ID, fmt.Sprintf("dimension %s references unknown question %s", d.ID, qid))
			}
			if q.DimensionID != d.ID {
				return apperrors.NewMisconfiguredInstrument(in.ID, fmt.Sprintf("question %s is listed under %s but declares dimension %s", qid, d.ID, q.DimensionID))
			}
			referenced[qid]++
		}
	}
	for _, q := range in.Questions {
		if referenced[q.ID] != 1 {
			return apperrors.NewMisconfiguredInstrument(in.ID, fmt.Sprintf("question %s referenced %d times, want exactly 1", q.ID, referenced[q.ID]))
		}
	}

	if in.GrowthPlans != nil {
		for _, d := range in.Dimensions {
			if _, ok := in.GrowthPlans[d.ID]; !ok {
				return apperrors.NewMisconfiguredInstrument(in.ID, fmt.Sprintf("dimension %s has no growth plan entry", d.ID))
			}
		}
	}

	return nil
}

// Question looks up a question by id.
func (in *Instrument) Question(id string) (Question, bool) {
	q, ok := in.questionsByID[id]
	return q, ok
}

// Dimension looks up a dimension by id.
func (in *Instrument) Dimension(id string) (Dimension, bool) {
	d, ok := in.dimensionsByID[id]
	return d, ok
}

// QuestionsForDimension returns the dimension's questions in declared order.
func (in *Instrument) QuestionsForDimension(dimensionID string) []Question {
	d, ok := in.dimensionsByID[dimensionID]
	if !ok {
		return nil
	}
	out := make([]Question, 0, len(d.QuestionIDs))
	for _, qid := range d.QuestionIDs {
		out = append(out, in.questionsByID[qid])
	}
	return out
}

// RequiredQuestionIDs returns every scored question id, dimension by
// dimension in declaration order. Open questions are not required.
func (in *Instrument) RequiredQuestionIDs() []string {
	out := make([]string, 0, len(in.Questions))
	for _, d := range in.Dimensions {
		out = append(out, d.QuestionIDs...)
	}
	return out
}

// PatternFor looks up the directed pattern for a weakest pair.
func (in *Instrument) PatternFor(primaryWeak, secondaryWeak string) (Pattern, bool) {
	p, ok := in.Patterns[PatternKey(primaryWeak, secondaryWeak)]
	return p, ok
}

// Bank is the read-only registry of loaded instruments.
type Bank struct {
	byID  map[string]*Instrument
	order []string
}

// NewBank validates every instrument and fails fast on the first defect.
func NewBank(instruments ...*Instrument) (*Bank, error) {
	b := &Bank{byID: make(map[string]*Instrument, len(instruments))}
	for _, in := range instruments {
		if err := in.Validate(); err != nil {
			return nil, err
		}
		if _, dup := b.byID[in.ID]; dup {
			return nil, apperrors.NewMisconfiguredInstrument(in.ID, "duplicate instrument id")
		}
		b.byID[in.ID] = in
		b.order = append(b.order, in.ID)
	}
	return b, nil
}

// Get returns the instrument or a NOT_FOUND error.
func (b *Bank) Get(id string) (*Instrument, error) {
	in, ok := b.byID[id]
	if !ok {
		return nil, apperrors.NewNotFound("instrument", id)
	}
	return in, nil
}

// All returns instruments in registration order.
func (b *Bank) All() []*Instrument {
	out := make([]*Instrument, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.byID[id])
	}
	return out
}

// Builtin loads the three production instruments.
func Builtin() (*Bank, error) {
	return NewBank(Constraint(), Leadership(), BoardEvaluation())
}
