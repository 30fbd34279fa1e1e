package scoring

import (
	"time"

	"github.com/nonprofitedge/assessments/internal/apperrors"
	"github.com/nonprofitedge/assessments/internal/instrument"
)

// CollectorConfig controls collection policy.
type CollectorConfig struct {
	// AllowPartialWithDefault substitutes the scale midpoint for unanswered
	// questions at finalize time instead of failing with INCOMPLETE. Off by
	// default: silently defaulting corrupts dimension means, so enabling it
	// is an explicit product decision.
	AllowPartialWithDefault bool
}

// Collector accumulates one respondent's answers keyed by question id and
// enforces range and completeness before anything reaches the scorer.
type Collector struct {
	inst    *instrument.Instrument
	cfg     CollectorConfig
	answers map[string]int
	open    map[string]string
}

// NewCollector creates a collector for one respondent and one instrument.
func NewCollector(inst *instrument.Instrument, cfg CollectorConfig) *Collector {
	return &Collector{
		inst:    inst,
		cfg:     cfg,
		answers: make(map[string]int),
		open:    make(map[string]string),
	}
}

// Record stores or overwrites a single answer. Values outside the
// instrument's scale are rejected here and never reach the scorer.
func (c *Collector) Record(questionID string, value int) error {
	if _, ok := c.inst.Question(questionID); !ok {
		return apperrors.NewNotFound("question", questionID)
	}
	if !c.inst.Scale.InRange(value) {
		return apperrors.NewOutOfRange(questionID, value, c.inst.Scale.Min, c.inst.Scale.Max)
	}
	c.answers[questionID] = value
	return nil
}

// RecordOpen stores a free-text response verbatim. Valid ids are the
// instrument's open questions, or a dimension id when that dimension carries
// a reflection prompt (self-rating flows). Open responses are never scored
// and never required for completeness.
func (c *Collector) RecordOpen(questionID, text string) error {
	for _, oq := range c.inst.OpenQuestions {
		if oq.ID == questionID {
			c.open[questionID] = text
			return nil
		}
	}
	if d, ok := c.inst.Dimension(questionID); ok && d.ReflectionPrompt != "" {
		c.open[questionID] = text
		return nil
	}
	return apperrors.NewNotFound("open question", questionID)
}

// Missing returns the scored question ids still unanswered, in instrument
// order.
func (c *Collector) Missing() []string {
	var missing []string
	for _, qid := range c.inst.RequiredQuestionIDs() {
		if _, ok := c.answers[qid]; !ok {
			missing = append(missing, qid)
		}
	}
	return missing
}

// IsComplete reports whether every required question has a stored value.
func (c *Collector) IsComplete() bool {
	return len(c.Missing()) == 0
}

// Finalize returns an immutable ResponseSet snapshot. Recording more answers
// afterwards and re-finalizing produces a new independent snapshot, which is
// what "edit before submit" UI flows rely on.
func (c *Collector) Finalize(subjectID, raterID string) (ResponseSet, error) {
	missing := c.Missing()
	if len(missing) > 0 && !c.cfg.AllowPartialWithDefault {
		return ResponseSet{}, apperrors.NewIncomplete(c.inst.ID, missing)
	}

	answers := make(map[string]int, len(c.answers))
	for qid, v := range c.answers {
		answers[qid] = v
	}
	for _, qid := range missing {
		answers[qid] = c.inst.Scale.Midpoint()
	}

	var open map[string]string
	if len(c.open) > 0 {
		open = make(map[string]string, len(c.open))
		for qid, text := range c.open {
			open[qid] = text
		}
	}

	return ResponseSet{
		InstrumentID: c.inst.ID,
		SubjectID:    subjectID,
		RaterID:      raterID,
		Answers:      answers,
		Open:         open,
		SubmittedAt:  time.Now().UTC(),
	}, nil
}
