package multirater

import (
	"sync"
	"time"

	"github.com/nonprofitedge/assessments/internal/apperrors"
	"github.com/nonprofitedge/assessments/internal/scoring"
)

// Evaluation is the multi-rater aggregate for one subject and one cycle.
// Created empty at setup, filled incrementally as each invited rater submits,
// eligible for aggregation once the anonymity threshold is met. The subject's
// self-rating is attached to the same cycle but kept logically partitioned
// from the rater pool.
//
// Rater submissions are independent and commutative; the mutex only guards
// the maps against concurrent submits, it does not impose an order.
type Evaluation struct {
	ID           string
	InstrumentID string
	SubjectID    string
	SubjectName  string
	Evaluators   []string
	Deadline     time.Time

	mu         sync.RWMutex
	responses  map[string]scoring.ResponseSet
	selfRating *scoring.ResponseSet
}

// NewEvaluation creates an empty evaluation for the given invited raters.
func NewEvaluation(id, instrumentID, subjectID, subjectName string, evaluators []string, deadline time.Time) *Evaluation {
	return &Evaluation{
		ID:           id,
		InstrumentID: instrumentID,
		SubjectID:    subjectID,
		SubjectName:  subjectName,
		Evaluators:   append([]string(nil), evaluators...),
		Deadline:     deadline,
		responses:    make(map[string]scoring.ResponseSet),
	}
}

// Submit records an invited rater's finalized response set. Idempotent per
// rater: a second submission replaces the first atomically (last write wins
// on rater id), it never duplicates.
func (e *Evaluation) Submit(rs scoring.ResponseSet) error {
	if !e.invited(rs.RaterID) {
		return apperrors.NewNotFound("evaluator", rs.RaterID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.responses[rs.RaterID] = rs
	return nil
}

// AttachSelfRating attaches or replaces the subject's private self-rating.
func (e *Evaluation) AttachSelfRating(rs scoring.ResponseSet) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selfRating = &rs
}

// SubmittedCount returns how many distinct raters have submitted.
func (e *Evaluation) SubmittedCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.responses)
}

// HasSelfRating reports whether the subject's self-rating is attached.
func (e *Evaluation) HasSelfRating() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.selfRating != nil
}

// Snapshot copies the submitted set and self-rating for aggregation, so the
// aggregate is always computed from the set at query time rather than from a
// running average that submission order could skew.
func (e *Evaluation) Snapshot() (map[string]scoring.ResponseSet, *scoring.ResponseSet) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	responses := make(map[string]scoring.ResponseSet, len(e.responses))
	for raterID, rs := range e.responses {
		responses[raterID] = rs
	}

	var self *scoring.ResponseSet
	if e.selfRating != nil {
		copied := *e.selfRating
		self = &copied
	}
	return responses, self
}

func (e *Evaluation) invited(raterID string) bool {
	for _, id := range e.Evaluators {
		if id == raterID {
			return true
		}
	}
	return false
}
