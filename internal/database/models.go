package database

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nonprofitedge/assessments/internal/scoring"
)

// Response set kinds. A solo response belongs to no evaluation cycle; rater
// and self responses belong to one.
const (
	KindSolo  = "solo"
	KindRater = "rater"
	KindSelf  = "self"
)

// EvaluationRecord is the persisted form of a multi-rater evaluation cycle.
// Evaluators are stored as a JSON array column.
type EvaluationRecord struct {
	ID           string    `json:"id" db:"id"`
	InstrumentID string    `json:"instrument_id" db:"instrument_id"`
	SubjectID    string    `json:"subject_id" db:"subject_id"`
	SubjectName  string    `json:"subject_name" db:"subject_name"`
	Evaluators   []string  `json:"evaluators" db:"evaluators"`
	Deadline     time.Time `json:"deadline" db:"deadline"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// ResponseSetRecord is a persisted finalized response set. Answers and open
// text are JSON columns; the scoring layer never sees the storage encoding.
type ResponseSetRecord struct {
	ID           string    `json:"id" db:"id"`
	EvaluationID string    `json:"evaluation_id,omitempty" db:"evaluation_id"`
	InstrumentID string    `json:"instrument_id" db:"instrument_id"`
	SubjectID    string    `json:"subject_id" db:"subject_id"`
	RaterID      string    `json:"rater_id,omitempty" db:"rater_id"`
	Kind         string    `json:"kind" db:"kind"`
	Answers      string    `json:"-" db:"answers"`
	Open         string    `json:"-" db:"open_responses"`
	SubmittedAt  time.Time `json:"submitted_at" db:"submitted_at"`
}

// ReportRecord is a stored report payload, kept for history and re-delivery
// after the cache expires.
type ReportRecord struct {
	ID        string    `json:"id" db:"id"`
	Scope     string    `json:"scope" db:"scope"` // subject id or evaluation id
	Kind      string    `json:"kind" db:"kind"`   // "single" or "board"
	Payload   string    `json:"-" db:"payload"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewEvaluationRecord creates a record with a generated id.
func NewEvaluationRecord(instrumentID, subjectID, subjectName string, evaluators []string, deadline time.Time) *EvaluationRecord {
	now := time.Now()
	return &EvaluationRecord{
		ID:           uuid.New().String(),
		InstrumentID: instrumentID,
		SubjectID:    subjectID,
		SubjectName:  subjectName,
		Evaluators:   append([]string(nil), evaluators...),
		Deadline:     deadline,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NewResponseSetRecord encodes a finalized response set for storage.
func NewResponseSetRecord(evaluationID, kind string, rs scoring.ResponseSet) (*ResponseSetRecord, error) {
	answers, err := json.Marshal(rs.Answers)
	if err != nil {
		return nil, fmt.Errorf("encode answers: %w", err)
	}
	open, err := json.Marshal(rs.Open)
	if err != nil {
		return nil, fmt.Errorf("encode open responses: %w", err)
	}
	return &ResponseSetRecord{
		ID:           uuid.New().String(),
		EvaluationID: evaluationID,
		InstrumentID: rs.InstrumentID,
		SubjectID:    rs.SubjectID,
		RaterID:      rs.RaterID,
		Kind:         kind,
		Answers:      string(answers),
		Open:         string(open),
		SubmittedAt:  rs.SubmittedAt,
	}, nil
}

// ResponseSet decodes the record back into the scoring type.
func (r *ResponseSetRecord) ResponseSet() (scoring.ResponseSet, error) {
	rs := scoring.ResponseSet{
		InstrumentID: r.InstrumentID,
		SubjectID:    r.SubjectID,
		RaterID:      r.RaterID,
		SubmittedAt:  r.SubmittedAt,
	}
	if err := json.Unmarshal([]byte(r.Answers), &rs.Answers); err != nil {
		return rs, fmt.Errorf("decode answers: %w", err)
	}
	if r.Open != "" {
		if err := json.Unmarshal([]byte(r.Open), &rs.Open); err != nil {
			return rs, fmt.Errorf("decode open responses: %w", err)
		}
	}
	return rs, nil
}

// NewReportRecord encodes a report payload for storage.
func NewReportRecord(scope, kind string, payload any) (*ReportRecord, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return &ReportRecord{
		ID:        uuid.New().String(),
		Scope:     scope,
		Kind:      kind,
		Payload:   string(data),
		CreatedAt: time.Now(),
	}, nil
}
