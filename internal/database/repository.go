package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nonprofitedge/assessments/internal/apperrors"
	"github.com/nonprofitedge/assessments/internal/scoring"
)

// Repository handles database operations for evaluations, response sets and
// stored reports.
type Repository struct {
	db *DB
}

// NewRepository creates a new repository.
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// SaveEvaluation inserts or updates an evaluation cycle.
func (r *Repository) SaveEvaluation(rec *EvaluationRecord) error {
	evaluators, err := json.Marshal(rec.Evaluators)
	if err != nil {
		return fmt.Errorf("encode evaluators: %w", err)
	}

	rec.UpdatedAt = time.Now()
	_, err = r.db.Exec(`
		INSERT INTO evaluations (id, instrument_id, subject_id, subject_name, evaluators, deadline, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			subject_name = excluded.subject_name,
			evaluators = excluded.evaluators,
			deadline = excluded.deadline,
			updated_at = excluded.updated_at
	`, rec.ID, rec.InstrumentID, rec.SubjectID, rec.SubjectName, string(evaluators), rec.Deadline, rec.CreatedAt, rec.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to save evaluation: %w", err)
	}
	return nil
}

// GetEvaluation loads one evaluation cycle by id.
func (r *Repository) GetEvaluation(id string) (*EvaluationRecord, error) {
	var rec EvaluationRecord
	var evaluators string

	err := r.db.QueryRow(`
		SELECT id, instrument_id, subject_id, subject_name, evaluators, deadline, created_at, updated_at
		FROM evaluations
		WHERE id = ?
	`, id).Scan(
		&rec.ID, &rec.InstrumentID, &rec.SubjectID, &rec.SubjectName,
		&evaluators, &rec.Deadline, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFound("evaluation", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluation: %w", err)
	}

	if err := json.Unmarshal([]byte(evaluators), &rec.Evaluators); err != nil {
		return nil, fmt.Errorf("decode evaluators: %w", err)
	}
	return &rec, nil
}

// SaveResponseSet stores a finalized response set. For rater and self
// submissions within an evaluation the unique key makes a resubmission
// replace the earlier row, matching last-write-wins semantics.
func (r *Repository) SaveResponseSet(rec *ResponseSetRecord) error {
	_, err := r.db.Exec(`
		INSERT INTO response_sets (id, evaluation_id, instrument_id, subject_id, rater_id, kind, answers, open_responses, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(evaluation_id, rater_id, kind) DO UPDATE SET
			answers = excluded.answers,
			open_responses = excluded.open_responses,
			submitted_at = excluded.submitted_at
	`, rec.ID, nullable(rec.EvaluationID), rec.InstrumentID, rec.SubjectID, rec.RaterID, rec.Kind, rec.Answers, rec.Open, rec.SubmittedAt)

	if err != nil {
		return fmt.Errorf("failed to save response set: %w", err)
	}
	return nil
}

// RaterResponses loads the submitted rater response sets for one evaluation,
// keyed by rater id.
func (r *Repository) RaterResponses(evaluationID string) (map[string]scoring.ResponseSet, error) {
	rows, err := r.db.Query(`
		SELECT id, evaluation_id, instrument_id, subject_id, rater_id, kind, answers, open_responses, submitted_at
		FROM response_sets
		WHERE evaluation_id = ? AND kind = ?
	`, evaluationID, KindRater)
	if err != nil {
		return nil, fmt.Errorf("failed to query responses: %w", err)
	}
	defer rows.Close()

	out := make(map[string]scoring.ResponseSet)
	for rows.Next() {
		rec, err := scanResponseSet(rows)
		if err != nil {
			return nil, err
		}
		rs, err := rec.ResponseSet()
		if err != nil {
			return nil, err
		}
		out[rec.RaterID] = rs
	}
	return out, rows.Err()
}

// SelfRating loads the subject's self-rating for one evaluation, nil when
// none has been submitted.
func (r *Repository) SelfRating(evaluationID string) (*scoring.ResponseSet, error) {
	row := r.db.QueryRow(`
		SELECT id, evaluation_id, instrument_id, subject_id, rater_id, kind, answers, open_responses, submitted_at
		FROM response_sets
		WHERE evaluation_id = ? AND kind = ?
	`, evaluationID, KindSelf)

	rec, err := scanResponseSet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rs, err := rec.ResponseSet()
	if err != nil {
		return nil, err
	}
	return &rs, nil
}

// SaveReport stores a rendered report payload.
func (r *Repository) SaveReport(rec *ReportRecord) error {
	_, err := r.db.Exec(`
		INSERT INTO reports (id, scope, kind, payload, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, rec.ID, rec.Scope, rec.Kind, rec.Payload, rec.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// LatestReport loads the most recent stored report for a scope and kind.
func (r *Repository) LatestReport(scope, kind string) (*ReportRecord, error) {
	var rec ReportRecord
	err := r.db.QueryRow(`
		SELECT id, scope, kind, payload, created_at
		FROM reports
		WHERE scope = ? AND kind = ?
		ORDER BY created_at DESC
		LIMIT 1
	`, scope, kind).Scan(&rec.ID, &rec.Scope, &rec.Kind, &rec.Payload, &rec.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFound("report", scope)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query report: %w", err)
	}
	return &rec, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResponseSet(row rowScanner) (*ResponseSetRecord, error) {
	var rec ResponseSetRecord
	var evaluationID, open sql.NullString
	err := row.Scan(
		&rec.ID, &evaluationID, &rec.InstrumentID, &rec.SubjectID,
		&rec.RaterID, &rec.Kind, &rec.Answers, &open, &rec.SubmittedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan response set: %w", err)
	}
	rec.EvaluationID = evaluationID.String
	rec.Open = open.String
	return &rec, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
