package database

import (
	"fmt"

	"github.com/nonprofitedge/assessments/internal/apperrors"
	"github.com/nonprofitedge/assessments/internal/instrument"
	"github.com/nonprofitedge/assessments/internal/multirater"
	"github.com/nonprofitedge/assessments/internal/scoring"
)

// EvaluationService composes persistence with the in-memory evaluation model.
// Handlers talk to this service; the multirater package never touches SQL.
type EvaluationService struct {
	repo *Repository
	bank *instrument.Bank
	cfg  multirater.Config
}

// NewEvaluationService creates the persistence-backed evaluation service.
func NewEvaluationService(repo *Repository, bank *instrument.Bank, cfg multirater.Config) *EvaluationService {
	return &EvaluationService{repo: repo, bank: bank, cfg: cfg}
}

// Create opens a new evaluation cycle and persists it.
func (s *EvaluationService) Create(rec *EvaluationRecord) error {
	if _, err := s.bank.Get(rec.InstrumentID); err != nil {
		return err
	}
	if len(rec.Evaluators) < s.minimumRaters() {
		return apperrors.NewInvalidRequest(fmt.Sprintf(
			"evaluation must invite at least %d raters, got %d",
			s.minimumRaters(), len(rec.Evaluators)))
	}
	return s.repo.SaveEvaluation(rec)
}

// Get loads an evaluation cycle.
func (s *EvaluationService) Get(id string) (*EvaluationRecord, error) {
	return s.repo.GetEvaluation(id)
}

// SubmitRater validates the rater against the invite list and persists their
// response set. A resubmission replaces the previous one.
func (s *EvaluationService) SubmitRater(evaluationID string, rs scoring.ResponseSet) error {
	eval, err := s.load(evaluationID)
	if err != nil {
		return err
	}
	if err := eval.Submit(rs); err != nil {
		return err
	}

	rec, err := NewResponseSetRecord(evaluationID, KindRater, rs)
	if err != nil {
		return apperrors.NewInternal("failed to encode response set", err)
	}
	return s.repo.SaveResponseSet(rec)
}

// SubmitSelf persists the subject's private self-rating.
func (s *EvaluationService) SubmitSelf(evaluationID string, rs scoring.ResponseSet) error {
	if _, err := s.repo.GetEvaluation(evaluationID); err != nil {
		return err
	}
	rec, err := NewResponseSetRecord(evaluationID, KindSelf, rs)
	if err != nil {
		return apperrors.NewInternal("failed to encode self-rating", err)
	}
	return s.repo.SaveResponseSet(rec)
}

// SubmittedCount returns how many distinct raters have submitted.
func (s *EvaluationService) SubmittedCount(evaluationID string) (int, error) {
	responses, err := s.repo.RaterResponses(evaluationID)
	if err != nil {
		return 0, err
	}
	return len(responses), nil
}

// BoardReport rebuilds the evaluation from storage and aggregates it. The
// anonymity gate applies at this point, not at submission time.
func (s *EvaluationService) BoardReport(evaluationID string) (*multirater.BoardReport, error) {
	eval, err := s.load(evaluationID)
	if err != nil {
		return nil, err
	}

	inst, err := s.bank.Get(eval.InstrumentID)
	if err != nil {
		return nil, err
	}

	report, err := multirater.NewAggregator(inst, s.cfg).Aggregate(eval)
	if err != nil {
		return nil, err
	}

	if rec, recErr := NewReportRecord(evaluationID, "board", report); recErr == nil {
		// History only; a storage failure must not block delivery.
		_ = s.repo.SaveReport(rec)
	}
	return report, nil
}

// SelfReflections returns the subject's private reflection answers.
func (s *EvaluationService) SelfReflections(evaluationID string) ([]multirater.Reflection, error) {
	eval, err := s.load(evaluationID)
	if err != nil {
		return nil, err
	}
	inst, err := s.bank.Get(eval.InstrumentID)
	if err != nil {
		return nil, err
	}
	return multirater.NewAggregator(inst, s.cfg).SelfReflections(eval), nil
}

// load rebuilds the in-memory evaluation from its record and stored
// submissions.
func (s *EvaluationService) load(evaluationID string) (*multirater.Evaluation, error) {
	rec, err := s.repo.GetEvaluation(evaluationID)
	if err != nil {
		return nil, err
	}

	eval := multirater.NewEvaluation(rec.ID, rec.InstrumentID, rec.SubjectID, rec.SubjectName, rec.Evaluators, rec.Deadline)

	responses, err := s.repo.RaterResponses(evaluationID)
	if err != nil {
		return nil, err
	}
	for _, rs := range responses {
		if err := eval.Submit(rs); err != nil {
			return nil, err
		}
	}

	self, err := s.repo.SelfRating(evaluationID)
	if err != nil {
		return nil, err
	}
	if self != nil {
		eval.AttachSelfRating(*self)
	}

	return eval, nil
}

func (s *EvaluationService) minimumRaters() int {
	if s.cfg.MinimumRaters > 0 {
		return s.cfg.MinimumRaters
	}
	return multirater.DefaultMinimumRaters
}
