package scoring

import "time"

// ResponseSet is one respondent's (or evaluator's) finalized answers for one
// evaluation cycle. It is an immutable snapshot: the collector copies its
// state on Finalize and later edits produce a new independent set.
type ResponseSet struct {
	InstrumentID string            `json:"instrumentId"`
	SubjectID    string            `json:"subjectId"`
	RaterID      string            `json:"raterId,omitempty"`
	Answers      map[string]int    `json:"answers"`
	Open         map[string]string `json:"open,omitempty"`
	SubmittedAt  time.Time         `json:"submittedAt"`
}

// DimensionScore is derived from a ResponseSet, never stored independently of
// it; recomputing from the same answers yields identical values.
type DimensionScore struct {
	DimensionID string  `json:"dimensionId"`
	Label       string  `json:"label"`
	Raw         float64 `json:"raw"`         // mean on the answer scale, one decimal
	Weighted    float64 `json:"weighted"`    // weighted answer sum
	MaxWeighted float64 `json:"maxWeighted"` // ceiling for the weighted sum
	Percentage  float64 `json:"percentage"`  // 0..100, one decimal
	Zone        Zone    `json:"zone"`
}
