package multirater

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nonprofitedge/assessments/internal/apperrors"
	"github.com/nonprofitedge/assessments/internal/instrument"
	"github.com/nonprofitedge/assessments/internal/scoring"
)

func boardInstrument(t *testing.T) *instrument.Instrument {
	t.Helper()
	inst := instrument.BoardEvaluation()
	require.NoError(t, inst.Validate())
	return inst
}

func newBoardEvaluation(evaluators ...string) *Evaluation {
	deadline := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	return NewEvaluation("eval-1", "board-evaluation", "ceo-1", "Jordan Avery", evaluators, deadline)
}

// uniformResponse answers every rated question with the same value, so each
// dimension lands at value/5*100 percent.
func uniformResponse(t *testing.T, inst *instrument.Instrument, raterID string, value int) scoring.ResponseSet {
	t.Helper()
	c := scoring.NewCollector(inst, scoring.CollectorConfig{})
	for _, qid := range inst.RequiredQuestionIDs() {
		require.NoError(t, c.Record(qid, value))
	}
	rs, err := c.Finalize("ceo-1", raterID)
	require.NoError(t, err)
	return rs
}

func TestAggregateEnforcesAnonymityThreshold(t *testing.T) {
	inst := boardInstrument(t)
	agg := NewAggregator(inst, Config{})
	eval := newBoardEvaluation("r1", "r2", "r3")

	require.NoError(t, eval.Submit(uniformResponse(t, inst, "r1", 4)))
	require.NoError(t, eval.Submit(uniformResponse(t, inst, "r2", 3)))

	_, err := agg.Aggregate(eval)
	require.Error(t, err)
	assert.True(t, apperrors.IsInsufficientRaters(err))

	require.NoError(t, eval.Submit(uniformResponse(t, inst, "r3", 3)))
	report, err := agg.Aggregate(eval)
	require.NoError(t, err)
	assert.Equal(t, 3, report.SampleSize)
}

func TestAggregateComputesDimensionMeans(t *testing.T) {
	inst := boardInstrument(t)
	agg := NewAggregator(inst, Config{})
	eval := newBoardEvaluation("r1", "r2", "r3")

	// Per-dimension percentages 80, 40, 60 across the three raters.
	require.NoError(t, eval.Submit(uniformResponse(t, inst, "r1", 4)))
	require.NoError(t, eval.Submit(uniformResponse(t, inst, "r2", 2)))
	require.NoError(t, eval.Submit(uniformResponse(t, inst, "r3", 3)))

	report, err := agg.Aggregate(eval)
	require.NoError(t, err)

	require.Len(t, report.AggregateScores, 6)
	for _, s := range report.AggregateScores {
		assert.Equal(t, 60.0, s.Percentage)
		assert.Equal(t, scoring.ZoneCommonPractice, s.Zone)
		assert.Equal(t, 3, s.SampleSize)
	}
	assert.Equal(t, "eval-1", report.EvaluationID)
	assert.Equal(t, "Jordan Avery", report.SubjectName)
}

func TestAggregateIsOrderIndependent(t *testing.T) {
	inst := boardInstrument(t)
	agg := NewAggregator(inst, Config{})

	submit := func(order []int) *BoardReport {
		eval := newBoardEvaluation("r1", "r2", "r3")
		raters := map[int]scoring.ResponseSet{
			0: uniformResponse(t, inst, "r1", 5),
			1: uniformResponse(t, inst, "r2", 2),
			2: uniformResponse(t, inst, "r3", 4),
		}
		for _, i := range order {
			require.NoError(t, eval.Submit(raters[i]))
		}
		report, err := agg.Aggregate(eval)
		require.NoError(t, err)
		return report
	}

	first := submit([]int{0, 1, 2})
	second := submit([]int{2, 0, 1})
	assert.Equal(t, first.AggregateScores, second.AggregateScores)
}

func TestSubmitIsLastWriteWinsPerRater(t *testing.T) {
	inst := boardInstrument(t)
	agg := NewAggregator(inst, Config{})
	eval := newBoardEvaluation("r1", "r2", "r3")

	require.NoError(t, eval.Submit(uniformResponse(t, inst, "r1", 1)))
	require.NoError(t, eval.Submit(uniformResponse(t, inst, "r2", 3)))
	require.NoError(t, eval.Submit(uniformResponse(t, inst, "r3", 3)))

	// r1 resubmits; the replacement counts once.
	require.NoError(t, eval.Submit(uniformResponse(t, inst, "r1", 3)))

	report, err := agg.Aggregate(eval)
	require.NoError(t, err)
	assert.Equal(t, 3, report.SampleSize)
	for _, s := range report.AggregateScores {
		assert.Equal(t, 60.0, s.Percentage)
	}
}

func TestAggregateSelfComparisonGap(t *testing.T) {
	inst := boardInstrument(t)
	agg := NewAggregator(inst, Config{})
	eval := newBoardEvaluation("r1", "r2", "r3")

	require.NoError(t, eval.Submit(uniformResponse(t, inst, "r1", 3)))
	require.NoError(t, eval.Submit(uniformResponse(t, inst, "r2", 3)))
	require.NoError(t, eval.Submit(uniformResponse(t, inst, "r3", 3)))
	eval.AttachSelfRating(uniformResponse(t, inst, "", 5))

	report, err := agg.Aggregate(eval)
	require.NoError(t, err)

	require.Len(t, report.SelfComparison, 6)
	for _, cmp := range report.SelfComparison {
		assert.Equal(t, 100.0, cmp.SelfPercentage)
		assert.Equal(t, 60.0, cmp.AggregatePercentage)
		assert.Equal(t, 40.0, cmp.Gap, "gap is self minus aggregate")
	}
}

func TestAggregateWithoutSelfRatingOmitsComparison(t *testing.T) {
	inst := boardInstrument(t)
	agg := NewAggregator(inst, Config{})
	eval := newBoardEvaluation("r1", "r2", "r3")

	require.NoError(t, eval.Submit(uniformResponse(t, inst, "r1", 3)))
	require.NoError(t, eval.Submit(uniformResponse(t, inst, "r2", 3)))
	require.NoError(t, eval.Submit(uniformResponse(t, inst, "r3", 3)))

	report, err := agg.Aggregate(eval)
	require.NoError(t, err)
	assert.Nil(t, report.SelfComparison)
}

func TestOpenResponsesAreUnattributedAndSorted(t *testing.T) {
	inst := boardInstrument(t)
	agg := NewAggregator(inst, Config{})
	eval := newBoardEvaluation("r1", "r2", "r3")

	withOpen := func(raterID, text string) scoring.ResponseSet {
		c := scoring.NewCollector(inst, scoring.CollectorConfig{})
		for _, qid := range inst.RequiredQuestionIDs() {
			require.NoError(t, c.Record(qid, 3))
		}
		require.NoError(t, c.RecordOpen("open1", text))
		rs, err := c.Finalize("ceo-1", raterID)
		require.NoError(t, err)
		return rs
	}

	require.NoError(t, eval.Submit(withOpen("r3", "Charlie's note")))
	require.NoError(t, eval.Submit(withOpen("r1", "Beth's note")))
	require.NoError(t, eval.Submit(withOpen("r2", "Ana's note")))

	report, err := agg.Aggregate(eval)
	require.NoError(t, err)

	assert.Equal(t, []string{"Ana's note", "Beth's note", "Charlie's note"}, report.OpenResponses["open1"],
		"texts appear sorted, independent of who submitted when")
}

func TestSelfReflectionsAreSubjectOnlyAndPrivate(t *testing.T) {
	inst := boardInstrument(t)
	agg := NewAggregator(inst, Config{})
	eval := newBoardEvaluation("r1", "r2", "r3")

	c := scoring.NewCollector(inst, scoring.CollectorConfig{})
	for _, qid := range inst.RequiredQuestionIDs() {
		require.NoError(t, c.Record(qid, 4))
	}
	require.NoError(t, c.RecordOpen("vision", "I have been delaying the merger conversation."))
	self, err := c.Finalize("ceo-1", "")
	require.NoError(t, err)
	eval.AttachSelfRating(self)

	require.NoError(t, eval.Submit(uniformResponse(t, inst, "r1", 3)))
	require.NoError(t, eval.Submit(uniformResponse(t, inst, "r2", 3)))
	require.NoError(t, eval.Submit(uniformResponse(t, inst, "r3", 3)))

	reflections := agg.SelfReflections(eval)
	require.Len(t, reflections, 1)
	assert.Equal(t, "vision", reflections[0].DimensionID)
	assert.True(t, reflections[0].Private)
	assert.NotEmpty(t, reflections[0].Prompt)

	// The board report never carries reflection text for dimension prompts.
	report, err := agg.Aggregate(eval)
	require.NoError(t, err)
	_, leaked := report.OpenResponses["vision"]
	assert.False(t, leaked)
}

func TestConfigOverridesMinimumRaters(t *testing.T) {
	inst := boardInstrument(t)
	agg := NewAggregator(inst, Config{MinimumRaters: 5})
	eval := newBoardEvaluation("r1", "r2", "r3")

	require.NoError(t, eval.Submit(uniformResponse(t, inst, "r1", 3)))
	require.NoError(t, eval.Submit(uniformResponse(t, inst, "r2", 3)))
	require.NoError(t, eval.Submit(uniformResponse(t, inst, "r3", 3)))

	_, err := agg.Aggregate(eval)
	require.Error(t, err)
	assert.True(t, apperrors.IsInsufficientRaters(err))
}
