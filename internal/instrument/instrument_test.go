package instrument

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nonprofitedge/assessments/internal/apperrors"
)

func TestScaleReverse(t *testing.T) {
	tests := []struct {
		name     string
		scale    Scale
		value    int
		expected int
	}{
		{name: "five point scale flips 1 to 5", scale: Scale{Min: 1, Max: 5}, value: 1, expected: 5},
		{name: "five point scale flips 5 to 1", scale: Scale{Min: 1, Max: 5}, value: 5, expected: 1},
		{name: "five point scale keeps midpoint", scale: Scale{Min: 1, Max: 5}, value: 3, expected: 3},
		{name: "seven point scale flips 2 to 6", scale: Scale{Min: 1, Max: 7}, value: 2, expected: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.scale.Reverse(tt.value))
		})
	}
}

func TestScaleInRange(t *testing.T) {
	s := DefaultScale
	assert.False(t, s.InRange(0))
	assert.True(t, s.InRange(1))
	assert.True(t, s.InRange(5))
	assert.False(t, s.InRange(6))
}

func TestBuiltinInstrumentsValidate(t *testing.T) {
	bank, err := Builtin()
	require.NoError(t, err)

	constraint, err := bank.Get("core-constraint")
	require.NoError(t, err)
	assert.Len(t, constraint.RequiredQuestionIDs(), 15)
	assert.Len(t, constraint.Dimensions, 5)
	assert.Len(t, constraint.Patterns, 20)

	leadership, err := bank.Get("leadership-profile")
	require.NoError(t, err)
	assert.Len(t, leadership.RequiredQuestionIDs(), 48)
	assert.Len(t, leadership.Dimensions, 4)
	assert.Len(t, leadership.GrowthPlans, 4)

	board, err := bank.Get("board-evaluation")
	require.NoError(t, err)
	assert.Len(t, board.RequiredQuestionIDs(), 30)
	assert.Len(t, board.Dimensions, 6)
	assert.Len(t, board.OpenQuestions, 3)
	for _, d := range board.Dimensions {
		assert.NotEmpty(t, d.ReflectionPrompt, "dimension %s should carry a self reflection prompt", d.ID)
	}
}

func TestValidateRejectsMisconfiguredInstruments(t *testing.T) {
	tests := []struct {
		name string
		inst *Instrument
	}{
		{
			name: "dimension with zero questions",
			inst: &Instrument{
				ID: "broken", Scale: DefaultScale,
				Dimensions: []Dimension{{ID: "d1", Label: "D1", QuestionIDs: []string{}}},
			},
		},
		{
			name: "question references unknown dimension",
			inst: &Instrument{
				ID: "broken", Scale: DefaultScale,
				Dimensions: []Dimension{{ID: "d1", Label: "D1", QuestionIDs: []string{"q1"}}},
				Questions:  []Question{{ID: "q1", DimensionID: "nope", Text: "?"}},
			},
		},
		{
			name: "dimension lists question from another dimension",
			inst: &Instrument{
				ID: "broken", Scale: DefaultScale,
				Dimensions: []Dimension{
					{ID: "d1", Label: "D1", QuestionIDs: []string{"q1", "q2"}},
					{ID: "d2", Label: "D2", QuestionIDs: []string{"q2"}},
				},
				Questions: []Question{
					{ID: "q1", DimensionID: "d1", Text: "?"},
					{ID: "q2", DimensionID: "d2", Text: "?"},
				},
			},
		},
		{
			name: "missing growth plan entry",
			inst: &Instrument{
				ID: "broken", Scale: DefaultScale,
				Dimensions: []Dimension{
					{ID: "d1", Label: "D1", QuestionIDs: []string{"q1"}},
					{ID: "d2", Label: "D2", QuestionIDs: []string{"q2"}},
				},
				Questions: []Question{
					{ID: "q1", DimensionID: "d1", Text: "?"},
					{ID: "q2", DimensionID: "d2", Text: "?"},
				},
				GrowthPlans: map[string]GrowthPlan{"d1": {Near: "a", Mid: "b", Far: "c"}},
			},
		},
		{
			name: "duplicate question id",
			inst: &Instrument{
				ID: "broken", Scale: DefaultScale,
				Dimensions: []Dimension{{ID: "d1", Label: "D1", QuestionIDs: []string{"q1"}}},
				Questions: []Question{
					{ID: "q1", DimensionID: "d1", Text: "?"},
					{ID: "q1", DimensionID: "d1", Text: "again"},
				},
			},
		},
		{
			name: "inverted scale",
			inst: &Instrument{
				ID: "broken", Scale: Scale{Min: 5, Max: 1},
				Dimensions: []Dimension{{ID: "d1", Label: "D1", QuestionIDs: []string{"q1"}}},
				Questions:  []Question{{ID: "q1", DimensionID: "d1", Text: "?"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.inst.Validate()
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, apperrors.CodeMisconfiguredInstrument))
		})
	}
}

func TestBankFailsFastOnFirstDefect(t *testing.T) {
	broken := &Instrument{
		ID: "broken", Scale: DefaultScale,
		Dimensions: []Dimension{{ID: "d1", Label: "D1", QuestionIDs: nil}},
	}
	_, err := NewBank(Constraint(), broken)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeMisconfiguredInstrument))
}

func TestQuestionsForDimensionPreservesOrder(t *testing.T) {
	inst := Constraint()
	require.NoError(t, inst.Validate())

	qs := inst.QuestionsForDimension("resource_alignment")
	require.Len(t, qs, 3)
	assert.Equal(t, "q4", qs[0].ID)
	assert.Equal(t, "q5", qs[1].ID)
	assert.Equal(t, "q6", qs[2].ID)
	assert.True(t, qs[1].ReverseScored)
}

func TestPatternTableIsDirected(t *testing.T) {
	inst := Constraint()
	require.NoError(t, inst.Validate())

	for _, a := range inst.Dimensions {
		for _, b := range inst.Dimensions {
			if a.ID == b.ID {
				continue
			}
			forward, okF := inst.PatternFor(a.ID, b.ID)
			backward, okB := inst.PatternFor(b.ID, a.ID)
			require.True(t, okF, "missing pattern for (%s,%s)", a.ID, b.ID)
			require.True(t, okB, "missing pattern for (%s,%s)", b.ID, a.ID)
			assert.NotEqual(t, forward.Name, backward.Name,
				"(%s,%s) and (%s,%s) must tell different stories", a.ID, b.ID, b.ID, a.ID)
		}
	}
}
