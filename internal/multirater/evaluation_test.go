package multirater

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nonprofitedge/assessments/internal/apperrors"
)

func TestSubmitRejectsUninvitedRater(t *testing.T) {
	inst := boardInstrument(t)
	eval := newBoardEvaluation("r1", "r2", "r3")

	err := eval.Submit(uniformResponse(t, inst, "stranger", 3))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
	assert.Equal(t, 0, eval.SubmittedCount())
}

func TestSubmittedCountTracksDistinctRaters(t *testing.T) {
	inst := boardInstrument(t)
	eval := newBoardEvaluation("r1", "r2", "r3")

	require.NoError(t, eval.Submit(uniformResponse(t, inst, "r1", 3)))
	require.NoError(t, eval.Submit(uniformResponse(t, inst, "r1", 4)))
	assert.Equal(t, 1, eval.SubmittedCount())

	require.NoError(t, eval.Submit(uniformResponse(t, inst, "r2", 3)))
	assert.Equal(t, 2, eval.SubmittedCount())
}

func TestSnapshotIsIsolatedFromLaterSubmissions(t *testing.T) {
	inst := boardInstrument(t)
	eval := newBoardEvaluation("r1", "r2", "r3")

	require.NoError(t, eval.Submit(uniformResponse(t, inst, "r1", 3)))
	responses, self := eval.Snapshot()
	assert.Len(t, responses, 1)
	assert.Nil(t, self)

	require.NoError(t, eval.Submit(uniformResponse(t, inst, "r2", 3)))
	eval.AttachSelfRating(uniformResponse(t, inst, "", 4))

	assert.Len(t, responses, 1, "earlier snapshot must not grow")
	assert.True(t, eval.HasSelfRating())
}
