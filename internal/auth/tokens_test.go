package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRaterTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	deadline := time.Now().Add(30 * 24 * time.Hour)

	token, err := issuer.IssueRaterToken("eval-1", "rater-1", deadline)
	require.NoError(t, err)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "eval-1", claims.EvaluationID)
	assert.Equal(t, "rater-1", claims.RaterID)
	assert.Equal(t, KindRater, claims.Kind)
}

func TestSubjectTokenHasNoRater(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	token, err := issuer.IssueSubjectToken("eval-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, KindSubject, claims.Kind)
	assert.Empty(t, claims.RaterID)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	token, err := issuer.IssueRaterToken("eval-1", "rater-1", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.Error(t, err, "a token past the evaluation deadline must not verify")
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	other := NewTokenIssuer("other-secret")

	token, err := issuer.IssueRaterToken("eval-1", "rater-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	_, err := issuer.Verify("not-a-token")
	assert.Error(t, err)
}
