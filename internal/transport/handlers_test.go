package transport_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nonprofitedge/assessments/internal/auth"
	"github.com/nonprofitedge/assessments/internal/cache"
	"github.com/nonprofitedge/assessments/internal/database"
	"github.com/nonprofitedge/assessments/internal/instrument"
	"github.com/nonprofitedge/assessments/internal/monitoring"
	"github.com/nonprofitedge/assessments/internal/multirater"
	"github.com/nonprofitedge/assessments/internal/ratelimit"
	"github.com/nonprofitedge/assessments/internal/scoring"
	"github.com/nonprofitedge/assessments/internal/transport"
)

type testServer struct {
	router *gin.Engine
	bank   *instrument.Bank
	repo   *database.Repository
}

func newTestServer(t *testing.T) *testServer {
	return newTestServerWithConfig(t, transport.RouterConfig{})
}

func newTestServerWithConfig(t *testing.T, cfg transport.RouterConfig) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	bank, err := instrument.Builtin()
	require.NoError(t, err)

	db, err := database.NewDB(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := database.NewRepository(db)
	evaluations := database.NewEvaluationService(repo, bank, multirater.Config{
		MinimumRaters: 3,
		Thresholds:    scoring.DefaultThresholds,
	})

	issuer := auth.NewTokenIssuer("test-secret")
	metrics := monitoring.NewMetrics()
	logger := monitoring.NewLogger()
	reportCache := cache.NewCache(time.Minute)

	redisClient, err := ratelimit.NewRedisClient("", "", 0)
	require.NoError(t, err)
	limiter := ratelimit.NewRateLimiter(redisClient, ratelimit.DefaultConfig(), metrics)

	handler := transport.NewHandler(bank, scoring.DefaultThresholds, repo, evaluations, issuer, reportCache, metrics, logger)
	router := transport.NewRouter(handler, issuer, limiter, db, false, cfg)

	return &testServer{router: router, bank: bank, repo: repo}
}

func (ts *testServer) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// uniformAnswers answers every scored question on the instrument with v.
func uniformAnswers(t *testing.T, bank *instrument.Bank, instrumentID string, v int) map[string]int {
	t.Helper()
	inst, err := bank.Get(instrumentID)
	require.NoError(t, err)

	answers := make(map[string]int, len(inst.Questions))
	for _, q := range inst.Questions {
		answers[q.ID] = v
	}
	return answers
}

func TestListInstruments(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/instruments", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	instruments, ok := body["instruments"].([]any)
	require.True(t, ok)
	assert.Len(t, instruments, 3)
}

func TestGetUnknownInstrument(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/instruments/does-not-exist", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, w)["code"])
}

func TestScoreConstraintAssessment(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/instruments/core-constraint/score", gin.H{
		"subjectId": "org-1",
		"answers":   uniformAnswers(t, ts.bank, "core-constraint", 3),
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, "core-constraint", body["instrumentId"])

	scores, ok := body["dimensionScores"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, scores, 5)

	pattern, ok := body["pattern"].(map[string]any)
	require.True(t, ok, "constraint reports carry a pattern")
	assert.Equal(t, "The Scattered Mission", pattern["name"])
}

func TestScorePersistsResponseAndReport(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/instruments/core-constraint/score", gin.H{
		"subjectId": "org-42",
		"answers":   uniformAnswers(t, ts.bank, "core-constraint", 4),
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	stored, err := ts.repo.LatestReport("org-42", "single")
	require.NoError(t, err, "a successful scoring run must land a report row")
	assert.Contains(t, stored.Payload, "dimensionScores")
}

func TestScoreRejectsIncompleteSubmission(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/instruments/core-constraint/score", gin.H{
		"subjectId": "org-1",
		"answers":   map[string]int{"q1": 3},
	}, "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "INCOMPLETE", decode(t, w)["code"])
}

func TestSubmitRequiresInviteToken(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/evaluations/submit", gin.H{"answers": map[string]int{}}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEvaluationLifecycle(t *testing.T) {
	ts := newTestServer(t)
	deadline := time.Now().Add(30 * 24 * time.Hour)

	w := ts.do(http.MethodPost, "/evaluations", gin.H{
		"instrumentId": "board-evaluation",
		"subjectId":    "ceo-1",
		"subjectName":  "Jordan Avery",
		"evaluators":   []string{"r1", "r2", "r3"},
		"deadline":     deadline.Format(time.RFC3339),
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decode(t, w)
	evaluationID, _ := created["evaluationId"].(string)
	require.NotEmpty(t, evaluationID)
	subjectToken, _ := created["subjectToken"].(string)
	require.NotEmpty(t, subjectToken)

	raterTokens, ok := created["raterTokens"].(map[string]any)
	require.True(t, ok)
	require.Len(t, raterTokens, 3)

	// Below the anonymity threshold the report must stay locked.
	for _, raterID := range []string{"r1", "r2"} {
		w := ts.do(http.MethodPost, "/evaluations/submit", gin.H{
			"answers": uniformAnswers(t, ts.bank, "board-evaluation", 4),
		}, raterTokens[raterID].(string))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w = ts.do(http.MethodGet, fmt.Sprintf("/evaluations/%s/report", evaluationID), nil, "")
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "INSUFFICIENT_RATERS", decode(t, w)["code"])

	w = ts.do(http.MethodPost, "/evaluations/submit", gin.H{
		"answers": uniformAnswers(t, ts.bank, "board-evaluation", 4),
	}, raterTokens["r3"].(string))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.do(http.MethodGet, fmt.Sprintf("/evaluations/%s/status", evaluationID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	status := decode(t, w)
	assert.Equal(t, float64(3), status["submitted"])
	assert.Equal(t, float64(3), status["invited"])

	w = ts.do(http.MethodGet, fmt.Sprintf("/evaluations/%s/report", evaluationID), nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	report := decode(t, w)
	assert.Equal(t, float64(3), report["sampleSize"])

	aggregate, ok := report["aggregateScores"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, aggregate, 6)

	// Self-rating and private reflections need the subject token.
	w = ts.do(http.MethodPost, "/evaluations/self", gin.H{
		"answers": uniformAnswers(t, ts.bank, "board-evaluation", 5),
		"open":    map[string]string{"vision": "I want to sharpen our five year strategy."},
	}, subjectToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.do(http.MethodGet, "/evaluations/reflections", nil, subjectToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	reflections := decode(t, w)
	assert.Equal(t, evaluationID, reflections["evaluationId"])

	// A rater token must not open the subject-only routes.
	w = ts.do(http.MethodGet, "/evaluations/reflections", nil, raterTokens["r1"].(string))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUninvitedRaterCannotSubmit(t *testing.T) {
	ts := newTestServer(t)
	deadline := time.Now().Add(time.Hour)

	w := ts.do(http.MethodPost, "/evaluations", gin.H{
		"instrumentId": "board-evaluation",
		"subjectId":    "ceo-1",
		"evaluators":   []string{"r1", "r2", "r3"},
		"deadline":     deadline.Format(time.RFC3339),
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	evaluationID := decode(t, w)["evaluationId"].(string)

	// A forged token for someone never invited verifies but must be refused.
	issuer := auth.NewTokenIssuer("test-secret")
	forged, err := issuer.IssueRaterToken(evaluationID, "stranger", deadline)
	require.NoError(t, err)

	resp := ts.do(http.MethodPost, "/evaluations/submit", gin.H{
		"answers": uniformAnswers(t, ts.bank, "board-evaluation", 3),
	}, forged)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestAdminRoutesAbsentWithoutToken(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/admin/rate-limits", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	ts := newTestServerWithConfig(t, transport.RouterConfig{AdminToken: "ops-secret"})

	w := ts.do(http.MethodGet, "/admin/rate-limits", nil, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/admin/rate-limits", nil)
	req.Header.Set("X-Admin-Token", "ops-secret")
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestCreateEvaluationBelowThresholdIsRejected(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/evaluations", gin.H{
		"instrumentId": "board-evaluation",
		"subjectId":    "ceo-1",
		"evaluators":   []string{"r1", "r2"},
		"deadline":     time.Now().Add(time.Hour).Format(time.RFC3339),
	}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decode(t, w)["code"])
}
