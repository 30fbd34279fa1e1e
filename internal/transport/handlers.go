package transport

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nonprofitedge/assessments/internal/apperrors"
	"github.com/nonprofitedge/assessments/internal/auth"
	"github.com/nonprofitedge/assessments/internal/cache"
	"github.com/nonprofitedge/assessments/internal/database"
	"github.com/nonprofitedge/assessments/internal/instrument"
	"github.com/nonprofitedge/assessments/internal/monitoring"
	"github.com/nonprofitedge/assessments/internal/scoring"
)

// Handler carries the wired services the HTTP layer dispatches into.
type Handler struct {
	bank        *instrument.Bank
	thresholds  scoring.Thresholds
	repo        *database.Repository
	evaluations *database.EvaluationService
	issuer      *auth.TokenIssuer
	reportCache *cache.Cache
	metrics     *monitoring.Metrics
	logger      *monitoring.Logger
}

// NewHandler creates the handler set.
func NewHandler(
	bank *instrument.Bank,
	thresholds scoring.Thresholds,
	repo *database.Repository,
	evaluations *database.EvaluationService,
	issuer *auth.TokenIssuer,
	reportCache *cache.Cache,
	metrics *monitoring.Metrics,
	logger *monitoring.Logger,
) *Handler {
	return &Handler{
		bank:        bank,
		thresholds:  thresholds,
		repo:        repo,
		evaluations: evaluations,
		issuer:      issuer,
		reportCache: reportCache,
		metrics:     metrics,
		logger:      logger,
	}
}

func (h *Handler) abortWith(c *gin.Context, err error) {
	appErr := apperrors.ToAppError(err)
	apperrors.LogError(c, appErr)
	if apperrors.IsInsufficientRaters(err) && h.metrics != nil {
		h.metrics.IncrementInsufficientRaterHold()
	}
	c.JSON(appErr.HTTPStatus, gin.H{
		"code":     appErr.Code,
		"category": appErr.Category,
		"message":  appErr.ErrBuilder.Msg,
	})
	c.Abort()
}

// instrumentSummary is the list-view shape: enough to render a catalog
// without shipping every question.
type instrumentSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Version    string `json:"version"`
	Dimensions int    `json:"dimensions"`
	Questions  int    `json:"questions"`
	ScaleMin   int    `json:"scaleMin"`
	ScaleMax   int    `json:"scaleMax"`
}

// HandleListInstruments returns the instrument catalog.
func (h *Handler) HandleListInstruments(c *gin.Context) {
	all := h.bank.All()
	summaries := make([]instrumentSummary, 0, len(all))
	for _, inst := range all {
		summaries = append(summaries, instrumentSummary{
			ID:         inst.ID,
			Name:       inst.Name,
			Version:    inst.Version,
			Dimensions: len(inst.Dimensions),
			Questions:  len(inst.Questions),
			ScaleMin:   inst.Scale.Min,
			ScaleMax:   inst.Scale.Max,
		})
	}
	c.JSON(http.StatusOK, gin.H{"instruments": summaries})
}

// HandleGetInstrument returns one full instrument definition, questions and
// dimensions included, so a client can render the questionnaire.
func (h *Handler) HandleGetInstrument(c *gin.Context) {
	inst, err := h.bank.Get(c.Param("id"))
	if err != nil {
		h.abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, inst)
}

// submitRequest is the shared submission body for scoring and evaluation
// submissions.
type submitRequest struct {
	SubjectID    string            `json:"subjectId"`
	Answers      map[string]int    `json:"answers" binding:"required"`
	Open         map[string]string `json:"open"`
	AllowPartial bool              `json:"allowPartial"`
}

// collect runs the submission through the collector, surfacing out-of-range
// and completeness failures before anything is scored or stored.
func (h *Handler) collect(inst *instrument.Instrument, req submitRequest, subjectID, raterID string) (scoring.ResponseSet, error) {
	collector := scoring.NewCollector(inst, scoring.CollectorConfig{AllowPartialWithDefault: req.AllowPartial})
	for questionID, value := range req.Answers {
		if err := collector.Record(questionID, value); err != nil {
			return scoring.ResponseSet{}, err
		}
	}
	for questionID, text := range req.Open {
		if err := collector.RecordOpen(questionID, text); err != nil {
			return scoring.ResponseSet{}, err
		}
	}
	return collector.Finalize(subjectID, raterID)
}

// HandleScore scores a single-respondent submission and returns the full
// report: dimension scores, ranking, pattern or growth plan.
func (h *Handler) HandleScore(c *gin.Context) {
	inst, err := h.bank.Get(c.Param("id"))
	if err != nil {
		h.abortWith(c, err)
		return
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	start := time.Now()
	rs, err := h.collect(inst, req, req.SubjectID, "")
	if err != nil {
		h.abortWith(c, err)
		return
	}

	report, err := scoring.BuildReport(inst, h.thresholds, rs)
	if err != nil {
		h.abortWith(c, err)
		return
	}

	// Storage failures must not block the respondent's report, but they
	// must be visible to operators.
	if rec, recErr := database.NewResponseSetRecord("", database.KindSolo, rs); recErr != nil {
		h.logger.Warn("Failed to encode response set for storage", "instrument_id", inst.ID, "error", recErr)
	} else if saveErr := h.repo.SaveResponseSet(rec); saveErr != nil {
		h.logger.Warn("Failed to store response set", "instrument_id", inst.ID, "error", saveErr)
	}
	if rec, recErr := database.NewReportRecord(rs.SubjectID, "single", report); recErr != nil {
		h.logger.Warn("Failed to encode report for storage", "instrument_id", inst.ID, "error", recErr)
	} else if saveErr := h.repo.SaveReport(rec); saveErr != nil {
		h.logger.Warn("Failed to store report", "instrument_id", inst.ID, "error", saveErr)
	}

	if h.metrics != nil {
		h.metrics.IncrementReportsBuilt()
	}
	h.logger.ScoringLogger(inst.ID, rs.SubjectID, len(inst.Dimensions), time.Since(start))

	c.JSON(http.StatusOK, report)
}

// createEvaluationRequest opens a multi-rater cycle.
type createEvaluationRequest struct {
	InstrumentID string    `json:"instrumentId" binding:"required"`
	SubjectID    string    `json:"subjectId" binding:"required"`
	SubjectName  string    `json:"subjectName"`
	Evaluators   []string  `json:"evaluators" binding:"required"`
	Deadline     time.Time `json:"deadline" binding:"required"`
}

// HandleCreateEvaluation opens an evaluation cycle and returns the invite
// tokens. Tokens are returned once, here; the server keeps no copy.
func (h *Handler) HandleCreateEvaluation(c *gin.Context) {
	var req createEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rec := database.NewEvaluationRecord(req.InstrumentID, req.SubjectID, req.SubjectName, req.Evaluators, req.Deadline)
	if err := h.evaluations.Create(rec); err != nil {
		h.abortWith(c, err)
		return
	}

	raterTokens := make(map[string]string, len(req.Evaluators))
	for _, raterID := range req.Evaluators {
		token, err := h.issuer.IssueRaterToken(rec.ID, raterID, req.Deadline)
		if err != nil {
			h.abortWith(c, apperrors.NewInternal("failed to issue invite token", err))
			return
		}
		raterTokens[raterID] = token
	}

	subjectToken, err := h.issuer.IssueSubjectToken(rec.ID, req.Deadline)
	if err != nil {
		h.abortWith(c, apperrors.NewInternal("failed to issue subject token", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"evaluationId": rec.ID,
		"raterTokens":  raterTokens,
		"subjectToken": subjectToken,
		"deadline":     rec.Deadline,
	})
}

// HandleEvaluationStatus reports submission progress without revealing who
// has and has not submitted.
func (h *Handler) HandleEvaluationStatus(c *gin.Context) {
	evaluationID := c.Param("id")
	rec, err := h.evaluations.Get(evaluationID)
	if err != nil {
		h.abortWith(c, err)
		return
	}

	count, err := h.evaluations.SubmittedCount(evaluationID)
	if err != nil {
		h.abortWith(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"evaluationId": rec.ID,
		"instrumentId": rec.InstrumentID,
		"submitted":    count,
		"invited":      len(rec.Evaluators),
		"deadline":     rec.Deadline,
	})
}

// HandleRaterSubmit accepts an invited evaluator's submission. The rater and
// evaluation identities come from the verified invite token, never from the
// body.
func (h *Handler) HandleRaterSubmit(c *gin.Context) {
	evaluationID := c.GetString("evaluation_id")
	raterID := c.GetString("rater_id")

	eval, err := h.evaluations.Get(evaluationID)
	if err != nil {
		h.abortWith(c, err)
		return
	}

	inst, err := h.bank.Get(eval.InstrumentID)
	if err != nil {
		h.abortWith(c, err)
		return
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rs, err := h.collect(inst, req, eval.SubjectID, raterID)
	if err != nil {
		h.abortWith(c, err)
		return
	}

	if err := h.evaluations.SubmitRater(evaluationID, rs); err != nil {
		h.abortWith(c, err)
		return
	}

	h.reportCache.InvalidatePrefix("/evaluations/" + evaluationID)

	count, _ := h.evaluations.SubmittedCount(evaluationID)
	c.JSON(http.StatusOK, gin.H{
		"message":   "submission recorded",
		"submitted": count,
		"invited":   len(eval.Evaluators),
	})
}

// HandleSelfSubmit accepts the subject's private self-rating, reflections
// included.
func (h *Handler) HandleSelfSubmit(c *gin.Context) {
	evaluationID := c.GetString("evaluation_id")

	eval, err := h.evaluations.Get(evaluationID)
	if err != nil {
		h.abortWith(c, err)
		return
	}

	inst, err := h.bank.Get(eval.InstrumentID)
	if err != nil {
		h.abortWith(c, err)
		return
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rs, err := h.collect(inst, req, eval.SubjectID, "")
	if err != nil {
		h.abortWith(c, err)
		return
	}

	if err := h.evaluations.SubmitSelf(evaluationID, rs); err != nil {
		h.abortWith(c, err)
		return
	}

	h.reportCache.InvalidatePrefix("/evaluations/" + evaluationID)

	c.JSON(http.StatusOK, gin.H{"message": "self-rating recorded"})
}

// HandleBoardReport returns the aggregated board report once enough raters
// have submitted.
func (h *Handler) HandleBoardReport(c *gin.Context) {
	evaluationID := c.Param("id")

	start := time.Now()
	report, err := h.evaluations.BoardReport(evaluationID)
	if err != nil {
		h.abortWith(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.IncrementEvaluationsAggregated()
	}
	h.logger.AggregationLogger(evaluationID, report.SampleSize, time.Since(start))

	c.JSON(http.StatusOK, report)
}

// HandleSelfReflections returns the subject's private reflections. Reachable
// only with a subject token; there is no board-facing route to this data.
func (h *Handler) HandleSelfReflections(c *gin.Context) {
	evaluationID := c.GetString("evaluation_id")

	reflections, err := h.evaluations.SelfReflections(evaluationID)
	if err != nil {
		h.abortWith(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"evaluationId": evaluationID,
		"reflections":  reflections,
		"private":      true,
	})
}

// HandleHealth reports service health and component stats.
func (h *Handler) HandleHealth(db *database.DB, redisEnabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   "1.0.0",
			"components": gin.H{
				"database": db.GetPoolStats(),
				"cache":    h.reportCache.Stats(),
				"redis":    gin.H{"enabled": redisEnabled},
			},
			"metrics": h.metrics.GetStats(),
		})
	}
}

// HandleMetrics exposes the raw metrics snapshot.
func (h *Handler) HandleMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.metrics.GetStats())
}

// HandleCacheStats exposes report cache statistics.
func (h *Handler) HandleCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.reportCache.Stats())
}
