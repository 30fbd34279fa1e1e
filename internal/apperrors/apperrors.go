package apperrors

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/gin-gonic/gin"
)

// Category classifies an error for handling and logging purposes.
type Category string

const (
	CategoryValidation    Category = "validation"    // bad answer values, malformed input
	CategoryIncomplete    Category = "incomplete"    // finalize before all questions answered
	CategoryWaiting       Category = "waiting"       // aggregation below the anonymity threshold
	CategoryNotFound      Category = "not_found"     // unknown instrument, evaluation, rater
	CategoryConfiguration Category = "configuration" // broken instrument definition, fatal at load
	CategoryInternal      Category = "internal"
)

// Legacy string codes kept on the wire so report consumers can switch on them.
const (
	CodeOutOfRange              = "OUT_OF_RANGE"
	CodeIncomplete              = "INCOMPLETE"
	CodeInsufficientRaters      = "INSUFFICIENT_RATERS"
	CodeMisconfiguredInstrument = "MISCONFIGURED_INSTRUMENT"
	CodeNotFound                = "NOT_FOUND"
	CodeInvalidRequest          = "INVALID_REQUEST"
	CodeInternal                = "INTERNAL_ERROR"
)

// AppError wraps an errbuilder error with transport context.
type AppError struct {
	*errbuilder.ErrBuilder
	Code       string    `json:"code"`
	Category   Category  `json:"category"`
	HTTPStatus int       `json:"http_status"`
	Timestamp  time.Time `json:"timestamp"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.ErrBuilder.Msg)
}

func (e *AppError) Unwrap() error {
	return e.ErrBuilder.Unwrap()
}

func newAppError(builder *errbuilder.ErrBuilder, code string, category Category, httpStatus int) *AppError {
	return &AppError{
		ErrBuilder: builder,
		Code:       code,
		Category:   category,
		HTTPStatus: httpStatus,
		Timestamp:  time.Now(),
	}
}

// NewOutOfRange reports an answer value outside the instrument's declared scale.
// Rejected at collection time so it never reaches the scorer.
func NewOutOfRange(questionID string, value, min, max int) *AppError {
	details := errbuilder.ErrorMap{}
	details.Set("question_id", errors.New(questionID))
	details.Set("value", fmt.Errorf("%d not in [%d,%d]", value, min, max))

	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("answer %d for question %s is outside the %d..%d scale", value, questionID, min, max)).
		WithDetails(errbuilder.NewErrDetails(details))

	return newAppError(builder, CodeOutOfRange, CategoryValidation, http.StatusBadRequest)
}

// NewIncomplete reports a finalize attempt before every required question has
// an answer. The caller should re-prompt the respondent, never default.
func NewIncomplete(instrumentID string, missing []string) *AppError {
	details := errbuilder.ErrorMap{}
	details.Set("instrument_id", errors.New(instrumentID))
	details.Set("missing_questions", fmt.Errorf("%d unanswered", len(missing)))

	builder := errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("response set for %s is missing %d answers", instrumentID, len(missing))).
		WithDetails(errbuilder.NewErrDetails(details))

	return newAppError(builder, CodeIncomplete, CategoryIncomplete, http.StatusUnprocessableEntity)
}

// NewInsufficientRaters reports an aggregation request below the anonymity
// threshold. This is an expected waiting state in a multi-week cycle, not a
// crash; callers render it as "waiting on more responses".
func NewInsufficientRaters(have, need int) *AppError {
	details := errbuilder.ErrorMap{}
	details.Set("submitted", fmt.Errorf("%d", have))
	details.Set("required", fmt.Errorf("%d", need))

	builder := errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("aggregation requires %d evaluators, only %d have submitted", need, have)).
		WithDetails(errbuilder.NewErrDetails(details))

	return newAppError(builder, CodeInsufficientRaters, CategoryWaiting, http.StatusConflict)
}

// NewMisconfiguredInstrument reports a broken instrument definition. Fatal at
// load time; must halt initialization before any respondent-facing flow.
func NewMisconfiguredInstrument(instrumentID, reason string) *AppError {
	details := errbuilder.ErrorMap{}
	details.Set("instrument_id", errors.New(instrumentID))

	builder := errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("instrument %s is misconfigured: %s", instrumentID, reason)).
		WithDetails(errbuilder.NewErrDetails(details))

	return newAppError(builder, CodeMisconfiguredInstrument, CategoryConfiguration, http.StatusInternalServerError)
}

// NewInvalidRequest reports a request that fails domain validation, such as
// an evaluation setup that invites fewer raters than the anonymity threshold.
func NewInvalidRequest(message string) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(message)

	return newAppError(builder, CodeInvalidRequest, CategoryValidation, http.StatusBadRequest)
}

// NewNotFound reports an unknown entity.
func NewNotFound(kind, id string) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("%s %s not found", kind, id))

	return newAppError(builder, CodeNotFound, CategoryNotFound, http.StatusNotFound)
}

// NewInternal wraps an unexpected failure.
func NewInternal(message string, cause error) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(message)

	if cause != nil {
		builder = builder.WithCause(cause)
	}

	return newAppError(builder, CodeInternal, CategoryInternal, http.StatusInternalServerError)
}

// ToAppError converts any error to an AppError.
func ToAppError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	if ebErr, ok := err.(*errbuilder.ErrBuilder); ok {
		return newAppError(ebErr, CodeInternal, CategoryInternal, http.StatusInternalServerError)
	}

	return NewInternal("an unexpected error occurred", err)
}

// IsCode reports whether err carries the given wire code.
func IsCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsInsufficientRaters reports whether err is the anonymity-gate condition.
func IsInsufficientRaters(err error) bool {
	return IsCode(err, CodeInsufficientRaters)
}

// IsIncomplete reports whether err is a completeness failure.
func IsIncomplete(err error) bool {
	return IsCode(err, CodeIncomplete)
}

// ErrorHandler is a Gin middleware that converts collected errors into
// structured JSON responses.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			appErr := ToAppError(err)
			LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, gin.H{
				"code":     appErr.Code,
				"category": appErr.Category,
				"message":  appErr.ErrBuilder.Msg,
			})
		}
	}
}

// LogError logs an error at a level matching its category. Waiting states and
// validation failures are part of normal operation and never log above warn.
func LogError(c *gin.Context, err *AppError) {
	logEntry := slog.With(
		"error_code", err.Code,
		"error_category", err.Category,
		"http_status", err.HTTPStatus,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)

	switch err.Category {
	case CategoryWaiting:
		logEntry.Info(err.ErrBuilder.Msg)
	case CategoryValidation, CategoryIncomplete, CategoryNotFound:
		logEntry.Warn(err.ErrBuilder.Msg)
	default:
		if cause := err.ErrBuilder.Unwrap(); cause != nil {
			logEntry.Error(err.ErrBuilder.Msg, "cause", cause)
		} else {
			logEntry.Error(err.ErrBuilder.Msg)
		}
	}
}
