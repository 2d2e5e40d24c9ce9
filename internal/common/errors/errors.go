package errors

import (
	"fmt"
	"strings"
	"time"
)

type ErrorCode string

const (
	ErrCodeInvalidAssessmentType      ErrorCode = "INVALID_ASSESSMENT_TYPE"
	ErrCodeAssessmentValidationFailed ErrorCode = "ASSESSMENT_VALIDATION_FAILED"
	ErrCodeAssessmentSaveFailed       ErrorCode = "ASSESSMENT_SAVE_FAILED"

	ErrCodeCatalogLoadFailed   ErrorCode = "CATALOG_LOAD_FAILED"
	ErrCodeReportPersistFailed ErrorCode = "REPORT_PERSIST_FAILED"
	ErrCodeReportNotFound      ErrorCode = "REPORT_NOT_FOUND"
	ErrCodeReportAccessDenied  ErrorCode = "REPORT_ACCESS_DENIED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"

	ErrCodeSearchQueryFailed ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeSearchTimeout     ErrorCode = "SEARCH_TIMEOUT"
	ErrCodeIndexNotFound     ErrorCode = "INDEX_NOT_FOUND"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeInputValidationFailed ErrorCode = "INPUT_VALIDATION_FAILED"
	ErrCodeInternal              ErrorCode = "INTERNAL_ERROR"
)

// StandardError is the error shape workers return to the job handler.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Is matches another StandardError by code, so errors.Is works against the exported sentinels.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	return ok && t.Code == e.Code
}

// BPMNError is what gets thrown back to the process engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

func errDetails(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func NewInvalidAssessmentTypeError(assessmentType string) *StandardError {
	return newError(ErrCodeInvalidAssessmentType, "Invalid assessment type",
		fmt.Sprintf("assessmentType: %s", assessmentType), false)
}

func NewAssessmentValidationFailedError(details string) *StandardError {
	return newError(ErrCodeAssessmentValidationFailed, "Assessment responses failed validation", details, false)
}

func NewAssessmentSaveFailedError(err error) *StandardError {
	return newError(ErrCodeAssessmentSaveFailed, "Failed to save assessment", errDetails(err), true)
}

func NewCatalogLoadFailedError(err error) *StandardError {
	return newError(ErrCodeCatalogLoadFailed, "Failed to load career catalog", errDetails(err), true)
}

func NewReportPersistFailedError(err error) *StandardError {
	return newError(ErrCodeReportPersistFailed, "Failed to persist report", errDetails(err), true)
}

func NewReportNotFoundError(reportID int64) *StandardError {
	return newError(ErrCodeReportNotFound, "Report not found", fmt.Sprintf("reportId: %d", reportID), false)
}

func NewReportAccessDeniedError(role string) *StandardError {
	return newError(ErrCodeReportAccessDenied, "Role is not allowed to access reports", fmt.Sprintf("role: %s", role), false)
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", errDetails(err), true)
}

func NewQueryExecutionFailedError(query string, err error) *StandardError {
	return newError(ErrCodeQueryExecutionFailed, "Query execution failed",
		fmt.Sprintf("query: %s, error: %s", query, errDetails(err)), true)
}

func NewSearchQueryFailedError(err error) *StandardError {
	return newError(ErrCodeSearchQueryFailed, "Career search failed", errDetails(err), true)
}

func NewSearchTimeoutError() *StandardError {
	return newError(ErrCodeSearchTimeout, "Career search timed out", "", true)
}

func NewIndexNotFoundError(index string) *StandardError {
	return newError(ErrCodeIndexNotFound, "Search index not found", fmt.Sprintf("index: %s", index), false)
}

func NewNotificationSendFailedError(event string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Failed to send notification",
		fmt.Sprintf("event: %s, error: %s", event, errDetails(err)), true)
}

func NewInputValidationFailedError(details string) *StandardError {
	return newError(ErrCodeInputValidationFailed, "Job variables failed validation", details, false)
}

// Sentinels for errors.Is comparisons; only Code is significant.
var (
	ErrReportNotFound     = &StandardError{Code: ErrCodeReportNotFound}
	ErrReportAccessDenied = &StandardError{Code: ErrCodeReportAccessDenied}
	ErrInvalidAssessment  = &StandardError{Code: ErrCodeInvalidAssessmentType}
)

var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidAssessmentType:      "INVALID_ASSESSMENT_TYPE",
	ErrCodeAssessmentValidationFailed: "ASSESSMENT_INVALID",
	ErrCodeAssessmentSaveFailed:       "ASSESSMENT_SAVE_FAILED",
	ErrCodeCatalogLoadFailed:          "CATALOG_UNAVAILABLE",
	ErrCodeReportPersistFailed:        "REPORT_PERSIST_FAILED",
	ErrCodeReportNotFound:             "REPORT_NOT_FOUND",
	ErrCodeReportAccessDenied:         "ACCESS_DENIED",
	ErrCodeDatabaseConnectionFailed:   "DATABASE_CONNECTION_FAILED",
	ErrCodeQueryExecutionFailed:       "QUERY_EXECUTION_FAILED",
	ErrCodeSearchQueryFailed:          "SEARCH_QUERY_FAILED",
	ErrCodeSearchTimeout:              "SEARCH_TIMEOUT",
	ErrCodeIndexNotFound:              "INDEX_NOT_FOUND",
	ErrCodeNotificationSendFailed:     "NOTIFICATION_SEND_FAILED",
	ErrCodeInputValidationFailed:      "INVALID_INPUT",
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeAssessmentSaveFailed,
		ErrCodeCatalogLoadFailed,
		ErrCodeReportPersistFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeNotificationSendFailed:
		return 3
	case ErrCodeSearchTimeout:
		return 2
	default:
		return 0
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "ASSESSMENT"):
		return "ASSESSMENT"
	case strings.Contains(codeStr, "REPORT") || strings.Contains(codeStr, "CATALOG"):
		return "REPORT"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY_EXECUTION"):
		return "DATABASE"
	case strings.Contains(codeStr, "SEARCH") || strings.Contains(codeStr, "INDEX"):
		return "SEARCH"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
