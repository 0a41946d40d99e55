package app

type AnalyticsErrorCode string

const (
	ErrCodeInvalidInput AnalyticsErrorCode = "INVALID_INPUT"
	ErrCodeNotFound     AnalyticsErrorCode = "NOT_FOUND"
	ErrCodeNoMatch      AnalyticsErrorCode = "NO_MATCHING_RECOMMENDATION"
	ErrCodeConflict     AnalyticsErrorCode = "CONFLICT"
)

// AnalyticsError is the typed error use cases return for conditions the
// caller can act on. Err carries the underlying cause when there is one.
type AnalyticsError struct {
	Code    AnalyticsErrorCode
	Message string
	Err     error
}

func (e *AnalyticsError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *AnalyticsError) Unwrap() error {
	return e.Err
}
