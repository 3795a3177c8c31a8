package store

// ValidationError reports a missing required field on create input.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " is required"
}

// BatchResult aggregates per-item outcomes of a multi-event import.
type BatchResult struct {
	SuccessCount int      `json:"successCount"`
	FailureCount int      `json:"failureCount"`
	Errors       []string `json:"errors"`
}
