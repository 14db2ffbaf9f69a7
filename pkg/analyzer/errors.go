package analyzer

import (
	"errors"
	"fmt"
)

// AnalysisError reports a failed call to the document analysis service.
type AnalysisError struct {
	Op         string
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AnalysisError) Error() string {
	msg := "analysis failed"
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.StatusCode)
	}
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Code)
	}
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// IsAnalysisFailure reports whether err, or anything it wraps, is an AnalysisError.
func IsAnalysisFailure(err error) bool {
	var ae *AnalysisError
	return errors.As(err, &ae)
}
