package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrUpstream          = errors.New("assistant backend request failed")
	ErrEmptyResponse     = errors.New("assistant returned no message")
	ErrNotFound          = errors.New("remote resource not found")
	ErrRunNotCompleted   = errors.New("run did not complete")
	ErrChapterNotFound   = errors.New("chapter not found")
	ErrTopicNotFound     = errors.New("topic not found")
	ErrCredentialMissing = errors.New("api credential not configured")
	ErrUnparseable       = errors.New("response did not contain the expected structure")
)

// ValidationError reports a precondition that failed before any remote call.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// UpstreamError wraps a rejected backend operation.
type UpstreamError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

func Upstream(op string, err error) error {
	if err == nil {
		return nil
	}
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return err
	}
	return &UpstreamError{Op: op, Err: err}
}
