package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated    = errors.New("could not validate credentials")
	ErrInvalidCredentials = errors.New("invalid password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUpstream           = errors.New("upstream error")
	ErrInternal           = errors.New("internal error")

	ErrInvalidToken = fmt.Errorf("%w: invalid token", ErrUnauthenticated)
	ErrTokenExpired = fmt.Errorf("%w: token expired", ErrUnauthenticated)

	ErrInvalidUpstreamResponse = fmt.Errorf("%w: invalid response format", ErrUpstream)
)

// DetailError carries a client-safe detail message alongside the error kind
// (one of the sentinels above) and an optional underlying cause.
type DetailError struct {
	Kind   error
	Detail string
	Err    error
}

func (e *DetailError) Error() string {
	if e.Err != nil {
		return e.Detail + ": " + e.Err.Error()
	}
	return e.Detail
}

func (e *DetailError) Is(target error) bool { return target == e.Kind }

func (e *DetailError) Unwrap() error { return e.Err }

// Invalid reports a request that cannot be processed as given.
func Invalid(detail string) error {
	return &DetailError{Kind: ErrInvalidInput, Detail: detail}
}

// Unauthenticated reports a missing or unusable bearer credential.
func Unauthenticated(detail string, cause error) error {
	return &DetailError{Kind: ErrUnauthenticated, Detail: detail, Err: cause}
}

// AnalysisFailed reports an analysis that broke after the upstream answered.
// The cause text is part of the detail returned to the client.
func AnalysisFailed(cause error) error {
	return &DetailError{Kind: ErrInternal, Detail: "Analysis failed: " + cause.Error(), Err: cause}
}

// UpstreamError is returned when the completion API answers with a non-200 status.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }
