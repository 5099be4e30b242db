package routegen

import (
	"errors"
	"fmt"
)

// Kind tags every failure of the pipeline so callers can tell expected,
// user-facing outcomes from failures that need an operator.
type Kind int

const (
	KindInternal Kind = iota
	KindAdmissionConflict
	KindQuotaExceeded
	KindProviderRateLimited
	KindProviderTransport
	KindMalformedResponse
	KindInvalidProposal
	KindNotFound
	KindInvalidInput
)

func (k Kind) String() string {
	switch k {
	case KindAdmissionConflict:
		return "admission_conflict"
	case KindQuotaExceeded:
		return "quota_exceeded"
	case KindProviderRateLimited:
		return "provider_rate_limited"
	case KindProviderTransport:
		return "provider_transport"
	case KindMalformedResponse:
		return "malformed_provider_response"
	case KindInvalidProposal:
		return "invalid_proposal"
	case KindNotFound:
		return "not_found"
	case KindInvalidInput:
		return "invalid_input"
	default:
		return "internal"
	}
}

// Expected reports whether the outcome is part of normal operation.
func (k Kind) Expected() bool {
	switch k {
	case KindAdmissionConflict, KindQuotaExceeded, KindNotFound, KindInvalidInput:
		return true
	default:
		return false
	}
}

// PublicCode is the only failure detail that reaches end users.
func (k Kind) PublicCode() string {
	switch k {
	case KindAdmissionConflict:
		return "generation_in_progress"
	case KindQuotaExceeded:
		return "daily_quota_exceeded"
	case KindNotFound:
		return "not_found"
	case KindInvalidInput:
		return "invalid_request"
	default:
		return "generation_failed"
	}
}

type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
	// Raw holds the offending provider payload for diagnostics. Never sent to users.
	Raw string
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches sentinels by kind, so errors.Is(err, ErrQuotaExceeded) works
// for any *Error of that kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Msg == "" && t.Err == nil && t.Kind == e.Kind
}

var (
	ErrAdmissionConflict   = &Error{Kind: KindAdmissionConflict}
	ErrQuotaExceeded       = &Error{Kind: KindQuotaExceeded}
	ErrProviderRateLimited = &Error{Kind: KindProviderRateLimited}
	ErrProviderTransport   = &Error{Kind: KindProviderTransport}
	ErrMalformedResponse   = &Error{Kind: KindMalformedResponse}
	ErrInvalidProposal     = &Error{Kind: KindInvalidProposal}
	ErrNotFound            = &Error{Kind: KindNotFound}
	ErrInvalidInput        = &Error{Kind: KindInvalidInput}

	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)

func newError(kind Kind, op string, err error, format string, args ...any) *Error {
	e := &Error{Kind: kind, Op: op, Err: err}
	if format != "" {
		e.Msg = fmt.Sprintf(format, args...)
	}
	return e
}

// KindOf classifies err. Untagged errors are KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// RawPayload returns the provider payload attached to err, if any.
func RawPayload(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Raw
	}
	return ""
}
