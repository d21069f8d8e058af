package llm

import (
	"errors"
	"fmt"
)

// ErrorKind classifies dispatch failures so callers can react without
// string-matching error text.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotConfigured
	KindUnsupportedModel
	KindCLINotFound
	KindCLIFailure
	KindNetworkFailure
	KindAPIFailure
	KindProtocolFailure
	KindTimeout
	KindCancelled
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotConfigured:
		return "not configured"
	case KindUnsupportedModel:
		return "unsupported model"
	case KindCLINotFound:
		return "cli not found"
	case KindCLIFailure:
		return "cli failure"
	case KindNetworkFailure:
		return "network failure"
	case KindAPIFailure:
		return "api failure"
	case KindProtocolFailure:
		return "protocol failure"
	case KindTimeout:
		return "timeout"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Error is the dispatcher's uniform failure value. Status is only set for
// KindAPIFailure (the remote HTTP status).
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Kind == KindAPIFailure && e.Status != 0 {
		return fmt.Sprintf("%s (HTTP %d): %s", e.Kind, e.Status, e.Message)
	}
	if e.Message == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// KindOf extracts the ErrorKind from err, or KindUnknown for foreign errors.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

func errf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
