package optimize

import "fmt"

// Kind is the machine-checkable classification of an externally visible
// failure.
type Kind string

const (
	KindMissingInput      Kind = "MissingInput"
	KindUnsupportedFormat Kind = "UnsupportedFormat"
	KindExtractionFailed  Kind = "ExtractionFailed"
	KindScrapeFailed      Kind = "ScrapeFailed"
	KindInternalError     Kind = "InternalError"
)

// Error carries a kind for the boundary plus a human-readable message.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}
