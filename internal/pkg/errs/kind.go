package errs

import (
	"sync"

	cr "github.com/cockroachdb/errors"
)

type Kind string

const (
	KindValidation     Kind = "VALIDATION_ERROR"
	KindNotFound       Kind = "NOT_FOUND"
	KindBusinessRule   Kind = "BUSINESS_RULE_VIOLATION"
	KindConflict       Kind = "CONFLICT"
	KindAuthentication Kind = "AUTHENTICATION_ERROR"
	KindAuthorization  Kind = "AUTHORIZATION_ERROR"
	KindInfrastructure Kind = "INFRASTRUCTURE_ERROR"
)

func (k Kind) String() string {
	return string(k)
}

const internalMessage = "Internal server error"

// Error is a classified sentinel. Its message is safe to show to API clients.
// Messages must be unique across Define calls: marks are matched by message.
type Error struct {
	kind    Kind
	code    string
	message string
}

func (e *Error) Error() string { return e.message }
func (e *Error) Kind() Kind    { return e.kind }
func (e *Error) Code() string  { return e.code }

var (
	registryMu sync.RWMutex
	registry   []*Error
)

// Define declares a sentinel error of the given kind. Call it from package-level var blocks.
func Define(kind Kind, code, message string) *Error {
	e := &Error{kind: kind, code: code, message: message}
	registryMu.Lock()
	registry = append(registry, e)
	registryMu.Unlock()
	return e
}

// Classify returns the outermost classified sentinel found in err's chain or marks.
func Classify(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if cr.As(err, &e) {
		return e, true
	}

	registryMu.RLock()
	defer registryMu.RUnlock()
	for _, candidate := range registry {
		if cr.Is(err, candidate) {
			return candidate, true
		}
	}
	return nil, false
}

// KindOf reports the taxonomy kind of err. Unclassified errors are infrastructure failures.
func KindOf(err error) Kind {
	if e, ok := Classify(err); ok {
		return e.kind
	}
	return KindInfrastructure
}

func CodeOf(err error) string {
	if e, ok := Classify(err); ok {
		return e.code
	}
	return string(KindInfrastructure)
}

// PublicMessage never leaks the text of unclassified errors.
func PublicMessage(err error) string {
	if e, ok := Classify(err); ok && e.kind != KindInfrastructure {
		return e.message
	}
	return internalMessage
}
