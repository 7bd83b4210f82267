package shared

// DomainError is an error carrying a stable machine-readable code. The
// HTTP layer maps the code to a status; the message is safe to show to
// clients.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	cause   error
}

// NewDomainError creates a domain error with the given code and
// client-facing message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause, if any, to errors.Is/As.
func (e *DomainError) Unwrap() error {
	return e.cause
}

// Is matches any DomainError with the same code, so a repository error
// built with WithCause still satisfies errors.Is(err, ErrNotFound).
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// WithCause returns a copy of the error wrapping cause. The original
// sentinel is left untouched.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{Code: e.Code, Message: e.Message, cause: cause}
}

// Sentinel errors shared across domains. Application services create
// ad-hoc DomainErrors for cases specific to a single operation.
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrNotVerified         = NewDomainError("NOT_VERIFIED", "Advocate profile is not verified")
	ErrSlotConflict        = NewDomainError("SLOT_CONFLICT", "Appointment slot conflicts with an existing booking")
)
