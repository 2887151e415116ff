package shared

// DomainError is the error type raised by domain invariants. The Code
// is a stable machine-readable identifier that the HTTP layer maps to
// a status; Message is safe to return to API clients as-is.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError builds a DomainError with the given code and message.
// Packages define their own codes (INVALID_QUANTITY, LINE_NOT_FOUND,
// ...) on top of the shared sentinels below.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Sentinels shared across aggregates. Compared by pointer identity
// through errors.Is, so they must never be mutated.
var (
	// ErrConcurrencyConflict covers both a stale aggregate version on a
	// guarded UPDATE and a unique-constraint race on insert.
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")

	ErrNotFound      = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized  = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden     = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState  = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrUnprocessable = NewDomainError("UNPROCESSABLE", "Input could not be processed")
)
