package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same code, so that errors built with
// NewDomainError match the sentinels below through errors.Is.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetail returns a copy of the error with a field-level detail attached
func (e *DomainError) WithDetail(field, message string) *DomainError {
	details := make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[field] = message
	return &DomainError{Code: e.Code, Message: e.Message, Details: details}
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes
const (
	CodeValidation            = "VALIDATION_ERROR"
	CodeNotAuthenticated      = "NOT_AUTHENTICATED"
	CodeForbidden             = "FORBIDDEN"
	CodeNotFound              = "NOT_FOUND"
	CodeDuplicateEntity       = "DUPLICATE_ENTITY"
	CodeConflict              = "CONFLICT"
	CodeInvalidState          = "INVALID_STATE"
	CodeInvalidURL            = "INVALID_URL"
	CodeInvalidBooleanLiteral = "INVALID_BOOLEAN_LITERAL"
	CodeInvalidStatus         = "INVALID_STATUS"
	CodeUpstreamFetch         = "UPSTREAM_FETCH_ERROR"
)

// Common domain errors
var (
	ErrValidation            = NewDomainError(CodeValidation, "Validation failed")
	ErrNotAuthenticated      = NewDomainError(CodeNotAuthenticated, "Authentication credentials were not provided or are invalid")
	ErrForbidden             = NewDomainError(CodeForbidden, "Access to this resource is forbidden")
	ErrNotFound              = NewDomainError(CodeNotFound, "Resource not found")
	ErrDuplicateEntity       = NewDomainError(CodeDuplicateEntity, "Resource already exists")
	ErrConflict              = NewDomainError(CodeConflict, "Resource is locked by another operation")
	ErrInvalidState          = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrInvalidURL            = NewDomainError(CodeInvalidURL, "Enter a valid URL")
	ErrInvalidBooleanLiteral = NewDomainError(CodeInvalidBooleanLiteral, "Invalid boolean value")
	ErrInvalidStatus         = NewDomainError(CodeInvalidStatus, "Invalid order status")
	ErrUpstreamFetch         = NewDomainError(CodeUpstreamFetch, "Feed could not be fetched or parsed")
)

// NewValidationError creates a validation error for a single field
func NewValidationError(field, message string) *DomainError {
	return NewDomainError(CodeValidation, message).WithDetail(field, message)
}
