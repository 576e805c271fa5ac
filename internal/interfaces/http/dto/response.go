package dto

// Response is the envelope of every API response
type Response struct {
	Status bool       `json:"status"`
	Data   any        `json:"data,omitempty"`
	Errors *ErrorInfo `json:"errors,omitempty"`
}

// ErrorInfo describes why a request failed
type ErrorInfo struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data any) Response {
	return Response{Status: true, Data: data}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{
		Status: false,
		Errors: &ErrorInfo{Code: code, Message: message},
	}
}

// NewErrorResponseWithDetails creates an error response carrying per-field messages
func NewErrorResponseWithDetails(code, message string, details map[string]string) Response {
	resp := NewErrorResponse(code, message)
	if len(details) > 0 {
		resp.Errors.Details = details
	}
	return resp
}
