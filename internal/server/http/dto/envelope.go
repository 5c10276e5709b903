package dto

// Response is the envelope wrapping every API payload.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Success wraps data into a successful envelope.
func Success(data any) Response {
	return Response{Success: true, Data: data}
}

// Failure wraps an error message into an envelope.
func Failure(message string) Response {
	return Response{Success: false, Error: message}
}
