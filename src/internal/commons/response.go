package commons

// Response is the envelope every wallet endpoint answers with.
type Response[T any] struct {
	Success   bool     `json:"success"`
	Message   string   `json:"message"`
	Data      *T       `json:"data,omitempty"`
	Errors    []string `json:"errors,omitempty"`
	RequestID string   `json:"requestId,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    &data,
	}
}

func MessageResponse(message string) Response[struct{}] {
	return Response[struct{}]{
		Success: true,
		Message: message,
	}
}

func ErrorResponse[T any](message string, errors ...string) Response[T] {
	return Response[T]{
		Success: false,
		Message: message,
		Errors:  errors,
	}
}

func (r Response[T]) WithRequestID(id string) Response[T] {
	r.RequestID = id
	return r
}
