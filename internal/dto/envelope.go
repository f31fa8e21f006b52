package dto

// Envelope is the uniform response shape for every endpoint.
// Success responses carry Data (and sometimes Message); failures carry Error.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK wraps a payload in a success envelope.
func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// OKMessage wraps a payload with an explicit message.
func OKMessage(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

// Fail builds a failure envelope with a client-facing error string.
func Fail(errMsg string) Envelope {
	return Envelope{Success: false, Error: errMsg}
}
