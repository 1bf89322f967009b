package types

// SuccessEnvelope is the single wrapper for every 2xx body.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the wire form of a failed request. Details carries
// field-level validation messages when present.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
