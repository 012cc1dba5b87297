// Package types defines the gateway's JSON response envelopes. Upstream wire
// shapes live in pkg/upstream; these are what the storefront client sees.
package types

// SuccessEnvelope wraps every successful response.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public error shape. Details carry field-level validation
// messages; internals never leak here.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps a failed response. RequestID echoes the X-Request-Id
// header so a shopper's report can be matched to the gateway logs.
type ErrorEnvelope struct {
	Error     APIError `json:"error"`
	RequestID string   `json:"requestId,omitempty"`
}
