// Package api provides the HTTP handlers and request/response types for the
// operator-facing queue API.
package api

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
