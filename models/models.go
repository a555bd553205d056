// ABOUTME: Shared API response models
// ABOUTME: JSON-serializable structures matching frontend expectations

package models

import "time"

// HealthResponse reports service and dependency status.
type HealthResponse struct {
	Status    string    `json:"status"`
	Store     string    `json:"store"`
	Markets   int       `json:"markets"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}
