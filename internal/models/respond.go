package models

import "miniblog/internal/pagination"

// Response is the envelope every API endpoint answers with. Data and
// Pagination appear on success, Errors carries field-level validation detail,
// and Details is populated with the underlying error outside production.
type Response struct {
	Success    bool             `json:"success"`
	Message    string           `json:"message"`
	Data       any              `json:"data,omitempty"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
	Errors     []FieldError     `json:"errors,omitempty"`
	Details    string           `json:"details,omitempty"`
}
