package handler

import "github.com/craftshop/backend/internal/interfaces/http/dto"

// Response envelopes referenced from swagger annotations. Handlers
// build the actual payloads through the dto constructors; these types
// only exist so the generated docs show the envelope shape.

// APIResponse is the success envelope with a typed data field.
// @Description Standard API response wrapper with typed data field
type APIResponse[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data,omitempty"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
	Meta    *dto.Meta      `json:"meta,omitempty"`
}

// ErrorResponse is the failure envelope.
// @Description Standard error response
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}

// SuccessResponse is the bare acknowledgement envelope, used by
// deletes and other operations with nothing to return.
// @Description Simple success response without data
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}
