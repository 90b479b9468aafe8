package dto

import (
	"errors"
	"time"

	"github.com/BloggingApp/blog-client/internal/baas"
)

// BasicResponse is the envelope of every non-page answer. Code carries the
// backend error type when a failure came from the backend.
type BasicResponse struct {
	Ok        bool      `json:"ok"`
	Details   string    `json:"details"`
	Code      string    `json:"code,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewBasicResponse(ok bool, details string) BasicResponse {
	return BasicResponse{
		Ok:        ok,
		Details:   details,
		Timestamp: time.Now(),
	}
}

func NewErrorResponse(err error) BasicResponse {
	resp := NewBasicResponse(false, err.Error())
	var berr *baas.Error
	if errors.As(err, &berr) {
		resp.Code = berr.Type
	}
	return resp
}
