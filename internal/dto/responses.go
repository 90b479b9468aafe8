package dto

import (
	"time"

	"github.com/BloggingApp/blog-client/internal/model"
)

type ValidationResponse struct {
	BasicResponse
	Fields map[string]string `json:"fields"`
}

func NewValidationResponse(err *ValidationError) ValidationResponse {
	return ValidationResponse{
		BasicResponse: NewBasicResponse(false, ErrValidation.Error()),
		Fields:        err.Fields,
	}
}

// LocationResponse answers a successful write with where the client should
// navigate next.
type LocationResponse struct {
	Ok        bool      `json:"ok"`
	Location  string    `json:"location"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLocationResponse(location string, data any) LocationResponse {
	return LocationResponse{
		Ok:        true,
		Location:  location,
		Data:      data,
		Timestamp: time.Now(),
	}
}

type PostResponse struct {
	Post       *model.Post `json:"post"`
	PreviewURL string      `json:"preview_url,omitempty"`
	IsAuthor   bool        `json:"is_author"`
}

type PostEditResponse struct {
	model.PostEditView
	PreviewURL string `json:"preview_url,omitempty"`
}

type ProfileResponse struct {
	Identity *model.Identity `json:"identity"`
	Posts    *model.PostList `json:"posts"`
}
