package dto

import (
	"fmt"
	"testing"

	"github.com/BloggingApp/blog-client/internal/baas"
	"github.com/BloggingApp/blog-client/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Hello, World!  ", "hello-world"},
		{"Go 1.23 -- what's new?", "go-1-23-what-s-new"},
		{"---", ""},
		{"Ünïcode Title", "n-code-title"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestCategorySlug(t *testing.T) {
	assert.Equal(t, "tech", CategorySlug("Tech"))
	assert.Equal(t, "c-tips", CategorySlug("C++ Tips"))
	assert.Equal(t, "life-style", CategorySlug(" Life  Style "))
}

func TestValidator_SignupForm(t *testing.T) {
	v := NewValidator()

	err := v.Validate(SignupForm{Name: "User", Email: "user@example.com", Password: "Secret123!"})
	assert.NoError(t, err)

	err = v.Validate(SignupForm{Email: "not-an-email", Password: "short"})
	require.ErrorIs(t, err, ErrValidation)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{
		"name":     "is required",
		"email":    "must be a valid email address",
		"password": "must be at least 8 characters",
	}, verr.Fields)
	assert.Equal(t,
		"validation failed: email must be a valid email address; name is required; password must be at least 8 characters",
		err.Error())
}

func TestValidator_PostForms(t *testing.T) {
	v := NewValidator()

	err := v.Validate(CreatePostForm{Title: "Hello", Content: "<p>hi</p>", Status: "published"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "must be one of: active inactive", verr.Fields["status"])

	assert.NoError(t, v.Validate(CreatePostForm{Title: "Hello", Content: "<p>hi</p>", Status: model.PostStatusActive}))

	empty := ""
	err = v.Validate(EditPostForm{Title: &empty})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")

	assert.NoError(t, v.Validate(EditPostForm{}))
}

func TestNewBasicResponse(t *testing.T) {
	resp := NewBasicResponse(false, "post not found")
	assert.False(t, resp.Ok)
	assert.Equal(t, "post not found", resp.Details)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestNewErrorResponse(t *testing.T) {
	cause := baas.NewError(409, "document_already_exists", "Document with the requested ID already exists.")
	resp := NewErrorResponse(fmt.Errorf("failed to create post: %w", cause))
	assert.False(t, resp.Ok)
	assert.Equal(t, "document_already_exists", resp.Code)
	assert.Contains(t, resp.Details, "failed to create post")

	plain := NewErrorResponse(ErrValidation)
	assert.Empty(t, plain.Code)
	assert.Equal(t, ErrValidation.Error(), plain.Details)
}
