package dto

import "github.com/BloggingApp/blog-client/internal/model"

// CreatePostForm is the new-post form. An empty Slug is derived from Title.
type CreatePostForm struct {
	Title      string           `json:"title" validate:"required,max=255"`
	Slug       string           `json:"slug" validate:"omitempty,max=255"`
	Content    string           `json:"content" validate:"required"`
	Status     model.PostStatus `json:"status" validate:"required,oneof=active inactive"`
	CategoryID *string          `json:"category_id" validate:"omitempty,min=1"`
}

// EditPostForm carries only the edited fields. Nil means unchanged, except
// for CategoryID where ClearCategory drops the category.
type EditPostForm struct {
	Title         *string           `json:"title" validate:"omitempty,min=1,max=255"`
	Slug          *string           `json:"slug" validate:"omitempty,min=1,max=255"`
	Content       *string           `json:"content" validate:"omitempty,min=1"`
	Status        *model.PostStatus `json:"status" validate:"omitempty,oneof=active inactive"`
	CategoryID    *string           `json:"category_id" validate:"omitempty,min=1"`
	ClearCategory bool              `json:"clear_category"`
}

type SearchPostsRequest struct {
	Query string `form:"q" validate:"required,min=1"`
}
