package dto

type CommentForm struct {
	Content string `json:"content" validate:"required,min=1,max=4096"`
}
