package dto

type CreateCategoryForm struct {
	Name        string `json:"name" validate:"required,max=128"`
	Slug        string `json:"slug" validate:"omitempty,max=128"`
	Description string `json:"description" validate:"max=1024"`
}
