package model

import "time"

type PostStatus string

const (
	PostStatusActive   PostStatus = "active"
	PostStatusInactive PostStatus = "inactive"
)

type Post struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Content       string     `json:"content"`
	FeaturedImage *string    `json:"featured_image"`
	Status        PostStatus `json:"status"`
	UserID        string     `json:"user_id"`
	CategoryID    *string    `json:"category_id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// PostFields is the complete write payload of a post. Updates overwrite every
// attribute with these values, so a nil optional field clears it.
type PostFields struct {
	Title         string
	Slug          string
	Content       string
	FeaturedImage *string
	Status        PostStatus
	UserID        string
	CategoryID    *string
}

// Fields returns the persisted attributes of p.
func (p *Post) Fields() PostFields {
	return PostFields{
		Title:         p.Title,
		Slug:          p.Slug,
		Content:       p.Content,
		FeaturedImage: p.FeaturedImage,
		Status:        p.Status,
		UserID:        p.UserID,
		CategoryID:    p.CategoryID,
	}
}

type PostList struct {
	Total int     `json:"total"`
	Posts []*Post `json:"posts"`
}

// PostEditView is a post joined with the categories it may be filed under.
type PostEditView struct {
	Post       *Post       `json:"post"`
	Categories []*Category `json:"categories"`
}

type Home struct {
	Posts      *PostList   `json:"posts"`
	Categories []*Category `json:"categories"`
}
