package model

import "time"

const (
	DefaultRole = "member"
	RoleAdmin   = "admin"
)

// Identity is the read-only copy of the signed-in backend user.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type Session struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	Expire   time.Time `json:"expire"`
	Provider string    `json:"provider"`
	Current  bool      `json:"current"`
}
