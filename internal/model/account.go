package model

import "time"

// Account is a user record of the self-hosted backend.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	Labels       []string
	CreatedAt    time.Time
}
