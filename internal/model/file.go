package model

import "time"

// StoredFile is an uploaded object. Its content is never read by the client;
// the id is what posts reference as their featured image.
type StoredFile struct {
	ID        string    `json:"id"`
	BucketID  string    `json:"bucket_id"`
	Name      string    `json:"name"`
	MimeType  string    `json:"mime_type"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}
