package baas

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

type User struct {
	ID           string    `json:"$id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Labels       []string  `json:"labels"`
	Status       bool      `json:"status"`
	Registration time.Time `json:"registration"`
}

type Session struct {
	ID       string    `json:"$id"`
	UserID   string    `json:"userId"`
	Expire   time.Time `json:"expire"`
	Provider string    `json:"provider"`
	Current  bool      `json:"current"`
	// Secret is only filled by drivers that hand the credential to the caller.
	Secret string `json:"secret,omitempty"`
}

type File struct {
	ID           string    `json:"$id"`
	BucketID     string    `json:"bucketId"`
	Name         string    `json:"name"`
	MimeType     string    `json:"mimeType"`
	SizeOriginal int64     `json:"sizeOriginal"`
	CreatedAt    time.Time `json:"$createdAt"`
}

// InputFile is an upload payload.
type InputFile struct {
	Name     string
	MimeType string
	Reader   io.Reader
}

// Document is a stored record: system attributes plus user data.
type Document struct {
	ID           string
	CollectionID string
	DatabaseID   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Data         map[string]any
}

type DocumentList struct {
	Total     int         `json:"total"`
	Documents []*Document `json:"documents"`
}

func (d *Document) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	d.Data = make(map[string]any, len(raw))
	for key, value := range raw {
		if !strings.HasPrefix(key, "$") {
			d.Data[key] = value
			continue
		}

		s, _ := value.(string)
		switch key {
		case "$id":
			d.ID = s
		case "$collectionId":
			d.CollectionID = s
		case "$databaseId":
			d.DatabaseID = s
		case "$createdAt":
			d.CreatedAt = parseTime(s)
		case "$updatedAt":
			d.UpdatedAt = parseTime(s)
		}
	}

	return nil
}

func (d Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Data)+5)
	for key, value := range d.Data {
		out[key] = value
	}
	out["$id"] = d.ID
	out["$collectionId"] = d.CollectionID
	out["$databaseId"] = d.DatabaseID
	out["$createdAt"] = d.CreatedAt.Format(time.RFC3339Nano)
	out["$updatedAt"] = d.UpdatedAt.Format(time.RFC3339Nano)
	return json.Marshal(out)
}

// String returns the attribute as a string, or "" when it is absent or null.
func (d *Document) String(key string) string {
	switch v := d.Data[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// OptionalString returns nil for absent, null and empty attributes.
func (d *Document) OptionalString(key string) *string {
	s := d.String(key)
	if s == "" {
		return nil
	}
	return &s
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
