// Package baas describes the backend-as-a-service surface the blog client is
// written against: an account API holding the client's session, a document
// database and a file bucket store. Drivers live in the sub-packages.
package baas

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"
)

// IDUnique asks the backend to generate the id of a new resource.
const IDUnique = "unique()"

// Account operates on the user behind the session this client holds.
type Account interface {
	Create(ctx context.Context, userID, email, password, name string) (*User, error)
	CreateEmailPasswordSession(ctx context.Context, email, password string) (*Session, error)
	Get(ctx context.Context) (*User, error)
	DeleteSessions(ctx context.Context) error
	UpdateName(ctx context.Context, name string) (*User, error)
}

// Databases is a document store. UpdateDocument writes every key present in
// data and leaves absent keys untouched; a nil value stores null.
type Databases interface {
	CreateDocument(ctx context.Context, databaseID, collectionID, documentID string, data map[string]any) (*Document, error)
	GetDocument(ctx context.Context, databaseID, collectionID, documentID string) (*Document, error)
	ListDocuments(ctx context.Context, databaseID, collectionID string, queries ...Query) (*DocumentList, error)
	UpdateDocument(ctx context.Context, databaseID, collectionID, documentID string, data map[string]any) (*Document, error)
	DeleteDocument(ctx context.Context, databaseID, collectionID, documentID string) error
}

// Storage keeps opaque binary objects in buckets. GetFilePreview only derives
// a URL and never talks to the backend.
type Storage interface {
	CreateFile(ctx context.Context, bucketID, fileID string, file InputFile) (*File, error)
	DeleteFile(ctx context.Context, bucketID, fileID string) error
	GetFilePreview(bucketID, fileID string) string
}

// FileReader is implemented by drivers that serve file contents themselves
// instead of through an external preview endpoint.
type FileReader interface {
	GetFileView(ctx context.Context, bucketID, fileID string) (*File, io.ReadCloser, error)
}

type Client struct {
	Account   Account
	Databases Databases
	Storage   Storage
}

// NewID returns a fresh backend-compatible resource id.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ResolveID turns IDUnique into a generated id and keeps any explicit id.
func ResolveID(id string) string {
	if id == "" || id == IDUnique {
		return NewID()
	}
	return id
}
