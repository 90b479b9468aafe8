// Package memory is an in-process backend used for local development and
// tests. It follows the same contract as the remote drivers, including
// not-found errors on deletes of missing resources.
package memory

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/BloggingApp/blog-client/internal/baas"
)

type Op string

const (
	OpAccountCreate         Op = "account.create"
	OpAccountCreateSession  Op = "account.createSession"
	OpAccountGet            Op = "account.get"
	OpAccountDeleteSessions Op = "account.deleteSessions"
	OpAccountUpdateName     Op = "account.updateName"
	OpDocumentCreate        Op = "databases.createDocument"
	OpDocumentGet           Op = "databases.getDocument"
	OpDocumentList          Op = "databases.listDocuments"
	OpDocumentUpdate        Op = "databases.updateDocument"
	OpDocumentDelete        Op = "databases.deleteDocument"
	OpFileCreate            Op = "storage.createFile"
	OpFileDelete            Op = "storage.deleteFile"
)

type user struct {
	baas.User
	passwordHash []byte
}

type storedFile struct {
	baas.File
	content []byte
}

// Backend holds all state. One Backend may hand out several clients; each
// client carries its own session credential.
type Backend struct {
	mu sync.Mutex

	endpoint  string
	projectID string
	now       func() time.Time

	users       map[string]*user
	emails      map[string]string
	sessions    map[string]*baas.Session
	collections map[string][]*baas.Document
	files       map[string]*storedFile
	failures    map[Op]error
}

func New(endpoint, projectID string) *Backend {
	return &Backend{
		endpoint:    endpoint,
		projectID:   projectID,
		now:         time.Now,
		users:       make(map[string]*user),
		emails:      make(map[string]string),
		sessions:    make(map[string]*baas.Session),
		collections: make(map[string][]*baas.Document),
		files:       make(map[string]*storedFile),
		failures:    make(map[Op]error),
	}
}

// Client returns a client with no active session.
func (b *Backend) Client() *baas.Client {
	return &baas.Client{
		Account:   &account{backend: b},
		Databases: &databases{backend: b},
		Storage:   &storage{backend: b},
	}
}

// Fail makes every call of op return err until Recover is called.
func (b *Backend) Fail(op Op, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[op] = err
}

func (b *Backend) Recover(op Op) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.failures, op)
}

// SetClock replaces the time source used for timestamps and expiry.
func (b *Backend) SetClock(now func() time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.now = now
}

// FileCount reports how many files a bucket holds.
func (b *Backend) FileCount(bucketID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for _, f := range b.files {
		if f.BucketID == bucketID {
			n++
		}
	}
	return n
}

// failure must be called with b.mu held.
func (b *Backend) failure(op Op) error {
	if err, ok := b.failures[op]; ok {
		return err
	}
	return nil
}

func collectionKey(databaseID, collectionID string) string {
	return databaseID + "/" + collectionID
}

func fileKey(bucketID, fileID string) string {
	return fmt.Sprintf("%s/%s", bucketID, fileID)
}

// SetLabels replaces the labels of the user with email, the way an
// administrator assigns roles on the backend console.
func (b *Backend) SetLabels(email string, labels ...string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	id, ok := b.emails[strings.ToLower(email)]
	if !ok {
		return baas.NewError(http.StatusNotFound, baas.TypeUserNotFound, "User with the requested ID could not be found.")
	}
	b.users[id].Labels = append([]string(nil), labels...)
	return nil
}
