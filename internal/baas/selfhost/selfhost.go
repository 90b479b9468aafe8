// Package selfhost is a backend driver that keeps accounts, documents and
// files in PostgreSQL and sessions in Redis.
package selfhost

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/BloggingApp/blog-client/internal/baas"
	"github.com/BloggingApp/blog-client/internal/repository"
	"github.com/BloggingApp/blog-client/internal/repository/postgres"
	"github.com/BloggingApp/blog-client/internal/repository/redisrepo"
)

var ErrMissingSecret = errors.New("session secret is required")

// Stores are the persistence ports the driver runs on.
type Stores struct {
	Accounts  postgres.Account
	Documents postgres.Document
	Files     postgres.File
	Sessions  redisrepo.Session
}

func StoresFrom(repos *repository.Repository) Stores {
	return Stores{
		Accounts:  repos.Postgres.Account,
		Documents: repos.Postgres.Document,
		Files:     repos.Postgres.File,
		Sessions:  repos.Redis.Session,
	}
}

type Options struct {
	// Endpoint is the public base URL file previews are served under.
	Endpoint   string
	ProjectID  string
	Secret     []byte
	SessionTTL time.Duration
}

func New(stores Stores, opts Options) (*baas.Client, error) {
	if len(opts.Secret) == 0 {
		return nil, ErrMissingSecret
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 30 * 24 * time.Hour
	}
	opts.Endpoint = strings.TrimSuffix(opts.Endpoint, "/")

	return &baas.Client{
		Account:   &account{stores: stores, secret: opts.Secret, ttl: opts.SessionTTL, now: time.Now},
		Databases: &databases{docs: stores.Documents},
		Storage:   &storage{files: stores.Files, endpoint: opts.Endpoint, projectID: opts.ProjectID},
	}, nil
}

func internalError(err error) error {
	return baas.NewError(http.StatusInternalServerError, baas.TypeGeneralUnknown, err.Error())
}
