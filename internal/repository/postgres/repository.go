package postgres

import (
	"context"
	"errors"

	"github.com/BloggingApp/blog-client/internal/baas"
	"github.com/BloggingApp/blog-client/internal/config"
	"github.com/BloggingApp/blog-client/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

var (
	ErrNotFound                 = errors.New("not found")
	ErrDuplicate                = errors.New("already exists")
	ErrFieldsNotAllowedToUpdate = errors.New("fields not allowed to update")
)

type Account interface {
	Create(ctx context.Context, account model.Account) (*model.Account, error)
	FindByID(ctx context.Context, id string) (*model.Account, error)
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) (*model.Account, error)
}

type Document interface {
	Create(ctx context.Context, doc baas.Document) (*baas.Document, error)
	FindByID(ctx context.Context, databaseID, collectionID, id string) (*baas.Document, error)
	List(ctx context.Context, databaseID, collectionID string, queries []baas.Query) (*baas.DocumentList, error)
	Patch(ctx context.Context, databaseID, collectionID, id string, data map[string]any) (*baas.Document, error)
	Delete(ctx context.Context, databaseID, collectionID, id string) error
}

type File interface {
	Create(ctx context.Context, file baas.File, content []byte) (*baas.File, error)
	FindByID(ctx context.Context, bucketID, id string) (*baas.File, []byte, error)
	Delete(ctx context.Context, bucketID, id string) error
}

type PostgresRepository struct {
	Account
	Document
	File
}

func New(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		Account:  newAccountRepo(db),
		Document: newDocumentRepo(db),
		File:     newFileRepo(db),
	}
}

func DB(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.URL())
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash BYTEA NOT NULL,
	labels        TEXT[] NOT NULL DEFAULT '{}',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS documents (
	database_id   TEXT NOT NULL,
	collection_id TEXT NOT NULL,
	id            TEXT NOT NULL,
	data          JSONB NOT NULL DEFAULT '{}',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (database_id, collection_id, id)
);

CREATE TABLE IF NOT EXISTS files (
	bucket_id  TEXT NOT NULL,
	id         TEXT NOT NULL,
	name       TEXT NOT NULL,
	mime_type  TEXT NOT NULL,
	size       BIGINT NOT NULL,
	content    BYTEA NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (bucket_id, id)
);
`

// Migrate creates the tables the self-hosted backend needs.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, schema)
	return err
}

func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicate
	}

	return err
}
