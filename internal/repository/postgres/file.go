package postgres

import (
	"context"

	"github.com/BloggingApp/blog-client/internal/baas"
	"github.com/jackc/pgx/v5/pgxpool"
)

type fileRepo struct {
	db *pgxpool.Pool
}

func newFileRepo(db *pgxpool.Pool) File {
	return &fileRepo{
		db: db,
	}
}

func (r *fileRepo) Create(ctx context.Context, file baas.File, content []byte) (*baas.File, error) {
	file.SizeOriginal = int64(len(content))
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO files(bucket_id, id, name, mime_type, size, content) VALUES($1, $2, $3, $4, $5, $6) RETURNING created_at",
		file.BucketID,
		file.ID,
		file.Name,
		file.MimeType,
		file.SizeOriginal,
		content,
	).Scan(&file.CreatedAt); err != nil {
		return nil, mapError(err)
	}

	return &file, nil
}

func (r *fileRepo) FindByID(ctx context.Context, bucketID, id string) (*baas.File, []byte, error) {
	var (
		file    baas.File
		content []byte
	)
	if err := r.db.QueryRow(
		ctx,
		"SELECT f.bucket_id, f.id, f.name, f.mime_type, f.size, f.content, f.created_at FROM files f WHERE f.bucket_id = $1 AND f.id = $2",
		bucketID,
		id,
	).Scan(
		&file.BucketID,
		&file.ID,
		&file.Name,
		&file.MimeType,
		&file.SizeOriginal,
		&content,
		&file.CreatedAt,
	); err != nil {
		return nil, nil, mapError(err)
	}

	return &file, content, nil
}

func (r *fileRepo) Delete(ctx context.Context, bucketID, id string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM files WHERE bucket_id = $1 AND id = $2", bucketID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
