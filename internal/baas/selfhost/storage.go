package selfhost

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/BloggingApp/blog-client/internal/baas"
	"github.com/BloggingApp/blog-client/internal/repository/postgres"
)

type storage struct {
	files     postgres.File
	endpoint  string
	projectID string
}

func (s *storage) CreateFile(ctx context.Context, bucketID, fileID string, file baas.InputFile) (*baas.File, error) {
	content, err := io.ReadAll(file.Reader)
	if err != nil {
		return nil, baas.NewError(http.StatusBadRequest, "storage_invalid_file", fmt.Sprintf("failed to read upload: %s", err.Error()))
	}

	mimeType := file.MimeType
	if mimeType == "" {
		mimeType = http.DetectContentType(content)
	}

	created, err := s.files.Create(ctx, baas.File{
		ID:       baas.ResolveID(fileID),
		BucketID: bucketID,
		Name:     file.Name,
		MimeType: mimeType,
	}, content)
	if errors.Is(err, postgres.ErrDuplicate) {
		return nil, baas.NewError(http.StatusConflict, "storage_file_already_exists", "A storage file with the requested ID already exists.")
	}
	if err != nil {
		return nil, internalError(err)
	}

	return created, nil
}

func (s *storage) DeleteFile(ctx context.Context, bucketID, fileID string) error {
	if err := s.files.Delete(ctx, bucketID, fileID); err != nil {
		return fileError(err)
	}

	return nil
}

// GetFilePreview points at the route that serves GetFileView.
func (s *storage) GetFilePreview(bucketID, fileID string) string {
	return fmt.Sprintf("%s/storage/buckets/%s/files/%s/preview?project=%s", s.endpoint, bucketID, fileID, s.projectID)
}

func (s *storage) GetFileView(ctx context.Context, bucketID, fileID string) (*baas.File, io.ReadCloser, error) {
	file, content, err := s.files.FindByID(ctx, bucketID, fileID)
	if err != nil {
		return nil, nil, fileError(err)
	}

	return file, io.NopCloser(bytes.NewReader(content)), nil
}

func fileError(err error) error {
	if errors.Is(err, postgres.ErrNotFound) {
		return baas.NewError(http.StatusNotFound, baas.TypeFileNotFound, "The requested file could not be found.")
	}
	return internalError(err)
}
