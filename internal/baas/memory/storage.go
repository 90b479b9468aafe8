package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/BloggingApp/blog-client/internal/baas"
)

type storage struct {
	backend *Backend
}

func (s *storage) CreateFile(ctx context.Context, bucketID, fileID string, file baas.InputFile) (*baas.File, error) {
	content, err := io.ReadAll(file.Reader)
	if err != nil {
		return nil, baas.NewError(http.StatusBadRequest, "storage_invalid_file", fmt.Sprintf("failed to read upload: %s", err.Error()))
	}

	b := s.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.failure(OpFileCreate); err != nil {
		return nil, err
	}

	mimeType := file.MimeType
	if mimeType == "" {
		mimeType = http.DetectContentType(content)
	}

	stored := &storedFile{
		File: baas.File{
			ID:           baas.ResolveID(fileID),
			BucketID:     bucketID,
			Name:         file.Name,
			MimeType:     mimeType,
			SizeOriginal: int64(len(content)),
			CreatedAt:    b.now(),
		},
		content: content,
	}
	b.files[fileKey(bucketID, stored.ID)] = stored

	out := stored.File
	return &out, nil
}

func (s *storage) DeleteFile(ctx context.Context, bucketID, fileID string) error {
	b := s.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.failure(OpFileDelete); err != nil {
		return err
	}

	key := fileKey(bucketID, fileID)
	if _, ok := b.files[key]; !ok {
		return fileNotFound()
	}
	delete(b.files, key)

	return nil
}

func (s *storage) GetFilePreview(bucketID, fileID string) string {
	return fmt.Sprintf("%s/storage/buckets/%s/files/%s/preview?project=%s", s.backend.endpoint, bucketID, fileID, s.backend.projectID)
}

func (s *storage) GetFileView(ctx context.Context, bucketID, fileID string) (*baas.File, io.ReadCloser, error) {
	b := s.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	stored, ok := b.files[fileKey(bucketID, fileID)]
	if !ok {
		return nil, nil, fileNotFound()
	}

	out := stored.File
	return &out, io.NopCloser(bytes.NewReader(stored.content)), nil
}

func fileNotFound() error {
	return baas.NewError(http.StatusNotFound, baas.TypeFileNotFound, "The requested file could not be found.")
}
