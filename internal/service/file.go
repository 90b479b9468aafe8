package service

import (
	"context"

	"github.com/BloggingApp/blog-client/internal/baas"
	"github.com/BloggingApp/blog-client/internal/config"
	"github.com/BloggingApp/blog-client/internal/model"
	"go.uber.org/zap"
)

type fileService struct {
	logger   *zap.Logger
	storage  baas.Storage
	bucketID string
}

func newFileService(logger *zap.Logger, storage baas.Storage, cfg config.BaaSConfig) *fileService {
	return &fileService{
		logger:   logger,
		storage:  storage,
		bucketID: cfg.BucketID,
	}
}

func (s *fileService) Upload(ctx context.Context, file baas.InputFile) (*model.StoredFile, error) {
	created, err := s.storage.CreateFile(ctx, s.bucketID, baas.IDUnique, file)
	if err != nil {
		s.logger.Sugar().Errorf("failed to upload file(%s): %s", file.Name, err.Error())
		return nil, wrap(ErrUpload, "upload file", err)
	}

	return &model.StoredFile{
		ID:        created.ID,
		BucketID:  created.BucketID,
		Name:      created.Name,
		MimeType:  created.MimeType,
		Size:      created.SizeOriginal,
		CreatedAt: created.CreatedAt,
	}, nil
}

// Delete succeeds when the file is already gone.
func (s *fileService) Delete(ctx context.Context, id string) error {
	if err := s.storage.DeleteFile(ctx, s.bucketID, id); err != nil {
		if baas.IsNotFound(err) {
			return nil
		}
		s.logger.Sugar().Errorf("failed to delete file(%s): %s", id, err.Error())
		return wrap(ErrDelete, "delete file", err)
	}

	return nil
}

func (s *fileService) PreviewURL(id string) string {
	return s.storage.GetFilePreview(s.bucketID, id)
}
