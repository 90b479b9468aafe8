package service

import (
	"context"

	"github.com/BloggingApp/blog-client/internal/baas"
	"github.com/BloggingApp/blog-client/internal/config"
	"github.com/BloggingApp/blog-client/internal/dto"
	"github.com/BloggingApp/blog-client/internal/model"
	"go.uber.org/zap"
)

type commentService struct {
	logger       *zap.Logger
	db           baas.Databases
	databaseID   string
	collectionID string
}

func newCommentService(logger *zap.Logger, db baas.Databases, cfg config.BaaSConfig) Comment {
	return &commentService{
		logger:       logger,
		db:           db,
		databaseID:   cfg.DatabaseID,
		collectionID: cfg.CommentCollectionID,
	}
}

// FindByPost returns the first page of a post's comments, oldest first.
func (s *commentService) FindByPost(ctx context.Context, postID string) ([]*model.Comment, error) {
	list, err := s.db.ListDocuments(ctx, s.databaseID, s.collectionID,
		baas.Equal("postId", postID),
		baas.OrderAsc("$createdAt"),
	)
	if err != nil {
		s.logger.Sugar().Errorf("failed to list comments of post(%s): %s", postID, err.Error())
		return nil, wrap(ErrFetch, "get comments", err)
	}

	comments := make([]*model.Comment, 0, len(list.Documents))
	for _, doc := range list.Documents {
		comments = append(comments, toComment(doc))
	}

	return comments, nil
}

func (s *commentService) Create(ctx context.Context, author *model.Identity, postID string, form dto.CommentForm) (*model.Comment, error) {
	doc, err := s.db.CreateDocument(ctx, s.databaseID, s.collectionID, baas.IDUnique, map[string]any{
		"postId":   postID,
		"userId":   author.ID,
		"userName": author.Name,
		"content":  form.Content,
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to create comment on post(%s): %s", postID, err.Error())
		return nil, wrap(ErrCreate, "create comment", err)
	}

	return toComment(doc), nil
}

func toComment(doc *baas.Document) *model.Comment {
	return &model.Comment{
		ID:        doc.ID,
		PostID:    doc.String("postId"),
		UserID:    doc.String("userId"),
		UserName:  doc.String("userName"),
		Content:   doc.String("content"),
		CreatedAt: doc.CreatedAt,
	}
}
