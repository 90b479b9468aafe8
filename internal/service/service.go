package service

import (
	"context"

	"github.com/BloggingApp/blog-client/internal/baas"
	"github.com/BloggingApp/blog-client/internal/config"
	"github.com/BloggingApp/blog-client/internal/dto"
	"github.com/BloggingApp/blog-client/internal/model"
	"github.com/BloggingApp/blog-client/internal/store"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Auth interface {
	CreateAccount(ctx context.Context, form dto.SignupForm) (*model.Session, error)
	Login(ctx context.Context, form dto.LoginForm) (*model.Session, error)
	CurrentIdentity(ctx context.Context) *model.Identity
	Restore(ctx context.Context) *model.Identity
	Logout(ctx context.Context) error
	Forget()
	UpdateName(ctx context.Context, form dto.ProfileForm) (*model.Identity, error)
}

type Post interface {
	Create(ctx context.Context, fields model.PostFields) (*model.Post, error)
	Update(ctx context.Context, id string, fields model.PostFields) (*model.Post, error)
	Delete(ctx context.Context, id string) (bool, error)
	FindBySlug(ctx context.Context, slug string) (*model.Post, error)
	Find(ctx context.Context, queries ...baas.Query) (*model.PostList, error)
	FindByCategory(ctx context.Context, categoryID string) (*model.PostList, error)
	FindByUser(ctx context.Context, userID string) (*model.PostList, error)
	Search(ctx context.Context, term string) (*model.PostList, error)
	Publish(ctx context.Context, author *model.Identity, form dto.CreatePostForm, image *baas.InputFile) (*model.Post, error)
	Edit(ctx context.Context, editor *model.Identity, slug string, form dto.EditPostForm, image *baas.InputFile) (*model.Post, error)
	Remove(ctx context.Context, editor *model.Identity, slug string) error
	LoadForEdit(ctx context.Context, slug string) (*model.PostEditView, error)
}

type Category interface {
	FindAll(ctx context.Context) ([]*model.Category, error)
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)
	Create(ctx context.Context, form dto.CreateCategoryForm) (*model.Category, error)
	SeedDefaults(ctx context.Context) ([]*model.Category, error)
}

type Comment interface {
	FindByPost(ctx context.Context, postID string) ([]*model.Comment, error)
	Create(ctx context.Context, author *model.Identity, postID string, form dto.CommentForm) (*model.Comment, error)
}

type File interface {
	Upload(ctx context.Context, file baas.InputFile) (*model.StoredFile, error)
	Delete(ctx context.Context, id string) error
	PreviewURL(id string) string
}

type Service struct {
	Auth     Auth
	Post     Post
	Category Category
	Comment  Comment
	File     File
}

func New(logger *zap.Logger, client *baas.Client, cfg config.BaaSConfig, state *store.Store) *Service {
	file := newFileService(logger, client.Storage, cfg)
	category := newCategoryService(logger, client.Databases, cfg)

	return &Service{
		Auth:     newAuthService(logger, client.Account, state),
		Post:     newPostService(logger, client.Databases, cfg, file, category),
		Category: category,
		Comment:  newCommentService(logger, client.Databases, cfg),
		File:     file,
	}
}

// LoadHome fetches published posts and the categories in parallel.
func (s *Service) LoadHome(ctx context.Context) (*model.Home, error) {
	var home model.Home

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		posts, err := s.Post.Find(gctx, baas.Equal("status", string(model.PostStatusActive)), baas.OrderDesc("$createdAt"))
		if err != nil {
			return err
		}
		home.Posts = posts
		return nil
	})
	g.Go(func() error {
		categories, err := s.Category.FindAll(gctx)
		if err != nil {
			return err
		}
		home.Categories = categories
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &home, nil
}

// LoadCategory returns the category at slug with its posts.
func (s *Service) LoadCategory(ctx context.Context, slug string) (*model.CategoryPosts, error) {
	category, err := s.Category.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	posts, err := s.Post.FindByCategory(ctx, category.ID)
	if err != nil {
		return nil, err
	}

	return &model.CategoryPosts{Category: category, Posts: posts}, nil
}
