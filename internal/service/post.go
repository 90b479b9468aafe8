package service

import (
	"context"
	"errors"

	"github.com/BloggingApp/blog-client/internal/baas"
	"github.com/BloggingApp/blog-client/internal/config"
	"github.com/BloggingApp/blog-client/internal/dto"
	"github.com/BloggingApp/blog-client/internal/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type postService struct {
	logger       *zap.Logger
	db           baas.Databases
	databaseID   string
	collectionID string
	files        *fileService
	categories   *categoryService
}

func newPostService(logger *zap.Logger, db baas.Databases, cfg config.BaaSConfig, files *fileService, categories *categoryService) Post {
	return &postService{
		logger:       logger,
		db:           db,
		databaseID:   cfg.DatabaseID,
		collectionID: cfg.PostCollectionID,
		files:        files,
		categories:   categories,
	}
}

func (s *postService) Create(ctx context.Context, fields model.PostFields) (*model.Post, error) {
	if err := s.checkSlug(ctx, fields.Slug, ""); err != nil {
		return nil, s.slugError(err, ErrCreate, "create post")
	}

	doc, err := s.db.CreateDocument(ctx, s.databaseID, s.collectionID, baas.IDUnique, postData(fields))
	if err != nil {
		s.logger.Sugar().Errorf("failed to create post(%s): %s", fields.Slug, err.Error())
		return nil, wrap(ErrCreate, "create post", err)
	}

	return toPost(doc), nil
}

// Update overwrites every attribute of the post with fields. Callers that
// start from a partial edit build fields with Merge.
func (s *postService) Update(ctx context.Context, id string, fields model.PostFields) (*model.Post, error) {
	if err := s.checkSlug(ctx, fields.Slug, id); err != nil {
		return nil, s.slugError(err, ErrUpdate, "update post")
	}

	doc, err := s.db.UpdateDocument(ctx, s.databaseID, s.collectionID, id, postData(fields))
	if err != nil {
		s.logger.Sugar().Errorf("failed to update post(%s): %s", id, err.Error())
		return nil, wrap(ErrUpdate, "update post", err)
	}

	return toPost(doc), nil
}

// Delete reports false without an error when no post has the id.
func (s *postService) Delete(ctx context.Context, id string) (bool, error) {
	if err := s.db.DeleteDocument(ctx, s.databaseID, s.collectionID, id); err != nil {
		if baas.IsNotFound(err) {
			return false, nil
		}
		s.logger.Sugar().Errorf("failed to delete post(%s): %s", id, err.Error())
		return false, wrap(ErrDelete, "delete post", err)
	}

	return true, nil
}

// FindBySlug returns the first post the backend lists for slug.
func (s *postService) FindBySlug(ctx context.Context, slug string) (*model.Post, error) {
	list, err := s.db.ListDocuments(ctx, s.databaseID, s.collectionID, baas.Equal("slug", slug))
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%s): %s", slug, err.Error())
		return nil, wrap(ErrFetch, "get post", err)
	}
	if len(list.Documents) == 0 {
		return nil, newError(ErrNotFound, "post not found")
	}
	if len(list.Documents) > 1 {
		s.logger.Sugar().Warnf("slug(%s) is shared by %d posts", slug, len(list.Documents))
	}

	return toPost(list.Documents[0]), nil
}

func (s *postService) Find(ctx context.Context, queries ...baas.Query) (*model.PostList, error) {
	return s.list(ctx, "get posts", queries...)
}

func (s *postService) FindByCategory(ctx context.Context, categoryID string) (*model.PostList, error) {
	return s.list(ctx, "get posts by category", baas.Equal("categoryId", categoryID))
}

func (s *postService) FindByUser(ctx context.Context, userID string) (*model.PostList, error) {
	return s.list(ctx, "get user posts", baas.Equal("userId", userID), baas.OrderDesc("$createdAt"))
}

func (s *postService) Search(ctx context.Context, term string) (*model.PostList, error) {
	return s.list(ctx, "search posts", baas.Search("title", term), baas.Equal("status", string(model.PostStatusActive)))
}

func (s *postService) list(ctx context.Context, op string, queries ...baas.Query) (*model.PostList, error) {
	list, err := s.db.ListDocuments(ctx, s.databaseID, s.collectionID, queries...)
	if err != nil {
		s.logger.Sugar().Errorf("failed to %s: %s", op, err.Error())
		return nil, wrap(ErrFetch, op, err)
	}

	posts := make([]*model.Post, 0, len(list.Documents))
	for _, doc := range list.Documents {
		posts = append(posts, toPost(doc))
	}

	return &model.PostList{Total: list.Total, Posts: posts}, nil
}

// Publish uploads the optional featured image and creates the post. The
// upload is not undone when the create fails.
func (s *postService) Publish(ctx context.Context, author *model.Identity, form dto.CreatePostForm, image *baas.InputFile) (*model.Post, error) {
	slug := form.Slug
	if slug == "" {
		slug = form.Title
	}
	slug = dto.Slugify(slug)
	if slug == "" {
		return nil, newError(ErrCreate, "failed to create post: title yields an empty slug")
	}

	fields := model.PostFields{
		Title:      form.Title,
		Slug:       slug,
		Content:    form.Content,
		Status:     form.Status,
		UserID:     author.ID,
		CategoryID: form.CategoryID,
	}

	// Reject a taken slug before anything is uploaded.
	if err := s.checkSlug(ctx, slug, ""); err != nil {
		return nil, s.slugError(err, ErrCreate, "create post")
	}

	var uploaded *model.StoredFile
	if image != nil {
		var err error
		uploaded, err = s.files.Upload(ctx, *image)
		if err != nil {
			return nil, err
		}
		fields.FeaturedImage = &uploaded.ID
	}

	post, err := s.Create(ctx, fields)
	if err != nil {
		if uploaded != nil {
			s.logger.Sugar().Warnf("orphaned file(%s): post(%s) was not created: %s", uploaded.ID, slug, err.Error())
		}
		return nil, err
	}

	return post, nil
}

// Edit applies form to the post at slug. A new image replaces the old one,
// which is deleted only after the post points at the new file.
func (s *postService) Edit(ctx context.Context, editor *model.Identity, slug string, form dto.EditPostForm, image *baas.InputFile) (*model.Post, error) {
	post, err := s.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post.UserID != editor.ID {
		return nil, newError(ErrForbidden, "only the author can edit this post")
	}

	fields := Merge(post, form)
	if fields.Slug == "" {
		return nil, newError(ErrUpdate, "failed to update post: slug is empty")
	}

	// Reject a taken slug before anything is uploaded.
	if err := s.checkSlug(ctx, fields.Slug, post.ID); err != nil {
		return nil, s.slugError(err, ErrUpdate, "update post")
	}

	oldImage := post.FeaturedImage
	var uploaded *model.StoredFile
	if image != nil {
		uploaded, err = s.files.Upload(ctx, *image)
		if err != nil {
			return nil, err
		}
		fields.FeaturedImage = &uploaded.ID
	}

	updated, err := s.Update(ctx, post.ID, fields)
	if err != nil {
		if uploaded != nil {
			s.logger.Sugar().Warnf("orphaned file(%s): post(%s) was not updated: %s", uploaded.ID, post.ID, err.Error())
		}
		return nil, err
	}

	if uploaded != nil && oldImage != nil {
		if err := s.files.Delete(ctx, *oldImage); err != nil {
			s.logger.Sugar().Warnf("orphaned file(%s): replaced on post(%s) but not deleted: %s", *oldImage, post.ID, err.Error())
		}
	}

	return updated, nil
}

// Remove deletes the post at slug and then its featured image.
func (s *postService) Remove(ctx context.Context, editor *model.Identity, slug string) error {
	post, err := s.FindBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if post.UserID != editor.ID {
		return newError(ErrForbidden, "only the author can delete this post")
	}

	deleted, err := s.Delete(ctx, post.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return newError(ErrNotFound, "post not found")
	}

	if post.FeaturedImage != nil {
		if err := s.files.Delete(ctx, *post.FeaturedImage); err != nil {
			s.logger.Sugar().Warnf("orphaned file(%s): post(%s) was deleted: %s", *post.FeaturedImage, post.ID, err.Error())
		}
	}

	return nil
}

// LoadForEdit fetches the post and the category list in parallel. Either
// failure fails the whole load.
func (s *postService) LoadForEdit(ctx context.Context, slug string) (*model.PostEditView, error) {
	var view model.PostEditView

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		post, err := s.FindBySlug(gctx, slug)
		if err != nil {
			return err
		}
		view.Post = post
		return nil
	})
	g.Go(func() error {
		categories, err := s.categories.FindAll(gctx)
		if err != nil {
			return err
		}
		view.Categories = categories
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &view, nil
}

// Merge builds the full write payload for an edit: existing values with the
// edited fields applied on top.
func Merge(existing *model.Post, form dto.EditPostForm) model.PostFields {
	fields := existing.Fields()

	if form.Title != nil {
		fields.Title = *form.Title
	}
	if form.Slug != nil {
		fields.Slug = dto.Slugify(*form.Slug)
	}
	if form.Content != nil {
		fields.Content = *form.Content
	}
	if form.Status != nil {
		fields.Status = *form.Status
	}
	switch {
	case form.ClearCategory:
		fields.CategoryID = nil
	case form.CategoryID != nil:
		categoryID := *form.CategoryID
		fields.CategoryID = &categoryID
	}

	return fields
}

var errSlugTaken = errors.New("slug taken")

// checkSlug fails with errSlugTaken when a post other than exceptID uses slug.
func (s *postService) checkSlug(ctx context.Context, slug, exceptID string) error {
	list, err := s.db.ListDocuments(ctx, s.databaseID, s.collectionID, baas.Equal("slug", slug))
	if err != nil {
		return err
	}

	for _, doc := range list.Documents {
		if doc.ID != exceptID {
			return errSlugTaken
		}
	}

	return nil
}

func (s *postService) slugError(err error, kind error, op string) error {
	if errors.Is(err, errSlugTaken) {
		return newError(ErrDuplicateSlug, "failed to "+op+": slug already in use")
	}

	s.logger.Sugar().Errorf("failed to check slug before %s: %s", op, err.Error())
	return wrap(kind, op, err)
}

func postData(fields model.PostFields) map[string]any {
	return map[string]any{
		"title":         fields.Title,
		"slug":          fields.Slug,
		"content":       fields.Content,
		"featuredImage": optional(fields.FeaturedImage),
		"status":        string(fields.Status),
		"userId":        fields.UserID,
		"categoryId":    optional(fields.CategoryID),
	}
}

func optional(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func toPost(doc *baas.Document) *model.Post {
	return &model.Post{
		ID:            doc.ID,
		Title:         doc.String("title"),
		Slug:          doc.String("slug"),
		Content:       doc.String("content"),
		FeaturedImage: doc.OptionalString("featuredImage"),
		Status:        model.PostStatus(doc.String("status")),
		UserID:        doc.String("userId"),
		CategoryID:    doc.OptionalString("categoryId"),
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}
