package service

import (
	"context"

	"github.com/BloggingApp/blog-client/internal/baas"
	"github.com/BloggingApp/blog-client/internal/config"
	"github.com/BloggingApp/blog-client/internal/dto"
	"github.com/BloggingApp/blog-client/internal/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultCategories are created by SeedDefaults when missing.
var DefaultCategories = []dto.CreateCategoryForm{
	{Name: "Tech", Slug: "tech", Description: "Technology related posts"},
	{Name: "Smut", Slug: "smut", Description: "Adult content posts"},
	{Name: "Lifestyle", Slug: "lifestyle", Description: "Lifestyle and personal development"},
	{Name: "Travel", Slug: "travel", Description: "Travel experiences and guides"},
	{Name: "Food", Slug: "food", Description: "Food recipes and reviews"},
}

type categoryService struct {
	logger       *zap.Logger
	db           baas.Databases
	databaseID   string
	collectionID string
}

func newCategoryService(logger *zap.Logger, db baas.Databases, cfg config.BaaSConfig) *categoryService {
	return &categoryService{
		logger:       logger,
		db:           db,
		databaseID:   cfg.DatabaseID,
		collectionID: cfg.CategoryCollectionID,
	}
}

func (s *categoryService) FindAll(ctx context.Context) ([]*model.Category, error) {
	list, err := s.db.ListDocuments(ctx, s.databaseID, s.collectionID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to list categories: %s", err.Error())
		return nil, wrap(ErrFetch, "get categories", err)
	}

	categories := make([]*model.Category, 0, len(list.Documents))
	for _, doc := range list.Documents {
		categories = append(categories, toCategory(doc))
	}

	return categories, nil
}

func (s *categoryService) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	list, err := s.db.ListDocuments(ctx, s.databaseID, s.collectionID, baas.Equal("slug", slug))
	if err != nil {
		s.logger.Sugar().Errorf("failed to find category(%s): %s", slug, err.Error())
		return nil, wrap(ErrFetch, "get category", err)
	}
	if len(list.Documents) == 0 {
		return nil, newError(ErrNotFound, "category not found")
	}

	return toCategory(list.Documents[0]), nil
}

func (s *categoryService) Create(ctx context.Context, form dto.CreateCategoryForm) (*model.Category, error) {
	slug := form.Slug
	if slug == "" {
		slug = form.Name
	}
	slug = dto.CategorySlug(slug)
	if slug == "" {
		return nil, newError(ErrCreate, "failed to create category: name yields an empty slug")
	}

	existing, err := s.db.ListDocuments(ctx, s.databaseID, s.collectionID, baas.Equal("slug", slug), baas.Limit(1))
	if err != nil {
		s.logger.Sugar().Errorf("failed to check category slug(%s): %s", slug, err.Error())
		return nil, wrap(ErrCreate, "create category", err)
	}
	if len(existing.Documents) > 0 {
		return nil, newError(ErrDuplicateSlug, "category slug already in use: "+slug)
	}

	doc, err := s.db.CreateDocument(ctx, s.databaseID, s.collectionID, baas.IDUnique, map[string]any{
		"name":        form.Name,
		"slug":        slug,
		"description": form.Description,
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to create category(%s): %s", slug, err.Error())
		return nil, wrap(ErrCreate, "create category", err)
	}

	return toCategory(doc), nil
}

// SeedDefaults creates the default categories that do not exist yet and
// returns them. Nothing is created when all of them exist.
func (s *categoryService) SeedDefaults(ctx context.Context) ([]*model.Category, error) {
	existing, err := s.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	present := make(map[string]bool, len(existing))
	for _, c := range existing {
		present[c.Slug] = true
	}

	var missing []dto.CreateCategoryForm
	for _, form := range DefaultCategories {
		if !present[form.Slug] {
			missing = append(missing, form)
		}
	}

	created := make([]*model.Category, len(missing))
	g, gctx := errgroup.WithContext(ctx)
	for i, form := range missing {
		g.Go(func() error {
			category, err := s.Create(gctx, form)
			if err != nil {
				return err
			}
			created[i] = category
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return created, nil
}

func toCategory(doc *baas.Document) *model.Category {
	return &model.Category{
		ID:          doc.ID,
		Name:        doc.String("name"),
		Slug:        doc.String("slug"),
		Description: doc.String("description"),
		CreatedAt:   doc.CreatedAt,
	}
}
