package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BloggingApp/blog-client/internal/baas"
	"github.com/BloggingApp/blog-client/internal/baas/memory"
	"github.com/BloggingApp/blog-client/internal/dto"
	"github.com/BloggingApp/blog-client/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_DeleteTwice(t *testing.T) {
	ctx := context.Background()
	env := setupServiceTest(t)

	file, err := env.svc.File.Upload(ctx, *testImage("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, int64(len("png-bytes")), file.Size)
	assert.Equal(t, "image/png", file.MimeType)

	require.NoError(t, env.svc.File.Delete(ctx, file.ID))
	require.NoError(t, env.svc.File.Delete(ctx, file.ID))
	assert.Equal(t, 0, env.backend.FileCount(testConfig.BucketID))
}

func TestFile_DeleteBackendFailure(t *testing.T) {
	env := setupServiceTest(t)
	env.backend.Fail(memory.OpFileDelete, errors.New("backend unreachable"))

	err := env.svc.File.Delete(context.Background(), "f1")
	assert.ErrorIs(t, err, ErrDelete)
	assert.Equal(t, "failed to delete file: backend unreachable", err.Error())
}

func TestFile_PreviewURL(t *testing.T) {
	env := setupServiceTest(t)
	// Deriving the URL never reaches the backend.
	env.backend.Fail(memory.OpFileCreate, errors.New("backend unreachable"))

	assert.Equal(t,
		"http://localhost:8080/v1/storage/buckets/images/files/f1/preview?project=blog",
		env.svc.File.PreviewURL("f1"))
}

func TestCategory_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	env := setupServiceTest(t)

	created, err := env.svc.Category.Create(ctx, dto.CreateCategoryForm{Name: "Home Cooking", Description: "Recipes"})
	require.NoError(t, err)
	assert.Equal(t, "home-cooking", created.Slug)

	found, err := env.svc.Category.FindBySlug(ctx, "home-cooking")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Recipes", found.Description)

	_, err = env.svc.Category.Create(ctx, dto.CreateCategoryForm{Name: "Other", Slug: "Home Cooking"})
	assert.ErrorIs(t, err, ErrDuplicateSlug)

	_, err = env.svc.Category.FindBySlug(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.svc.Category.Create(ctx, dto.CreateCategoryForm{Name: "!!!"})
	assert.ErrorIs(t, err, ErrCreate)
}

func TestCategory_SeedDefaultsCreatesOnlyMissing(t *testing.T) {
	ctx := context.Background()
	env := setupServiceTest(t)

	_, err := env.svc.Category.Create(ctx, dto.CreateCategoryForm{Name: "Tech"})
	require.NoError(t, err)

	created, err := env.svc.Category.SeedDefaults(ctx)
	require.NoError(t, err)
	require.Len(t, created, len(DefaultCategories)-1)
	for _, c := range created {
		assert.NotEqual(t, "tech", c.Slug)
	}

	all, err := env.svc.Category.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(DefaultCategories))

	created, err = env.svc.Category.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Empty(t, created)
}

func TestCategory_SeedDefaultsFailure(t *testing.T) {
	env := setupServiceTest(t)
	env.backend.Fail(memory.OpDocumentCreate, errors.New("backend unreachable"))

	_, err := env.svc.Category.SeedDefaults(context.Background())
	assert.ErrorIs(t, err, ErrCreate)
}

func TestComment_CreateAndList(t *testing.T) {
	ctx := context.Background()
	env := setupServiceTest(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	env.backend.SetClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	})

	author := &model.Identity{ID: "u1", Name: "User"}
	for _, content := range []string{"first", "second"} {
		_, err := env.svc.Comment.Create(ctx, author, "p1", dto.CommentForm{Content: content})
		require.NoError(t, err)
	}
	_, err := env.svc.Comment.Create(ctx, author, "p2", dto.CommentForm{Content: "elsewhere"})
	require.NoError(t, err)

	comments, err := env.svc.Comment.FindByPost(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "second", comments[1].Content)
	assert.Equal(t, "User", comments[0].UserName)
	assert.Equal(t, "u1", comments[0].UserID)
}

func TestService_LoadHome(t *testing.T) {
	ctx := context.Background()
	env := setupServiceTest(t)

	draft := testFields("draft")
	draft.Status = model.PostStatusInactive
	for _, f := range []model.PostFields{testFields("hello-world"), draft} {
		_, err := env.svc.Post.Create(ctx, f)
		require.NoError(t, err)
	}
	_, err := env.svc.Category.SeedDefaults(ctx)
	require.NoError(t, err)

	home, err := env.svc.LoadHome(ctx)
	require.NoError(t, err)
	require.Len(t, home.Posts.Posts, 1)
	assert.Equal(t, "hello-world", home.Posts.Posts[0].Slug)
	assert.Len(t, home.Categories, len(DefaultCategories))

	env.backend.Fail(memory.OpDocumentList, errors.New("backend unreachable"))
	home, err = env.svc.LoadHome(ctx)
	assert.ErrorIs(t, err, ErrFetch)
	assert.Nil(t, home)
}

func TestService_LoadCategory(t *testing.T) {
	ctx := context.Background()
	env := setupServiceTest(t)

	category, err := env.svc.Category.Create(ctx, dto.CreateCategoryForm{Name: "Tech"})
	require.NoError(t, err)

	fields := testFields("hello-world")
	fields.CategoryID = &category.ID
	_, err = env.svc.Post.Create(ctx, fields)
	require.NoError(t, err)
	_, err = env.svc.Post.Create(ctx, testFields("uncategorized"))
	require.NoError(t, err)

	view, err := env.svc.LoadCategory(ctx, "tech")
	require.NoError(t, err)
	assert.Equal(t, category.ID, view.Category.ID)
	require.Len(t, view.Posts.Posts, 1)
	assert.Equal(t, "hello-world", view.Posts.Posts[0].Slug)

	_, err = env.svc.LoadCategory(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestError_Unwrap(t *testing.T) {
	cause := baas.NewError(404, baas.TypeDocumentNotFound, "Document with the requested ID could not be found.")
	err := wrap(ErrUpdate, "update post", cause)

	assert.ErrorIs(t, err, ErrUpdate)
	assert.ErrorIs(t, err, cause)
	assert.True(t, baas.IsNotFound(err))
	assert.Equal(t, "failed to update post: Document with the requested ID could not be found.", err.Error())

	plain := newError(ErrNotFound, "post not found")
	assert.ErrorIs(t, plain, ErrNotFound)
	assert.Equal(t, []error{ErrNotFound}, plain.Unwrap())
}
