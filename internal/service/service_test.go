package service

import (
	"context"
	"testing"

	"github.com/BloggingApp/blog-client/internal/baas/memory"
	"github.com/BloggingApp/blog-client/internal/config"
	"github.com/BloggingApp/blog-client/internal/dto"
	"github.com/BloggingApp/blog-client/internal/model"
	"github.com/BloggingApp/blog-client/internal/store"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testEmail    = "user@example.com"
	testPassword = "Secret123!"
)

var testConfig = config.BaaSConfig{
	Endpoint:             "http://localhost:8080/v1",
	ProjectID:            "blog",
	DatabaseID:           "main",
	PostCollectionID:     "posts",
	CategoryCollectionID: "categories",
	CommentCollectionID:  "comments",
	BucketID:             "images",
}

type testEnv struct {
	backend *memory.Backend
	state   *store.Store
	svc     *Service
}

func setupServiceTest(t *testing.T) *testEnv {
	t.Helper()

	backend := memory.New(testConfig.Endpoint, testConfig.ProjectID)
	state := store.New()
	svc := New(zap.NewNop(), backend.Client(), testConfig, state)

	return &testEnv{backend: backend, state: state, svc: svc}
}

// seedAccount registers an account through a separate client so the
// service's own session stays untouched.
func (e *testEnv) seedAccount(t *testing.T, email, password, name string) {
	t.Helper()
	_, err := e.backend.Client().Account.Create(context.Background(), "", email, password, name)
	require.NoError(t, err)
}

// signIn seeds the default account and logs the service in with it.
func (e *testEnv) signIn(t *testing.T) *model.Identity {
	t.Helper()
	e.seedAccount(t, testEmail, testPassword, "User")
	_, err := e.svc.Auth.Login(context.Background(), dto.LoginForm{Email: testEmail, Password: testPassword})
	require.NoError(t, err)
	return e.state.State().Identity
}

func strPtr(s string) *string {
	return &s
}
