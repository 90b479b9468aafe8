package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaaSEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APPWRITE_URL", "https://cloud.example.com/v1/")
	t.Setenv("APPWRITE_PROJECT_ID", "blog")
	t.Setenv("APPWRITE_DATABASE_ID", "main")
	t.Setenv("APPWRITE_COLLECTION_ID", "posts")
	t.Setenv("APPWRITE_BUCKET_ID", "images")
}

func TestLoad_FromEnvironment(t *testing.T) {
	setBaaSEnv(t)

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://cloud.example.com/v1", cfg.BaaS.Endpoint)
	assert.Equal(t, "blog", cfg.BaaS.ProjectID)
	assert.Equal(t, "main", cfg.BaaS.DatabaseID)
	assert.Equal(t, "posts", cfg.BaaS.PostCollectionID)
	assert.Equal(t, "images", cfg.BaaS.BucketID)
	assert.Equal(t, "comments", cfg.BaaS.CommentCollectionID)
	assert.Equal(t, DriverAppwrite, cfg.App.Driver)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 720*time.Hour, cfg.Session.TTL)
}

func TestLoad_CategoryCollectionFallsBackToPosts(t *testing.T) {
	setBaaSEnv(t)

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "posts", cfg.BaaS.CategoryCollectionID)

	t.Setenv("APPWRITE_CATEGORY_COLLECTION_ID", "categories")
	cfg, err = Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "categories", cfg.BaaS.CategoryCollectionID)
}

func TestLoad_YAMLWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	yaml := `
app:
  port: "9090"
  driver: memory
baas:
  endpoint: http://localhost:9090/v1
  project_id: local
  database_id: db
  post_collection_id: posts
  bucket_id: files
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.yaml"), []byte(yaml), 0o600))
	t.Setenv("APPWRITE_PROJECT_ID", "from-env")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, DriverMemory, cfg.App.Driver)
	assert.Equal(t, "from-env", cfg.BaaS.ProjectID)
	assert.Equal(t, "files", cfg.BaaS.BucketID)
}

func TestLoad_MissingSettings(t *testing.T) {
	t.Setenv("APPWRITE_URL", "https://cloud.example.com/v1")

	_, err := Load(t.TempDir())
	require.ErrorIs(t, err, ErrMissingSetting)
	assert.Contains(t, err.Error(), "APPWRITE_PROJECT_ID")
	assert.Contains(t, err.Error(), "APPWRITE_BUCKET_ID")
}

func TestLoad_SelfHostNeedsSessionSecret(t *testing.T) {
	setBaaSEnv(t)
	t.Setenv("BACKEND_DRIVER", "selfhost")
	t.Setenv("POSTGRES_HOST", "localhost")
	t.Setenv("POSTGRES_DATABASE", "blog")

	_, err := Load(t.TempDir())
	require.ErrorIs(t, err, ErrMissingSetting)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestLoad_UnknownDriver(t *testing.T) {
	setBaaSEnv(t)
	t.Setenv("BACKEND_DRIVER", "firebase")

	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "firebase")
}

func TestDBConfig_URL(t *testing.T) {
	c := DBConfig{Username: "u", Password: "p", Host: "h", Port: "5432", DBName: "blog", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/blog?sslmode=disable", c.URL())
}
