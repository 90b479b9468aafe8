package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverAppwrite = "appwrite"
	DriverSelfHost = "selfhost"
	DriverMemory   = "memory"
)

var ErrMissingSetting = errors.New("missing required setting")

type Config struct {
	App     AppConfig
	BaaS    BaaSConfig
	Server  ServerConfig
	DB      DBConfig
	Redis   RedisConfig
	Session SessionConfig
}

type AppConfig struct {
	Env    string
	Driver string
}

// BaaSConfig holds the connection parameters every backend call is scoped by.
type BaaSConfig struct {
	Endpoint             string
	ProjectID            string
	DatabaseID           string
	PostCollectionID     string
	CategoryCollectionID string
	CommentCollectionID  string
	BucketID             string
}

type ServerConfig struct {
	Port           string
	ClientOrigin   string
	Handler        http.Handler
	MaxHeaderBytes int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

type DBConfig struct {
	Username string
	Password string
	Host     string
	Port     string
	DBName   string
	SSLMode  string
}

func (c DBConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", c.Username, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

var envBindings = map[string]string{
	"app.env":                     "APP_ENV",
	"app.driver":                  "BACKEND_DRIVER",
	"app.port":                    "APP_PORT",
	"client.origin":               "CLIENT_ORIGIN",
	"baas.endpoint":               "APPWRITE_URL",
	"baas.project_id":             "APPWRITE_PROJECT_ID",
	"baas.database_id":            "APPWRITE_DATABASE_ID",
	"baas.post_collection_id":     "APPWRITE_COLLECTION_ID",
	"baas.category_collection_id": "APPWRITE_CATEGORY_COLLECTION_ID",
	"baas.comment_collection_id":  "APPWRITE_COMMENT_COLLECTION_ID",
	"baas.bucket_id":              "APPWRITE_BUCKET_ID",
	"postgres.user":               "POSTGRES_USER",
	"postgres.password":           "POSTGRES_PASSWORD",
	"postgres.host":               "POSTGRES_HOST",
	"postgres.port":               "POSTGRES_PORT",
	"postgres.database":           "POSTGRES_DATABASE",
	"postgres.sslmode":            "POSTGRES_SSLMODE",
	"redis.addr":                  "REDIS_ADDR",
	"redis.password":              "REDIS_PASSWORD",
	"redis.db":                    "REDIS_DB",
	"session.secret":              "SESSION_SECRET",
	"session.ttl":                 "SESSION_TTL",
}

// Load reads dir/.env and dir/app.yaml when present, then lets environment
// variables override every key.
func Load(dir string) (*Config, error) {
	if err := godotenv.Load(strings.TrimSuffix(dir, "/") + "/.env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigType("yaml")
	v.SetConfigName("app")

	v.SetDefault("app.env", "production")
	v.SetDefault("app.driver", DriverAppwrite)
	v.SetDefault("app.port", "8080")
	v.SetDefault("client.origin", "http://localhost:5173")
	v.SetDefault("baas.comment_collection_id", "comments")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("session.ttl", "720h")

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to initialize yaml config: %w", err)
		}
	}

	cfg := &Config{
		App: AppConfig{
			Env:    v.GetString("app.env"),
			Driver: strings.ToLower(v.GetString("app.driver")),
		},
		BaaS: BaaSConfig{
			Endpoint:             strings.TrimSuffix(v.GetString("baas.endpoint"), "/"),
			ProjectID:            v.GetString("baas.project_id"),
			DatabaseID:           v.GetString("baas.database_id"),
			PostCollectionID:     v.GetString("baas.post_collection_id"),
			CategoryCollectionID: v.GetString("baas.category_collection_id"),
			CommentCollectionID:  v.GetString("baas.comment_collection_id"),
			BucketID:             v.GetString("baas.bucket_id"),
		},
		Server: ServerConfig{
			Port:           v.GetString("app.port"),
			ClientOrigin:   v.GetString("client.origin"),
			MaxHeaderBytes: 1 << 20,
			ReadTimeout:    time.Second * 10,
			WriteTimeout:   time.Second * 10,
		},
		DB: DBConfig{
			Username: v.GetString("postgres.user"),
			Password: v.GetString("postgres.password"),
			Host:     v.GetString("postgres.host"),
			Port:     v.GetString("postgres.port"),
			DBName:   v.GetString("postgres.database"),
			SSLMode:  v.GetString("postgres.sslmode"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Session: SessionConfig{
			Secret: v.GetString("session.secret"),
			TTL:    v.GetDuration("session.ttl"),
		},
	}

	// Categories share the post collection unless configured separately.
	if cfg.BaaS.CategoryCollectionID == "" {
		cfg.BaaS.CategoryCollectionID = cfg.BaaS.PostCollectionID
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	required := map[string]string{
		"APPWRITE_URL":           c.BaaS.Endpoint,
		"APPWRITE_PROJECT_ID":    c.BaaS.ProjectID,
		"APPWRITE_DATABASE_ID":   c.BaaS.DatabaseID,
		"APPWRITE_COLLECTION_ID": c.BaaS.PostCollectionID,
		"APPWRITE_BUCKET_ID":     c.BaaS.BucketID,
	}

	switch c.App.Driver {
	case DriverAppwrite, DriverMemory:
	case DriverSelfHost:
		required["SESSION_SECRET"] = c.Session.Secret
		required["POSTGRES_HOST"] = c.DB.Host
		required["POSTGRES_DATABASE"] = c.DB.DBName
	default:
		return fmt.Errorf("unknown backend driver %q", c.App.Driver)
	}

	var missing []string
	for name, value := range required {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("%w: %s", ErrMissingSetting, strings.Join(missing, ", "))
	}

	return nil
}
