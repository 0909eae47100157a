package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
)

// Document store backends
const (
	DocumentStorePostgres = "postgres"
	DocumentStoreSQLite   = "sqlite"
	DocumentStoreDisk     = "disk"
)

// Blob store backends
const (
	BlobStoreMinio = "minio"
	BlobStoreDisk  = "disk"
)

type Config struct {
	Port          string
	Environment   string
	PublicBaseURL string // Base URL clients use to reach this server (disk blob URLs)
	CORSOrigins   string
	TablePrefix   string

	// Supabase (authentication + optional postgres)
	SupabaseURL     string
	SupabaseKey     string // Service role key, seed only
	SupabaseAnonKey string // Public key for password sign-in
	SupabaseDBURL   string
	SupabaseJWKSURL string // Constructed from SupabaseURL + /auth/v1/.well-known/jwks.json
	DevUserID       string // Dev only: skip JWT verification and act as this user

	// Document store
	DocumentStore string
	SQLitePath    string
	DataDir       string

	// Blob store
	BlobStore          string
	MinioEndpoint      string
	MinioAccessKey     string
	MinioSecretKey     string
	MinioUseSSL        bool
	MinioBucket        string
	MinioPublicBaseURL string

	// Editor sessions of the HTTP API
	EditorSessionTTL  time.Duration // Idle sessions older than this are closed
	EditorMaxSessions int           // Per user; opening one more closes the least recently used

	// Logging
	LogDir      string
	LogMaxFiles int

	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	tablePrefix := getTablePrefix(env)
	supabaseURL := strings.TrimRight(getEnv("SUPABASE_URL", ""), "/")
	port := getEnv("PORT", "8080")
	dataDir := getPath("DATA_DIR", "./data")

	// Construct JWKS URL from Supabase URL
	jwksURL := ""
	if supabaseURL != "" {
		jwksURL = supabaseURL + "/auth/v1/.well-known/jwks.json"
	}

	return &Config{
		Port:            port,
		Environment:     env,
		PublicBaseURL:   strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:"+port), "/"),
		CORSOrigins:     getEnv("CORS_ORIGINS", "http://localhost:8081"),
		TablePrefix:     tablePrefix,
		SupabaseURL:     supabaseURL,
		SupabaseKey:     getEnv("SUPABASE_KEY", ""),
		SupabaseAnonKey: getEnv("SUPABASE_ANON_KEY", ""),
		SupabaseDBURL:   getEnv("SUPABASE_DB_URL", ""),
		SupabaseJWKSURL: jwksURL,
		DevUserID:       getEnv("DEV_USER_ID", ""),

		DocumentStore: strings.ToLower(getEnv("DOCUMENT_STORE", DocumentStoreSQLite)),
		SQLitePath:    getPath("SQLITE_PATH", dataDir+"/journal.db"),
		DataDir:       dataDir,

		BlobStore:          strings.ToLower(getEnv("BLOB_STORE", BlobStoreDisk)),
		MinioEndpoint:      getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey:     getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey:     getEnv("MINIO_SECRET_KEY", ""),
		MinioUseSSL:        getEnv("MINIO_USE_SSL", "false") == "true",
		MinioBucket:        getEnv("MINIO_BUCKET", "images"),
		MinioPublicBaseURL: strings.TrimRight(getEnv("MINIO_PUBLIC_BASE_URL", ""), "/"),

		EditorSessionTTL:  getDuration("EDITOR_SESSION_TTL", 30*time.Minute),
		EditorMaxSessions: getInt("EDITOR_MAX_SESSIONS", 8),

		LogDir:      getPath("LOG_DIR", ""),
		LogMaxFiles: getInt("LOG_MAX_FILES", 10),

		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// Validate reports settings the selected backends cannot run without.
func (c *Config) Validate() error {
	var errs []error

	switch c.DocumentStore {
	case DocumentStorePostgres:
		if c.SupabaseDBURL == "" {
			errs = append(errs, errors.New("SUPABASE_DB_URL is required for the postgres document store"))
		}
	case DocumentStoreSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required for the sqlite document store"))
		}
	case DocumentStoreDisk:
		if c.DataDir == "" {
			errs = append(errs, errors.New("DATA_DIR is required for the disk document store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DOCUMENT_STORE %q", c.DocumentStore))
	}

	switch c.BlobStore {
	case BlobStoreMinio:
		if c.MinioEndpoint == "" || c.MinioAccessKey == "" || c.MinioSecretKey == "" {
			errs = append(errs, errors.New("MINIO_ENDPOINT, MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required for the minio blob store"))
		}
		if c.MinioPublicBaseURL == "" {
			errs = append(errs, errors.New("MINIO_PUBLIC_BASE_URL is required for the minio blob store: stored image URLs must not expire"))
		}
	case BlobStoreDisk:
		if c.DataDir == "" {
			errs = append(errs, errors.New("DATA_DIR is required for the disk blob store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown BLOB_STORE %q", c.BlobStore))
	}

	if c.EditorSessionTTL <= 0 || c.EditorMaxSessions <= 0 {
		errs = append(errs, errors.New("EDITOR_SESSION_TTL and EDITOR_MAX_SESSIONS must be positive"))
	}

	if c.DevUserID != "" && c.Environment == "prod" {
		errs = append(errs, errors.New("DEV_USER_ID must not be set in production"))
	}

	return errors.Join(errs...)
}

// AuthBypassed reports whether requests act as DevUserID without a token.
func (c *Config) AuthBypassed() bool {
	return c.DevUserID != "" && c.Environment != "prod"
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getPath reads a filesystem path; a leading ~ is expanded to the home directory
func getPath(key, defaultValue string) string {
	p := getEnv(key, defaultValue)
	if expanded, err := homedir.Expand(p); err == nil {
		return expanded
	}
	return p
}

func getInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return defaultValue
}
