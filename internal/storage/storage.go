// Package storage persists engine state as opaque blobs. The engine never
// touches a backend directly; hosts pick one through Open and hand the Store
// to whatever owns serialization.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// ErrNotFound is wrapped by Load and Delete when the key does not exist.
var ErrNotFound = errors.New("key not found")

// Store is a flat key/value blob store. Keys are slash-separated paths
// ("quizzes/<id>"); values are opaque, typically JSON.
type Store interface {
	Save(ctx context.Context, key string, value []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
}

// Backend selects a Store implementation.
type Backend string

const (
	// BackendLocal stores blobs in a SQLite database file.
	BackendLocal Backend = "local"
	// BackendGitHub stores blobs as files in a GitHub repository.
	BackendGitHub Backend = "github"
	// BackendMemory stores blobs in process memory.
	BackendMemory Backend = "memory"
)

// Config selects and configures a backend.
type Config struct {
	Backend Backend

	// DBPath is the SQLite file for the local backend. Empty means
	// DefaultDBPath.
	DBPath string

	// GitHub holds the remote backend settings.
	GitHub GitHubConfig
}

// ConfigFromEnv builds a Config from QUIZLR_* environment variables.
// QUIZLR_STORAGE_BACKEND defaults to local.
func ConfigFromEnv() Config {
	backend := Backend(os.Getenv("QUIZLR_STORAGE_BACKEND"))
	if backend == "" {
		backend = BackendLocal
	}
	return Config{
		Backend: backend,
		DBPath:  os.Getenv("QUIZLR_DB"),
		GitHub: GitHubConfig{
			Owner:  os.Getenv("QUIZLR_GITHUB_OWNER"),
			Repo:   os.Getenv("QUIZLR_GITHUB_REPO"),
			Token:  os.Getenv("QUIZLR_GITHUB_TOKEN"),
			Branch: os.Getenv("QUIZLR_GITHUB_BRANCH"),
			Path:   os.Getenv("QUIZLR_GITHUB_PATH"),
		},
	}
}

// Open creates the Store named by cfg.Backend.
func Open(cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendLocal:
		dbPath := cfg.DBPath
		if dbPath == "" {
			p, err := DefaultDBPath()
			if err != nil {
				return nil, err
			}
			dbPath = p
		}
		return OpenSQLite(dbPath)
	case BackendGitHub:
		return NewGitHub(cfg.GitHub)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
