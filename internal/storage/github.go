package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultGitHubBaseURL = "https://api.github.com"

// GitHubConfig configures the remote backend. Owner, Repo, and Token are
// required; the rest default sensibly.
type GitHubConfig struct {
	Owner string
	Repo  string
	Token string

	// Branch to read and commit against. Empty uses the repository default.
	Branch string

	// Path is the directory inside the repository that holds all keys.
	Path string

	// BaseURL overrides the GitHub API endpoint, for tests and GHE.
	BaseURL string

	// HTTPClient overrides the default 30s-timeout client.
	HTTPClient *http.Client

	// Logger receives a debug event per API call. Nil disables logging.
	Logger *zerolog.Logger
}

// GitHub stores blobs as files in a repository via the contents API. Each
// Save and Delete is one commit.
type GitHub struct {
	owner   string
	repo    string
	token   string
	branch  string
	path    string
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// NewGitHub creates the remote backend.
func NewGitHub(cfg GitHubConfig) (*GitHub, error) {
	if cfg.Owner == "" || cfg.Repo == "" {
		return nil, fmt.Errorf("github storage: owner and repo are required")
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("github storage: token is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGitHubBaseURL
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &GitHub{
		owner:   cfg.Owner,
		repo:    cfg.Repo,
		token:   cfg.Token,
		branch:  cfg.Branch,
		path:    strings.Trim(cfg.Path, "/"),
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
	}, nil
}

// contentsMeta is the subset of the contents API response the store needs.
type contentsMeta struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	SHA      string `json:"sha"`
	Type     string `json:"type"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

func (s *GitHub) Save(ctx context.Context, key string, value []byte) error {
	sha, err := s.currentSHA(ctx, key)
	if err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}

	body := map[string]string{
		"message": fmt.Sprintf("quizlr: save %s", key),
		"content": base64.StdEncoding.EncodeToString(value),
	}
	if sha != "" {
		body["sha"] = sha
	}
	if s.branch != "" {
		body["branch"] = s.branch
	}

	if _, err := s.do(ctx, http.MethodPut, s.contentsURL(key), body); err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}

func (s *GitHub) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.do(ctx, http.MethodGet, s.contentsURL(key)+s.refQuery(), nil)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", key, err)
	}

	var meta contentsMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("load %q: decode response: %w", key, err)
	}
	if meta.Encoding != "base64" {
		return nil, fmt.Errorf("load %q: unexpected encoding %q", key, meta.Encoding)
	}

	// The API wraps base64 content in newlines.
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(meta.Content, "\n", ""))
	if err != nil {
		return nil, fmt.Errorf("load %q: decode content: %w", key, err)
	}
	return decoded, nil
}

func (s *GitHub) Delete(ctx context.Context, key string) error {
	sha, err := s.currentSHA(ctx, key)
	if err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	if sha == "" {
		return fmt.Errorf("delete %q: %w", key, ErrNotFound)
	}

	body := map[string]string{
		"message": fmt.Sprintf("quizlr: delete %s", key),
		"sha":     sha,
	}
	if s.branch != "" {
		body["branch"] = s.branch
	}

	if _, err := s.do(ctx, http.MethodDelete, s.contentsURL(key), body); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// List walks the directory the prefix points into. Keys under deeper
// subdirectories of that directory are not traversed.
func (s *GitHub) List(ctx context.Context, prefix string) ([]string, error) {
	dir := ""
	if i := strings.LastIndex(prefix, "/"); i >= 0 {
		dir = prefix[:i]
	}

	data, err := s.do(ctx, http.MethodGet, s.contentsURL(dir)+s.refQuery(), nil)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %q: %w", prefix, err)
	}

	var entries []contentsMeta
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("list %q: decode response: %w", prefix, err)
	}

	var keys []string
	for _, e := range entries {
		if e.Type != "file" {
			continue
		}
		key := e.Name
		if dir != "" {
			key = dir + "/" + e.Name
		}
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	return keys, nil
}

// currentSHA returns the blob SHA for key, or "" when the file does not
// exist. The contents API requires it for updates and deletes.
func (s *GitHub) currentSHA(ctx context.Context, key string) (string, error) {
	data, err := s.do(ctx, http.MethodGet, s.contentsURL(key)+s.refQuery(), nil)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	var meta contentsMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return meta.SHA, nil
}

func (s *GitHub) contentsURL(key string) string {
	p := path.Join(s.path, key)
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", s.baseURL, s.owner, s.repo, p)
}

func (s *GitHub) refQuery() string {
	if s.branch == "" {
		return ""
	}
	return "?ref=" + s.branch
}

func (s *GitHub) do(ctx context.Context, method, url string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+s.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("method", method).
		Str("url", url).
		Int("status", resp.StatusCode).
		Msg("github api call")

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d for %s %s", resp.StatusCode, method, url)
	}
	return data, nil
}
