package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores inference results as files under one directory, sharded
// by key hash. Each file holds a one-line JSON header followed by the raw
// payload, so multi-megabyte tree JSON lands on disk verbatim instead of
// being base64-inflated inside an envelope.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-backed cache rooted at dir, creating the
// directory when missing.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// fileHeader is the metadata line preceding every stored payload.
type fileHeader struct {
	SavedAt   time.Time `json:"savedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
	Size      int       `json:"size"`
}

// Get retrieves a stored result. Expired, truncated, or otherwise
// unreadable entries are removed and reported as misses; a cache never
// fails a run over a bad file.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	sep := bytes.IndexByte(raw, '\n')
	if sep < 0 {
		_ = os.Remove(path)
		return nil, false, nil
	}
	var hdr fileHeader
	if err := json.Unmarshal(raw[:sep], &hdr); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	payload := raw[sep+1:]
	if hdr.Size != len(payload) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if !hdr.ExpiresAt.IsZero() && time.Now().After(hdr.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return payload, true, nil
}

// Set stores a result. A non-positive ttl stores the entry without an
// expiration time.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	hdr := fileHeader{SavedAt: time.Now(), Size: len(data)}
	if ttl > 0 {
		hdr.ExpiresAt = hdr.SavedAt.Add(ttl)
	}
	line, err := json.Marshal(hdr)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	buf := make([]byte, 0, len(line)+1+len(data))
	buf = append(buf, line...)
	buf = append(buf, '\n')
	buf = append(buf, data...)
	return os.WriteFile(path, buf, 0o644)
}

// Delete removes a stored result. Deleting an absent key is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close is a no-op; files need no teardown.
func (c *FileCache) Close() error {
	return nil
}

// path shards entries by key hash so a season of captures never piles
// thousands of files into a single directory.
func (c *FileCache) path(key string) string {
	sum := Hash([]byte(key))
	return filepath.Join(c.dir, sum[:2], sum[2:]+".result")
}

var _ Cache = (*FileCache)(nil)
