package artifact

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jtquiroga/DAA-por-region/pkg/platform/sentinel"
)

// FSStore implements Store on the local filesystem. Keys map to relative
// file paths under the root; a sidecar file (filename + ".meta") stores
// content type, etag and timestamps. Writes land in a temp file and are
// renamed into place.
type FSStore struct {
	root string
}

// NewFS returns a filesystem-backed store rooted at root, creating the
// directory if needed.
func NewFS(root string) (*FSStore, error) {
	if root == "" {
		root = "exports"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact root: %w", err)
	}
	return &FSStore{root: root}, nil
}

// Driver identifies the backend.
func (s *FSStore) Driver() Driver { return DriverFS }

// validateKey forbids empty keys, traversal and absolute paths.
func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("empty artifact key")
	}
	if strings.Contains(key, "..") {
		return fmt.Errorf("artifact key %q contains '..'", key)
	}
	if strings.HasPrefix(key, "/") {
		return fmt.Errorf("artifact key %q is absolute", key)
	}
	return nil
}

func (s *FSStore) paths(key string) (dataPath, metaPath string, err error) {
	if err := validateKey(key); err != nil {
		return "", "", err
	}
	dataPath = filepath.Join(s.root, filepath.FromSlash(key))
	metaPath = dataPath + ".meta"
	return dataPath, metaPath, nil
}

type metaFile struct {
	ContentType string    `json:"content_type,omitempty"`
	ETag        string    `json:"etag"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

// Put writes payload under key, refusing to overwrite an existing artifact.
func (s *FSStore) Put(ctx context.Context, key string, payload []byte, contentType string) (Info, error) {
	dataPath, metaPath, err := s.paths(key)
	if err != nil {
		return Info{}, err
	}
	if _, err := os.Stat(dataPath); err == nil {
		return Info{}, fmt.Errorf("artifact %s already exists: %w", key, sentinel.ErrConflict)
	}
	if err := os.MkdirAll(filepath.Dir(dataPath), 0o755); err != nil {
		return Info{}, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dataPath), ".tmp-*")
	if err != nil {
		return Info{}, err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		return Info{}, err
	}
	if err := tmp.Close(); err != nil {
		return Info{}, err
	}
	if err := os.Rename(tmp.Name(), dataPath); err != nil {
		return Info{}, err
	}

	sum := sha256.Sum256(payload)
	mf := metaFile{
		ContentType: contentType,
		ETag:        hex.EncodeToString(sum[:]),
		Size:        int64(len(payload)),
		CreatedAt:   time.Now().UTC(),
	}
	raw, err := json.Marshal(mf)
	if err != nil {
		return Info{}, err
	}
	if err := os.WriteFile(metaPath, raw, 0o644); err != nil {
		return Info{}, err
	}
	return s.infoFor(key, mf), nil
}

// Get returns the stored payload for key.
func (s *FSStore) Get(ctx context.Context, key string) (Info, []byte, error) {
	dataPath, metaPath, err := s.paths(key)
	if err != nil {
		return Info{}, nil, err
	}
	payload, err := os.ReadFile(dataPath)
	if errors.Is(err, fs.ErrNotExist) {
		return Info{}, nil, fmt.Errorf("artifact %s: %w", key, sentinel.ErrNotFound)
	}
	if err != nil {
		return Info{}, nil, err
	}
	mf, err := readMeta(metaPath)
	if err != nil {
		return Info{}, nil, err
	}
	return s.infoFor(key, mf), payload, nil
}

// Head returns metadata for key without reading the payload.
func (s *FSStore) Head(ctx context.Context, key string) (Info, error) {
	_, metaPath, err := s.paths(key)
	if err != nil {
		return Info{}, err
	}
	mf, err := readMeta(metaPath)
	if errors.Is(err, fs.ErrNotExist) {
		return Info{}, fmt.Errorf("artifact %s: %w", key, sentinel.ErrNotFound)
	}
	if err != nil {
		return Info{}, err
	}
	return s.infoFor(key, mf), nil
}

// Delete removes key and its sidecar, reporting whether it existed.
func (s *FSStore) Delete(ctx context.Context, key string) (bool, error) {
	dataPath, metaPath, err := s.paths(key)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(dataPath); errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err := os.Remove(dataPath); err != nil {
		return false, err
	}
	_ = os.Remove(metaPath)
	return true, nil
}

// List walks the root collecting sidecar files under prefix, sorted by key.
func (s *FSStore) List(ctx context.Context, prefix string) ([]Info, error) {
	var infos []Info
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".meta") {
			return nil
		}
		mf, err := readMeta(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(s.root, strings.TrimSuffix(path, ".meta"))
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if prefix == "" || strings.HasPrefix(key, prefix) {
			infos = append(infos, s.infoFor(key, mf))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

func (s *FSStore) infoFor(key string, mf metaFile) Info {
	return Info{
		Key:         key,
		Size:        mf.Size,
		ContentType: mf.ContentType,
		ETag:        mf.ETag,
		CreatedAt:   mf.CreatedAt,
		URL:         "file://" + filepath.ToSlash(filepath.Join(s.root, key)),
	}
}

func readMeta(path string) (metaFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return metaFile{}, err
	}
	var mf metaFile
	if err := json.Unmarshal(raw, &mf); err != nil {
		return metaFile{}, fmt.Errorf("decode artifact meta %s: %w", path, err)
	}
	return mf, nil
}
