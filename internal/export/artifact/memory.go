package artifact

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jtquiroga/DAA-por-region/pkg/platform/sentinel"
)

// MemoryStore is an in-memory artifact store for tests and throwaway runs.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

type memoryObject struct {
	info    Info
	payload []byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{objects: make(map[string]memoryObject)}
}

// Driver identifies the backend.
func (s *MemoryStore) Driver() Driver { return DriverMemory }

// Put stores payload under key, refusing to overwrite.
func (s *MemoryStore) Put(ctx context.Context, key string, payload []byte, contentType string) (Info, error) {
	if err := validateKey(key); err != nil {
		return Info{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[key]; ok {
		return Info{}, fmt.Errorf("artifact %s already exists: %w", key, sentinel.ErrConflict)
	}
	sum := sha256.Sum256(payload)
	info := Info{
		Key:         key,
		Size:        int64(len(payload)),
		ContentType: contentType,
		ETag:        hex.EncodeToString(sum[:]),
		CreatedAt:   time.Now().UTC(),
	}
	stored := make([]byte, len(payload))
	copy(stored, payload)
	s.objects[key] = memoryObject{info: info, payload: stored}
	return info, nil
}

// Get returns the stored payload for key.
func (s *MemoryStore) Get(ctx context.Context, key string) (Info, []byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[key]
	if !ok {
		return Info{}, nil, fmt.Errorf("artifact %s: %w", key, sentinel.ErrNotFound)
	}
	payload := make([]byte, len(obj.payload))
	copy(payload, obj.payload)
	return obj.info, payload, nil
}

// Head returns metadata for key without the payload.
func (s *MemoryStore) Head(ctx context.Context, key string) (Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[key]
	if !ok {
		return Info{}, fmt.Errorf("artifact %s: %w", key, sentinel.ErrNotFound)
	}
	return obj.info, nil
}

// Delete removes key, reporting whether it existed.
func (s *MemoryStore) Delete(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[key]; !ok {
		return false, nil
	}
	delete(s.objects, key)
	return true, nil
}

// List returns metadata for every key under prefix, sorted by key.
func (s *MemoryStore) List(ctx context.Context, prefix string) ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var infos []Info
	for key, obj := range s.objects {
		if prefix == "" || strings.HasPrefix(key, prefix) {
			infos = append(infos, obj.info)
		}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}
