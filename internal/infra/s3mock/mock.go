package s3mock

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/humanbelnik/catalog/internal/model"
)

// S3Storage keeps objects in memory. It backs local runs without an object
// store and tests that need to inspect uploaded content.
type S3Storage struct {
	mu      sync.RWMutex
	prefix  string
	objects map[string]model.File
}

func New(prefix string) *S3Storage {
	return &S3Storage{
		prefix:  prefix,
		objects: make(map[string]model.File),
	}
}

func (s *S3Storage) Save(ctx context.Context, key string, f model.File) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fullKey := path.Join(s.prefix, strings.TrimPrefix(path.Clean("/"+key), "/"))

	content := make([]byte, len(f.Content))
	copy(content, f.Content)
	f.Content = content

	s.mu.Lock()
	s.objects[fullKey] = f
	s.mu.Unlock()
	return fullKey, nil
}

func (s *S3Storage) Load(ctx context.Context, fullKey string) (model.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.objects[fullKey]
	if !ok {
		return model.File{}, fmt.Errorf("%w: %s", model.ErrNotFound, fullKey)
	}
	return f, nil
}

func (s *S3Storage) Delete(ctx context.Context, fullKey string) error {
	s.mu.Lock()
	delete(s.objects, fullKey)
	s.mu.Unlock()
	return nil
}

func (s *S3Storage) GeneratePresignedURL(ctx context.Context, fullKey string, ttl time.Duration) (string, error) {
	return fmt.Sprintf("memory://%s?expires=%d", fullKey, int(ttl.Seconds())), nil
}

func (s *S3Storage) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	return keys
}
