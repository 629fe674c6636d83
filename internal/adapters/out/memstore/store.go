// Package memstore is an in-process ports.ArtifactStore. It has the same
// conditional-create semantics as the Postgres store and backs local runs
// without a database as well as tests.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"starmap/internal/core/domain/model/artifact"
	"starmap/internal/core/ports"
	"starmap/internal/pkg/errs"
)

var _ ports.ArtifactStore = (*Store)(nil)

type entry struct {
	object artifact.Object
	body   []byte
}

// Store keeps objects in a map guarded by a mutex.
type Store struct {
	mu        sync.Mutex
	objects   map[string]entry
	publicURL string
	now       func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the time source used for CreatedAt and staleness checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty store whose object URLs start with publicURL.
func NewStore(publicURL string, opts ...Option) *Store {
	s := &Store{
		objects:   make(map[string]entry),
		publicURL: publicURL,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Put(_ context.Context, key string, body []byte, contentType string) (artifact.Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.put(key, body, contentType), nil
}

func (s *Store) Create(
	_ context.Context,
	key string,
	body []byte,
	contentType string,
	staleAfter time.Duration,
) (artifact.Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.objects[key]; ok {
		stale := staleAfter > 0 && existing.object.CreatedAt.Before(s.now().Add(-staleAfter))
		if !stale {
			return artifact.Object{}, errs.NewObjectAlreadyExistsError("key", key)
		}
	}

	return s.put(key, body, contentType), nil
}

func (s *Store) List(_ context.Context, prefix string, limit int) ([]artifact.Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []artifact.Object
	for key, e := range s.objects {
		if strings.HasPrefix(key, prefix) {
			out = append(out, e.object)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Key < out[j].Key
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) Get(_ context.Context, key string) (artifact.Object, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.objects[key]
	if !ok {
		return artifact.Object{}, nil, errs.NewObjectNotFoundError("key", key)
	}
	return e.object, append([]byte(nil), e.body...), nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[key]; !ok {
		return errs.NewObjectNotFoundError("key", key)
	}
	delete(s.objects, key)
	return nil
}

func (s *Store) DeleteExpired(_ context.Context, prefix string, olderThan time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for key, e := range s.objects {
		if strings.HasPrefix(key, prefix) && e.object.CreatedAt.Before(olderThan) {
			delete(s.objects, key)
			n++
		}
	}
	return n, nil
}

// put must be called with mu held.
func (s *Store) put(key string, body []byte, contentType string) artifact.Object {
	obj := artifact.Object{
		Key:         key,
		URL:         artifact.PublicURL(s.publicURL, key),
		ContentType: contentType,
		Size:        int64(len(body)),
		CreatedAt:   s.now(),
	}
	s.objects[key] = entry{object: obj, body: append([]byte(nil), body...)}
	return obj
}
