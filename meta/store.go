package meta

import (
	"sync"

	"go.uber.org/zap"
)

// Store maps entity identities to their metadata. One store is meant to live
// for one schema-loading session; Reset clears it between tests.
//
// Identity values used as keys must be comparable.
type Store struct {
	mu       sync.Mutex
	entities map[Identity]*EntityMetadata
	order    []*EntityMetadata
	logger   *zap.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger makes the store log registrations at debug level.
func WithLogger(l *zap.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore creates an empty Store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		entities: make(map[Identity]*EntityMetadata),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetOrCreate returns the metadata for id, creating an empty record the
// first time id is seen.
func (s *Store) GetOrCreate(id Identity) *EntityMetadata {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entities[id]; ok {
		return e
	}
	e := newEntityMetadata(id)
	s.entities[id] = e
	s.order = append(s.order, e)
	s.logger.Debug("entity metadata created", zap.Stringer("entity", id))
	return e
}

// Lookup returns the metadata for id without creating it.
func (s *Store) Lookup(id Identity) (*EntityMetadata, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entities[id]
	return e, ok
}

// Entities returns all metadata records in creation order.
func (s *Store) Entities() []*EntityMetadata {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]*EntityMetadata(nil), s.order...)
}

// Count returns the number of known entities.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.order)
}

// Reset forgets every entity.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entities = make(map[Identity]*EntityMetadata)
	s.order = nil
}
