package catalog

import (
	"sync"
	"time"

	"github.com/ccuhub/compscout/app/feed"
)

// Store owns the in-memory competition set. Each successful ingestion
// replaces the whole set; records are never mutated after creation.
type Store struct {
	mu          sync.RWMutex
	records     []feed.Competition
	byID        map[string]feed.Competition
	refreshedAt *time.Time
}

func NewStore() *Store {
	return &Store{
		byID: make(map[string]feed.Competition),
	}
}

func (s *Store) ReplaceAll(records []feed.Competition) {
	byID := make(map[string]feed.Competition, len(records))
	for _, record := range records {
		byID[record.ID] = record
	}
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
	s.byID = byID
	s.refreshedAt = &now
}

// All returns a copy of the record set in ingestion order.
func (s *Store) All() []feed.Competition {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]feed.Competition, len(s.records))
	copy(records, s.records)
	return records
}

func (s *Store) Get(id string) (feed.Competition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.byID[id]
	return record, ok
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// RefreshedAt returns when the set was last replaced, or nil before the
// first successful ingestion.
func (s *Store) RefreshedAt() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshedAt
}
