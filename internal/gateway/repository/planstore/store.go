// Package planstore keeps finished plans in memory for the duration of
// a session so the download endpoint can serve them. Capacity-bounded,
// never persisted.
package planstore

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/alfredang/trip-advisor/internal/trip"
)

const defaultCapacity = 256

// Record is one finished plan plus its rendered document.
type Record struct {
	ID        string
	Plan      trip.Plan
	Markdown  string
	Filename  string
	ExportURL string
	CreatedAt time.Time
}

type Store struct {
	cache *lru.Cache[string, Record]
}

func New(capacity int) (*Store, error) {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	cache, err := lru.New[string, Record](capacity)
	if err != nil {
		return nil, err
	}
	return &Store{cache: cache}, nil
}

func (s *Store) Put(rec Record) {
	s.cache.Add(rec.ID, rec)
}

func (s *Store) Get(id string) (Record, bool) {
	return s.cache.Get(id)
}

func (s *Store) Len() int {
	return s.cache.Len()
}
