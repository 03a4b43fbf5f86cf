package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/offrampkit/offramp-widget-backend/services/flow"
)

// Store keeps mounted widget sessions in memory, expiring idle ones after the
// configured TTL.
type Store struct {
	cache *cache.Cache
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func NewID() string {
	return uuid.NewString()
}

func (s *Store) Put(w *flow.Widget) {
	s.cache.SetDefault(w.ID(), w)
}

func (s *Store) Get(id string) (*flow.Widget, bool) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	w, ok := v.(*flow.Widget)
	return w, ok
}

func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}
