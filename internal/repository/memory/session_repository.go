package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"lecturelama-be/pkg/store"
)

// SessionRepository holds all live sessions in process memory. Nothing is
// persisted: a session (and its transcript) dies on logout, on idle expiry,
// or on process restart.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Sessions idle for an hour are purged; the sweep runs every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

// Items returns every live session.
func (r *SessionRepository) Items() []*store.Session {
	items := r.cache.Items()
	out := make([]*store.Session, 0, len(items))
	for _, item := range items {
		out = append(out, item.Object.(*store.Session))
	}
	return out
}
