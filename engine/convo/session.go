package convo

import (
	"sync"
	"time"

	"github.com/TruckScoutAI/truckscout-engine/engine/nlp"
)

// historyCap bounds per-session conversation history; the oldest turn is
// evicted FIFO beyond it.
const historyCap = 10

// Turn is one stored exchange in a session.
type Turn struct {
	Message string        `json:"message"`
	Result  nlp.NLPResult `json:"result"`
	At      time.Time     `json:"at"`
}

// SessionPrefs is the accumulating preference projection for one user.
type SessionPrefs struct {
	Brands       []string           `json:"brands,omitempty"` // last-seen, most recent first
	PriceMin     float64            `json:"price_min,omitempty"`
	PriceMax     float64            `json:"price_max,omitempty"`
	IntentCounts map[nlp.Intent]int `json:"intent_counts,omitempty"`
}

// Session is one user's bounded conversation state. The embedded mutex
// serializes turns for the same session id; different sessions never share
// a lock.
type Session struct {
	mu       sync.Mutex
	ID       string
	History  []Turn
	Prefs    SessionPrefs
	lastSeen time.Time
}

// append records a turn, evicting the oldest beyond historyCap. Caller must
// hold the session lock.
func (s *Session) append(t Turn) {
	s.History = append(s.History, t)
	if len(s.History) > historyCap {
		s.History = s.History[len(s.History)-historyCap:]
	}
}

// observe folds a query's entities into the preference projection. Caller
// must hold the session lock.
func (s *Session) observe(result nlp.NLPResult) {
	if s.Prefs.IntentCounts == nil {
		s.Prefs.IntentCounts = make(map[nlp.Intent]int)
	}
	s.Prefs.IntentCounts[result.Intent]++

	for _, b := range result.Entities.Brands {
		s.Prefs.Brands = prependUnique(s.Prefs.Brands, b, 5)
	}
	if len(result.Entities.Prices) > 0 {
		lo, hi := result.Entities.Prices[0], result.Entities.Prices[0]
		for _, p := range result.Entities.Prices[1:] {
			if p < lo {
				lo = p
			}
			if p > hi {
				hi = p
			}
		}
		if len(result.Entities.Prices) > 1 {
			s.Prefs.PriceMin = lo
		}
		s.Prefs.PriceMax = hi
	}
}

func prependUnique(list []string, v string, cap_ int) []string {
	out := []string{v}
	for _, x := range list {
		if x != v && len(out) < cap_ {
			out = append(out, x)
		}
	}
	return out
}

// SessionStore holds sessions keyed by user id, with LRU eviction when the
// session count exceeds its limit. The dispatcher is its only writer.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	limit    int
}

// NewSessionStore creates a store capped at limit sessions (0 = unlimited).
func NewSessionStore(limit int) *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session), limit: limit}
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// acquire returns the session for id, creating it on first use and evicting
// the least recently used session when over the limit.
func (s *SessionStore) acquire(id string, now time.Time) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		sess = &Session{ID: id}
		s.sessions[id] = sess
		if s.limit > 0 && len(s.sessions) > s.limit {
			s.evictOldest(id)
		}
	}
	sess.lastSeen = now
	return sess
}

// evictOldest drops the least recently used session other than keep. Must
// hold the store lock.
func (s *SessionStore) evictOldest(keep string) {
	var oldestID string
	var oldest time.Time
	first := true
	for id, sess := range s.sessions {
		if id == keep {
			continue
		}
		if first || sess.lastSeen.Before(oldest) {
			oldest = sess.lastSeen
			oldestID = id
			first = false
		}
	}
	if oldestID != "" {
		delete(s.sessions, oldestID)
	}
}
