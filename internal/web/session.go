package web

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmr-tortoise/flightcal/internal/model"
)

// sessionTTL is how long lookup results stay selectable. Long enough to
// read the candidate list over a coffee, short enough that the server does
// not accumulate stale lookups.
const sessionTTL = 30 * time.Minute

// sessionCookie is the name of the browser cookie carrying the session ID.
const sessionCookie = "flightcal_session"

// session holds one lookup's candidate flights between the selection page
// render and the user's pick.
type session struct {
	flights []model.Flight
	expires time.Time
}

// sessionStore is an in-memory, TTL-bound map from session ID to candidate
// flights. Lookup results never touch disk: a restart simply asks the user
// to search again.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]session
	now      func() time.Time
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		sessions: make(map[string]session),
		now:      time.Now,
	}
}

// put stores the flights under a fresh ID and returns it. Expired entries
// are swept opportunistically, so the map stays bounded by recent traffic.
func (s *sessionStore) put(flights []model.Flight) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, sess := range s.sessions {
		if now.After(sess.expires) {
			delete(s.sessions, id)
		}
	}

	id := uuid.NewString()
	s.sessions[id] = session{flights: flights, expires: now.Add(sessionTTL)}
	return id
}

// get returns the flights for a session ID, or false when the ID is
// unknown or expired.
func (s *sessionStore) get(id string) ([]model.Flight, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || s.now().After(sess.expires) {
		return nil, false
	}

	// Copy so handler-side edits (field overrides) never mutate the
	// stored candidates.
	flights := make([]model.Flight, len(sess.flights))
	copy(flights, sess.flights)
	return flights, true
}
