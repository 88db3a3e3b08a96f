package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vearutop/tritone"
)

var errSessionNotFound = errors.New("session not found")

// session keeps one uploaded original and its latest-wins renderer.
type session struct {
	id       string
	src      *tritone.Source
	renderer *tritone.Renderer
	cancel   context.CancelFunc
	lastUsed time.Time
}

type sessionStore struct {
	ttl time.Duration
	max int
	now func() time.Time

	mu    sync.Mutex
	items map[string]*session
}

func newSessionStore(ttl time.Duration, maxSessions int) *sessionStore {
	return &sessionStore{
		ttl:   ttl,
		max:   maxSessions,
		now:   time.Now,
		items: make(map[string]*session),
	}
}

// create registers src and starts its renderer, evicting the least recently
// used session when the store is full.
func (s *sessionStore) create(src *tritone.Source) *session {
	ctx, cancel := context.WithCancel(context.Background())
	sess := &session{
		id:       uuid.NewString(),
		src:      src,
		renderer: tritone.NewRenderer(src),
		cancel:   cancel,
	}
	go func() { _ = sess.renderer.Run(ctx) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) >= s.max {
		var oldest *session
		for _, it := range s.items {
			if oldest == nil || it.lastUsed.Before(oldest.lastUsed) {
				oldest = it
			}
		}
		if oldest != nil {
			s.deleteLocked(oldest.id)
		}
	}
	sess.lastUsed = s.now()
	s.items[sess.id] = sess

	return sess
}

func (s *sessionStore) get(id string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.items[id]
	if !ok {
		return nil, errSessionNotFound
	}
	sess.lastUsed = s.now()
	return sess, nil
}

func (s *sessionStore) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.deleteLocked(id)
}

func (s *sessionStore) deleteLocked(id string) bool {
	sess, ok := s.items[id]
	if !ok {
		return false
	}
	sess.cancel()
	delete(s.items, id)
	return true
}

// sweep drops sessions idle for longer than ttl and returns how many were removed.
func (s *sessionStore) sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	deadline := s.now().Add(-s.ttl)
	n := 0
	for id, sess := range s.items {
		if sess.lastUsed.Before(deadline) {
			s.deleteLocked(id)
			n++
		}
	}
	return n
}

func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.items)
}

func (s *sessionStore) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range s.items {
		s.deleteLocked(id)
	}
}
