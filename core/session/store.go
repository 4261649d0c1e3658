package session

import "sync"

type subscriber struct {
	id int
	fn func(*Session)
}

// Store is the single source of truth for the current Session.
// All writes go through the Service; consumers only read and subscribe.
type Store struct {
	mu      sync.RWMutex
	current *Session
	subs    []subscriber
	nextID  int
}

func NewStore() *Store {
	return &Store{}
}

// Current returns the live Session, or nil when signed out. It never blocks
// on in-flight establishment calls.
func (s *Store) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe registers fn to be called synchronously, in registration order,
// on every session transition. The returned function unsubscribes.
// fn must not call back into the Store's write path.
func (s *Store) Subscribe(fn func(*Session)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				break
			}
		}
	}
}

// set commits sess and notifies all subscribers before returning.
// The commit happens under the write lock, so any reader that observes the
// new value is guaranteed never to read the pre-transition one afterwards;
// there is no torn read of a partially-updated Session.
func (s *Store) set(sess *Session) {
	s.mu.Lock()
	s.current = sess
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(sess)
	}
}
