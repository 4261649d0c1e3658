package session

import "testing"

func TestStore_setAndCurrent(t *testing.T) {
	store := NewStore()

	if got := store.Current(); got != nil {
		t.Fatalf("Current() = %v, want nil at process start", got)
	}

	sess := sessionWith(false, false)
	store.set(sess)
	if got := store.Current(); got != sess {
		t.Errorf("Current() = %v, want %v", got, sess)
	}

	store.set(nil)
	if got := store.Current(); got != nil {
		t.Errorf("Current() = %v, want nil after clear", got)
	}
}

func TestStore_Subscribe(t *testing.T) {
	store := NewStore()

	var order []string
	store.Subscribe(func(sess *Session) { order = append(order, "first") })
	store.Subscribe(func(sess *Session) { order = append(order, "second") })

	store.set(sessionWith(false, false))
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("subscribers notified as %v, want [first second]", order)
	}

	// a subscriber reading the store during notification must observe the
	// committed value, never the pre-transition one
	var seen *Session
	store.Subscribe(func(sess *Session) { seen = store.Current() })
	next := sessionWith(true, false)
	store.set(next)
	if seen != next {
		t.Errorf("subscriber observed %v during notification, want %v", seen, next)
	}
}

func TestStore_Unsubscribe(t *testing.T) {
	store := NewStore()

	var calls int
	unsubscribe := store.Subscribe(func(sess *Session) { calls++ })

	store.set(sessionWith(false, false))
	unsubscribe()
	store.set(nil)

	if calls != 1 {
		t.Errorf("subscriber called %d times, want 1", calls)
	}
}
