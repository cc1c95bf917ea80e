package usecase

import (
	"sync"

	authdomain "cinetrack-backend/internal/auth/domain"
)

// IdentityBus fans identity-change events out to per-user subscribers. A nil
// identity means signed out. The bus keeps the latest identity per user and
// replays it to late subscribers, so a listener attached after sign-in still
// observes the current state. Events for one user are delivered in
// publication order; delivery happens on the publisher's goroutine.
type IdentityBus struct {
	mu      sync.Mutex
	nextID  int
	current map[string]*authdomain.Identity
	subs    map[string]map[int]func(*authdomain.Identity)
}

func NewIdentityBus() *IdentityBus {
	return &IdentityBus{
		current: make(map[string]*authdomain.Identity),
		subs:    make(map[string]map[int]func(*authdomain.Identity)),
	}
}

// Publish records the user's current identity and notifies subscribers.
func (b *IdentityBus) Publish(uid string, identity *authdomain.Identity) {
	b.mu.Lock()
	if identity == nil {
		delete(b.current, uid)
	} else {
		b.current[uid] = identity
	}
	var fns []func(*authdomain.Identity)
	for _, fn := range b.subs[uid] {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(identity)
	}
}

// Subscribe registers fn for the user's identity changes, replaying the
// current state immediately. The returned function removes the
// subscription; it is safe to call more than once.
func (b *IdentityBus) Subscribe(uid string, fn func(*authdomain.Identity)) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	if b.subs[uid] == nil {
		b.subs[uid] = make(map[int]func(*authdomain.Identity))
	}
	b.subs[uid][id] = fn
	current := b.current[uid]
	b.mu.Unlock()

	fn(current)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[uid], id)
	}
}

// Current returns the latest published identity for the user, or nil.
func (b *IdentityBus) Current(uid string) *authdomain.Identity {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current[uid]
}
