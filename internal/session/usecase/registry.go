package usecase

import (
	"sync"

	authdomain "cinetrack-backend/internal/auth/domain"
	authusecase "cinetrack-backend/internal/auth/usecase"
	"cinetrack-backend/internal/session/domain"

	"github.com/charmbracelet/log"
)

type registryEntry struct {
	synchronizer *Synchronizer
	refs         int
	last         *domain.User
}

// Registry runs one Synchronizer per connected user, refcounted across that
// user's event-stream connections. The first connection starts the
// synchronizer, the last one stops it, which keeps the one-subscription-
// per-identity invariant at the application level too.
type Registry struct {
	bus      *authusecase.IdentityBus
	profiles ProfileSubscriber
	publish  func(uid string, user *domain.User)
	logger   *log.Logger

	mu     sync.Mutex
	active map[string]*registryEntry
	closed bool
}

func NewRegistry(bus *authusecase.IdentityBus, profiles ProfileSubscriber, publish func(uid string, user *domain.User), logger *log.Logger) *Registry {
	return &Registry{
		bus:      bus,
		profiles: profiles,
		publish:  publish,
		logger:   logger,
		active:   make(map[string]*registryEntry),
	}
}

// Acquire registers a connection for uid, starting a synchronizer when it
// is the user's first. For later connections the last published record is
// re-sent so the new client catches up immediately.
func (r *Registry) Acquire(uid string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	if entry, ok := r.active[uid]; ok {
		entry.refs++
		if entry.last != nil {
			r.publish(uid, entry.last)
		}
		return
	}

	entry := &registryEntry{refs: 1}
	source := IdentitySourceFunc(func(fn func(*authdomain.Identity)) func() {
		return r.bus.Subscribe(uid, fn)
	})
	entry.synchronizer = NewSynchronizer(source, r.profiles, func(user *domain.User) {
		r.mu.Lock()
		entry.last = user
		r.mu.Unlock()
		r.publish(uid, user)
	}, r.logger)
	r.active[uid] = entry
	entry.synchronizer.Start()
}

// Release drops a connection for uid and stops the synchronizer when no
// connections remain.
func (r *Registry) Release(uid string) {
	r.mu.Lock()
	entry := r.active[uid]
	if entry == nil {
		r.mu.Unlock()
		return
	}
	entry.refs--
	if entry.refs > 0 {
		r.mu.Unlock()
		return
	}
	delete(r.active, uid)
	r.mu.Unlock()

	entry.synchronizer.Stop()
}

// Close stops every active synchronizer. Used on application teardown.
func (r *Registry) Close() {
	r.mu.Lock()
	r.closed = true
	entries := make([]*registryEntry, 0, len(r.active))
	for uid, entry := range r.active {
		entries = append(entries, entry)
		delete(r.active, uid)
	}
	r.mu.Unlock()

	for _, entry := range entries {
		entry.synchronizer.Stop()
	}
}
