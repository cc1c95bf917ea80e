package usecase

import (
	"context"
	"sync"

	authdomain "cinetrack-backend/internal/auth/domain"
	profiledomain "cinetrack-backend/internal/profile/domain"
	"cinetrack-backend/internal/session/domain"

	"github.com/charmbracelet/log"
)

// IdentitySource is the identity-change stream consumed by the
// synchronizer. Subscribe replays the current identity (possibly nil) and
// then delivers every change until the returned function is called.
type IdentitySource interface {
	Subscribe(fn func(*authdomain.Identity)) (unsubscribe func())
}

// IdentitySourceFunc adapts a subscribe function to IdentitySource.
type IdentitySourceFunc func(fn func(*authdomain.Identity)) func()

func (f IdentitySourceFunc) Subscribe(fn func(*authdomain.Identity)) func() {
	return f(fn)
}

// ProfileSubscriber is the slice of the profile store the synchronizer
// needs: a live document subscription with a blocking cancel.
type ProfileSubscriber interface {
	Subscribe(ctx context.Context, uid string, onSnapshot func(*profiledomain.Profile, error)) (cancel func())
}

type syncState int

const (
	stateLoggedOut syncState = iota
	stateAwaitingProfile
	stateLoggedIn
)

type eventKind int

const (
	identityEvent eventKind = iota
	snapshotEvent
)

type event struct {
	kind     eventKind
	identity *authdomain.Identity
	profile  *profiledomain.Profile
	err      error
	gen      uint64
}

// Synchronizer merges the identity stream and the profile-document stream
// into one published user record. It guarantees at most one live document
// subscription at a time: every identity change tears the previous
// subscription down before opening a new one, and snapshots from a
// superseded subscription are discarded by generation tag.
//
// All state lives on a single event-loop goroutine; the publish sink is
// only ever invoked from that goroutine.
type Synchronizer struct {
	source   IdentitySource
	profiles ProfileSubscriber
	publish  func(*domain.User)
	logger   *log.Logger

	events chan event
	quit   chan struct{}
	done   chan struct{}

	mu          sync.Mutex
	started     bool
	unsubscribe func()
	stopOnce    sync.Once

	// owned by the event loop
	state     syncState
	gen       uint64
	identity  *authdomain.Identity
	cancelSub func()
}

func NewSynchronizer(source IdentitySource, profiles ProfileSubscriber, publish func(*domain.User), logger *log.Logger) *Synchronizer {
	return &Synchronizer{
		source:   source,
		profiles: profiles,
		publish:  publish,
		logger:   logger,
		events:   make(chan event, 16),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
		state:    stateLoggedOut,
	}
}

// Start launches the event loop and attaches to the identity stream. It is
// a no-op after the first call.
func (s *Synchronizer) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	go s.run()

	unsubscribe := s.source.Subscribe(func(identity *authdomain.Identity) {
		s.push(event{kind: identityEvent, identity: identity})
	})

	s.mu.Lock()
	s.unsubscribe = unsubscribe
	s.mu.Unlock()
}

// Stop detaches from the identity stream, cancels any live document
// subscription and waits for the event loop to exit. No record is published
// after Stop returns. Safe to call from any state, any number of times.
func (s *Synchronizer) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		started := s.started
		unsubscribe := s.unsubscribe
		s.mu.Unlock()

		if unsubscribe != nil {
			unsubscribe()
		}
		close(s.quit)
		if started {
			<-s.done
		}
	})
}

func (s *Synchronizer) push(ev event) {
	select {
	case s.events <- ev:
	case <-s.quit:
	}
}

func (s *Synchronizer) run() {
	defer close(s.done)
	for {
		select {
		case <-s.quit:
			s.teardown()
			return
		case ev := <-s.events:
			switch ev.kind {
			case identityEvent:
				s.handleIdentity(ev.identity)
			case snapshotEvent:
				if ev.gen != s.gen {
					// snapshot from a torn-down subscription
					continue
				}
				s.handleSnapshot(ev.profile, ev.err)
			}
		}
	}
}

func (s *Synchronizer) teardown() {
	if s.cancelSub != nil {
		s.cancelSub()
		s.cancelSub = nil
	}
}

// handleIdentity processes one identity-change event. Repeated sign-ins,
// for the same identity or a different one, always run a full cycle:
// teardown first, then re-subscribe under a fresh generation.
func (s *Synchronizer) handleIdentity(identity *authdomain.Identity) {
	s.teardown()
	s.gen++
	s.identity = identity

	if identity == nil {
		s.state = stateLoggedOut
		s.publish(nil)
		return
	}

	s.state = stateAwaitingProfile
	gen := s.gen
	stop := make(chan struct{})
	cancel := s.profiles.Subscribe(context.Background(), identity.UID, func(profile *profiledomain.Profile, err error) {
		select {
		case s.events <- event{kind: snapshotEvent, profile: profile, err: err, gen: gen}:
		case <-stop:
		case <-s.quit:
		}
	})
	s.cancelSub = func() {
		// unblock a callback stuck on the event channel before waiting
		// for the subscription to wind down
		close(stop)
		cancel()
	}
}

func (s *Synchronizer) handleSnapshot(profile *profiledomain.Profile, err error) {
	if err != nil {
		// hold the last published state; the subscription-layer error is
		// not fatal to the session
		s.logger.Warn("profile subscription error", "uid", s.identity.UID, "err", err)
		return
	}

	s.state = stateLoggedIn
	s.publish(MergeUser(s.identity, profile))
}

// MergeUser combines an identity with a profile snapshot. A nil profile
// (document missing) yields empty name and photo fields, never a failure.
func MergeUser(identity *authdomain.Identity, profile *profiledomain.Profile) *domain.User {
	user := &domain.User{
		UID:           identity.UID,
		Email:         identity.Email,
		EmailVerified: identity.EmailVerified,
	}
	if profile != nil {
		user.DisplayName = composeDisplayName(profile.LastName, profile.FirstName)
		user.PhotoURL = profile.PhotoURL
	}
	return user
}

// composeDisplayName joins the stored name fields the way the original web
// client always has: last name first. Changing the order would change every
// displayed name, so the contract stays as-is (see DESIGN.md).
func composeDisplayName(lastName, firstName string) string {
	if lastName == "" && firstName == "" {
		return ""
	}
	return lastName + " " + firstName
}
