package usecase

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	profiledomain "cinetrack-backend/internal/profile/domain"

	"github.com/charmbracelet/log"
)

// fakeStore mimics the document store's set semantics: adds are unions over
// exact values, removes match exact values and no-op when absent.
type fakeStore struct {
	mu          sync.Mutex
	profiles    map[string]*profiledomain.Profile
	removeCalls [][]profiledomain.Bookmark
	writes      int
	failWith    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{profiles: make(map[string]*profiledomain.Profile)}
}

func (s *fakeStore) seed(uid string, bookmarks ...profiledomain.Bookmark) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[uid] = &profiledomain.Profile{Bookmarks: bookmarks}
}

func (s *fakeStore) bookmarks(uid string) []profiledomain.Bookmark {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.profiles[uid]; ok {
		return append([]profiledomain.Bookmark(nil), p.Bookmarks...)
	}
	return nil
}

func (s *fakeStore) GetProfile(ctx context.Context, uid string) (*profiledomain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	p, ok := s.profiles[uid]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (s *fakeStore) CreateProfile(ctx context.Context, uid string, profile *profiledomain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[uid]; !ok {
		s.profiles[uid] = profile
	}
	return nil
}

func (s *fakeStore) Subscribe(ctx context.Context, uid string, onSnapshot func(*profiledomain.Profile, error)) func() {
	return func() {}
}

func (s *fakeStore) UpdateFields(ctx context.Context, uid string, fields map[string]interface{}) error {
	return nil
}

func (s *fakeStore) AddBookmark(ctx context.Context, uid string, bookmark profiledomain.Bookmark) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if s.failWith != nil {
		return s.failWith
	}
	p, ok := s.profiles[uid]
	if !ok {
		p = &profiledomain.Profile{}
		s.profiles[uid] = p
	}
	for _, existing := range p.Bookmarks {
		if existing == bookmark {
			return nil // set union: already present
		}
	}
	p.Bookmarks = append(p.Bookmarks, bookmark)
	return nil
}

func (s *fakeStore) RemoveBookmark(ctx context.Context, uid string, bookmark profiledomain.Bookmark) error {
	return s.RemoveBookmarks(ctx, uid, []profiledomain.Bookmark{bookmark})
}

func (s *fakeStore) RemoveBookmarks(ctx context.Context, uid string, bookmarks []profiledomain.Bookmark) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	s.removeCalls = append(s.removeCalls, append([]profiledomain.Bookmark(nil), bookmarks...))
	if s.failWith != nil {
		return s.failWith
	}
	p, ok := s.profiles[uid]
	if !ok {
		return nil
	}
	var kept []profiledomain.Bookmark
	for _, existing := range p.Bookmarks {
		removed := false
		for _, b := range bookmarks {
			if existing == b {
				removed = true
				break
			}
		}
		if !removed {
			kept = append(kept, existing)
		}
	}
	p.Bookmarks = kept
	return nil
}

func (s *fakeStore) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func movieBookmark(id string) profiledomain.Bookmark {
	return profiledomain.Bookmark{
		Type:        profiledomain.MediaKindMovie,
		ID:          id,
		Title:       "Movie " + id,
		PosterPath:  "/poster" + id + ".jpg",
		VoteAverage: "7.5",
	}
}

func TestIsBookmarked(t *testing.T) {
	bookmarks := []profiledomain.Bookmark{
		{Type: "movie", ID: "1", Title: "One"},
		{Type: "tv", ID: "2", Title: "Two"},
	}

	cases := []struct {
		name string
		id   string
		kind string
		want bool
	}{
		{"Matching Movie", "1", "movie", true},
		{"Matching TV", "2", "tv", true},
		{"Same ID Different Kind", "1", "tv", false},
		{"Unknown ID", "3", "movie", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsBookmarked(bookmarks, tc.id, tc.kind); got != tc.want {
				t.Errorf("IsBookmarked(%s, %s) = %v, want %v", tc.id, tc.kind, got, tc.want)
			}
		})
	}

	t.Run("Ignores Descriptive Fields", func(t *testing.T) {
		if !IsBookmarked(bookmarks, "1", "movie") {
			t.Error("membership must depend only on type and id")
		}
	})
}

func TestToggle(t *testing.T) {
	ctx := context.Background()
	newUsecase := func(store *fakeStore) BookmarkUsecase {
		return NewBookmarkUsecase(store, log.New(io.Discard))
	}

	t.Run("Add Then Remove Restores Original Membership", func(t *testing.T) {
		store := newFakeStore()
		store.seed("u1")
		uc := newUsecase(store)
		b := movieBookmark("42")

		if err := uc.Toggle(ctx, "u1", b, false); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if !IsBookmarked(store.bookmarks("u1"), "42", "movie") {
			t.Fatal("bookmark not added")
		}

		if err := uc.Toggle(ctx, "u1", b, true); err != nil {
			t.Fatalf("remove failed: %v", err)
		}
		if len(store.bookmarks("u1")) != 0 {
			t.Errorf("expected empty collection, got %v", store.bookmarks("u1"))
		}
	})

	t.Run("Double Add Leaves One Entry", func(t *testing.T) {
		store := newFakeStore()
		store.seed("u1")
		uc := newUsecase(store)
		b := movieBookmark("42")

		if err := uc.Toggle(ctx, "u1", b, false); err != nil {
			t.Fatalf("first add failed: %v", err)
		}
		if err := uc.Toggle(ctx, "u1", b, false); err != nil {
			t.Fatalf("second add failed: %v", err)
		}

		count := 0
		for _, stored := range store.bookmarks("u1") {
			if stored.SameEntry(b) {
				count++
			}
		}
		if count != 1 {
			t.Errorf("expected exactly one entry, got %d", count)
		}
	})

	t.Run("Unauthenticated Refusal Issues No Write", func(t *testing.T) {
		store := newFakeStore()
		uc := newUsecase(store)

		err := uc.Toggle(ctx, "", movieBookmark("42"), false)
		if !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got %v", err)
		}
		if store.writeCount() != 0 {
			t.Errorf("expected no store writes, got %d", store.writeCount())
		}
	})

	t.Run("Invalid Media Kind", func(t *testing.T) {
		store := newFakeStore()
		uc := newUsecase(store)

		b := movieBookmark("42")
		b.Type = "book"
		if err := uc.Toggle(ctx, "u1", b, false); !errors.Is(err, ErrInvalidMediaKind) {
			t.Fatalf("expected ErrInvalidMediaKind, got %v", err)
		}
	})

	t.Run("Store Failure Wraps ErrMutationFailed", func(t *testing.T) {
		store := newFakeStore()
		store.failWith = errors.New("permission denied")
		uc := newUsecase(store)

		err := uc.Toggle(ctx, "u1", movieBookmark("42"), false)
		if !errors.Is(err, ErrMutationFailed) {
			t.Fatalf("expected ErrMutationFailed, got %v", err)
		}
	})

	t.Run("Remove Matches The Full Value", func(t *testing.T) {
		store := newFakeStore()
		stored := movieBookmark("42")
		stored.VoteAverage = "8.1"
		store.seed("u1", stored)
		uc := newUsecase(store)

		// descriptive fields drifted since bookmarking; the exact-value
		// remove does not match, so the entry survives
		drifted := movieBookmark("42")
		drifted.VoteAverage = "8.3"
		if err := uc.Toggle(ctx, "u1", drifted, true); err != nil {
			t.Fatalf("remove failed: %v", err)
		}
		if len(store.bookmarks("u1")) != 1 {
			t.Errorf("expected drifted value to miss, got %v", store.bookmarks("u1"))
		}
	})
}

func TestRemoveMany(t *testing.T) {
	ctx := context.Background()

	t.Run("Batch Removal Leaves Unselected Entries", func(t *testing.T) {
		store := newFakeStore()
		first := profiledomain.Bookmark{Type: "movie", ID: "1", Title: "One"}
		second := profiledomain.Bookmark{Type: "tv", ID: "2", Title: "Two"}
		third := profiledomain.Bookmark{Type: "movie", ID: "3", Title: "Three"}
		store.seed("u1", first, second, third)
		uc := NewBookmarkUsecase(store, log.New(io.Discard))

		if err := uc.RemoveMany(ctx, "u1", []profiledomain.Bookmark{first, third}); err != nil {
			t.Fatalf("batch removal failed: %v", err)
		}

		if len(store.removeCalls) != 1 {
			t.Fatalf("expected one batched mutation, got %d", len(store.removeCalls))
		}
		call := store.removeCalls[0]
		if len(call) != 2 || call[0] != first || call[1] != third {
			t.Errorf("expected removal of exactly the selected values, got %v", call)
		}

		remaining := store.bookmarks("u1")
		if len(remaining) != 1 || remaining[0] != second {
			t.Errorf("expected only the tv bookmark to remain, got %v", remaining)
		}
	})

	t.Run("Empty Selection Is A No-Op", func(t *testing.T) {
		store := newFakeStore()
		uc := NewBookmarkUsecase(store, log.New(io.Discard))

		if err := uc.RemoveMany(ctx, "u1", nil); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if store.writeCount() != 0 {
			t.Errorf("expected no store writes, got %d", store.writeCount())
		}
	})

	t.Run("Unauthenticated Refusal", func(t *testing.T) {
		store := newFakeStore()
		uc := NewBookmarkUsecase(store, log.New(io.Discard))

		err := uc.RemoveMany(ctx, "", []profiledomain.Bookmark{movieBookmark("1")})
		if !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got %v", err)
		}
		if store.writeCount() != 0 {
			t.Errorf("expected no store writes, got %d", store.writeCount())
		}
	})

	t.Run("Store Failure Surfaces After The Mutation Settles", func(t *testing.T) {
		store := newFakeStore()
		store.failWith = errors.New("network down")
		uc := NewBookmarkUsecase(store, log.New(io.Discard))

		err := uc.RemoveMany(ctx, "u1", []profiledomain.Bookmark{movieBookmark("1")})
		if !errors.Is(err, ErrMutationFailed) {
			t.Fatalf("expected ErrMutationFailed, got %v", err)
		}
	})
}
