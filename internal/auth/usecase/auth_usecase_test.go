package usecase

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	authdomain "cinetrack-backend/internal/auth/domain"
	profiledomain "cinetrack-backend/internal/profile/domain"
	"cinetrack-backend/pkg/config"

	"github.com/charmbracelet/log"
)

type fakeVerifier struct {
	identity *authdomain.Identity
	err      error
}

func (v *fakeVerifier) VerifyIDToken(ctx context.Context, idToken string) (*authdomain.Identity, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.identity, nil
}

type fakeTokenRepo struct {
	tokens map[string]*authdomain.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*authdomain.RefreshToken)}
}

func (r *fakeTokenRepo) SaveRefreshToken(token *authdomain.RefreshToken) error {
	r.tokens[token.Token] = token
	return nil
}

func (r *fakeTokenRepo) FindRefreshToken(token string) (*authdomain.RefreshToken, error) {
	return r.tokens[token], nil
}

func (r *fakeTokenRepo) DeleteRefreshToken(token string) error {
	delete(r.tokens, token)
	return nil
}

func (r *fakeTokenRepo) DeleteRefreshTokensByUser(userID string) error {
	for key, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, key)
		}
	}
	return nil
}

type fakeProfileStore struct {
	profiles map[string]*profiledomain.Profile
	created  int
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[string]*profiledomain.Profile)}
}

func (s *fakeProfileStore) GetProfile(ctx context.Context, uid string) (*profiledomain.Profile, error) {
	return s.profiles[uid], nil
}

func (s *fakeProfileStore) CreateProfile(ctx context.Context, uid string, profile *profiledomain.Profile) error {
	if _, ok := s.profiles[uid]; !ok {
		s.profiles[uid] = profile
		s.created++
	}
	return nil
}

func (s *fakeProfileStore) Subscribe(ctx context.Context, uid string, onSnapshot func(*profiledomain.Profile, error)) func() {
	return func() {}
}

func (s *fakeProfileStore) UpdateFields(ctx context.Context, uid string, fields map[string]interface{}) error {
	return nil
}

func (s *fakeProfileStore) AddBookmark(ctx context.Context, uid string, bookmark profiledomain.Bookmark) error {
	return nil
}

func (s *fakeProfileStore) RemoveBookmark(ctx context.Context, uid string, bookmark profiledomain.Bookmark) error {
	return nil
}

func (s *fakeProfileStore) RemoveBookmarks(ctx context.Context, uid string, bookmarks []profiledomain.Bookmark) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  time.Minute,
		JWTRefreshExpiry: time.Hour,
	}
}

func testIdentity() *authdomain.Identity {
	return &authdomain.Identity{
		UID:           "u1",
		Email:         "ana@example.com",
		EmailVerified: true,
		DisplayName:   "Ana Diaz",
		PhotoURL:      "https://img/ana.png",
		Provider:      "google.com",
	}
}

func TestAuthUsecase(t *testing.T) {
	ctx := context.Background()

	newTestUsecase := func(verifier *fakeVerifier) (AuthUsecase, *fakeTokenRepo, *fakeProfileStore, *IdentityBus) {
		tokenRepo := newFakeTokenRepo()
		profiles := newFakeProfileStore()
		bus := NewIdentityBus()
		uc := NewAuthUsecase(verifier, tokenRepo, profiles, bus, testConfig(), log.New(io.Discard))
		return uc, tokenRepo, profiles, bus
	}

	t.Run("CreateSession", func(t *testing.T) {
		t.Run("Issues Tokens And Publishes Sign-In", func(t *testing.T) {
			uc, tokenRepo, _, bus := newTestUsecase(&fakeVerifier{identity: testIdentity()})

			resp, err := uc.CreateSession(ctx, "provider-token")
			if err != nil {
				t.Fatalf("CreateSession failed: %v", err)
			}
			if resp.AccessToken == "" || resp.RefreshToken == "" {
				t.Error("expected both tokens to be issued")
			}
			if resp.User == nil || resp.User.UID != "u1" {
				t.Errorf("expected identity in response, got %+v", resp.User)
			}
			if len(tokenRepo.tokens) != 1 {
				t.Errorf("expected one stored refresh token, got %d", len(tokenRepo.tokens))
			}
			if current := bus.Current("u1"); current == nil || current.Email != "ana@example.com" {
				t.Errorf("expected sign-in published on the bus, got %+v", current)
			}
		})

		t.Run("Creates The Profile Document On First Sign-In", func(t *testing.T) {
			uc, _, profiles, _ := newTestUsecase(&fakeVerifier{identity: testIdentity()})

			if _, err := uc.CreateSession(ctx, "provider-token"); err != nil {
				t.Fatalf("CreateSession failed: %v", err)
			}

			profile := profiles.profiles["u1"]
			if profile == nil {
				t.Fatal("expected profile document to be created")
			}
			if profile.FirstName != "Ana" || profile.LastName != "Diaz" {
				t.Errorf("expected split name Ana/Diaz, got %q/%q", profile.FirstName, profile.LastName)
			}
			if profile.Bookmarks == nil || len(profile.Bookmarks) != 0 {
				t.Errorf("expected empty bookmark collection, got %v", profile.Bookmarks)
			}
		})

		t.Run("Keeps An Existing Profile Document", func(t *testing.T) {
			uc, _, profiles, _ := newTestUsecase(&fakeVerifier{identity: testIdentity()})
			profiles.profiles["u1"] = &profiledomain.Profile{FirstName: "Custom", LastName: "Name"}

			if _, err := uc.CreateSession(ctx, "provider-token"); err != nil {
				t.Fatalf("CreateSession failed: %v", err)
			}
			if profiles.created != 0 {
				t.Error("existing profile must not be recreated")
			}
			if profiles.profiles["u1"].FirstName != "Custom" {
				t.Error("existing profile was overwritten")
			}
		})

		t.Run("Rejects An Invalid Provider Token", func(t *testing.T) {
			uc, _, _, bus := newTestUsecase(&fakeVerifier{err: errors.New("token expired")})

			if _, err := uc.CreateSession(ctx, "bad-token"); err == nil {
				t.Fatal("expected an error")
			}
			if bus.Current("u1") != nil {
				t.Error("no sign-in may be published for a rejected token")
			}
		})
	})

	t.Run("ValidateToken Round-Trips The Identity", func(t *testing.T) {
		uc, _, _, _ := newTestUsecase(&fakeVerifier{identity: testIdentity()})

		resp, err := uc.CreateSession(ctx, "provider-token")
		if err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}

		identity, err := uc.ValidateToken(resp.AccessToken)
		if err != nil {
			t.Fatalf("ValidateToken failed: %v", err)
		}
		want := testIdentity()
		if *identity != *want {
			t.Errorf("expected %+v, got %+v", want, identity)
		}
	})

	t.Run("ValidateToken Rejects Garbage", func(t *testing.T) {
		uc, _, _, _ := newTestUsecase(&fakeVerifier{identity: testIdentity()})
		if _, err := uc.ValidateToken("not-a-token"); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("RefreshSession", func(t *testing.T) {
		t.Run("Issues Fresh Tokens For A Stored Refresh Token", func(t *testing.T) {
			uc, _, _, _ := newTestUsecase(&fakeVerifier{identity: testIdentity()})

			resp, err := uc.CreateSession(ctx, "provider-token")
			if err != nil {
				t.Fatalf("CreateSession failed: %v", err)
			}

			refreshed, err := uc.RefreshSession(ctx, resp.RefreshToken)
			if err != nil {
				t.Fatalf("RefreshSession failed: %v", err)
			}
			if refreshed.User.UID != "u1" {
				t.Errorf("expected same user, got %+v", refreshed.User)
			}
		})

		t.Run("Rejects An Unknown Refresh Token", func(t *testing.T) {
			uc, tokenRepo, _, _ := newTestUsecase(&fakeVerifier{identity: testIdentity()})

			resp, err := uc.CreateSession(ctx, "provider-token")
			if err != nil {
				t.Fatalf("CreateSession failed: %v", err)
			}
			if err := tokenRepo.DeleteRefreshToken(resp.RefreshToken); err != nil {
				t.Fatal(err)
			}

			if _, err := uc.RefreshSession(ctx, resp.RefreshToken); err == nil {
				t.Fatal("expected an error for a revoked token")
			}
		})
	})

	t.Run("Logout Publishes Sign-Out And Deletes The Token", func(t *testing.T) {
		uc, tokenRepo, _, bus := newTestUsecase(&fakeVerifier{identity: testIdentity()})

		resp, err := uc.CreateSession(ctx, "provider-token")
		if err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
		if bus.Current("u1") == nil {
			t.Fatal("expected signed-in state")
		}

		if err := uc.Logout(ctx, resp.RefreshToken); err != nil {
			t.Fatalf("Logout failed: %v", err)
		}
		if len(tokenRepo.tokens) != 0 {
			t.Errorf("expected refresh token deleted, %d remain", len(tokenRepo.tokens))
		}
		if bus.Current("u1") != nil {
			t.Error("expected sign-out published on the bus")
		}
	})
}

func TestSplitName(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		first string
		last  string
	}{
		{"Two Parts", "Ana Diaz", "Ana", "Diaz"},
		{"Three Parts", "Ana Maria Diaz", "Ana", "Maria Diaz"},
		{"Single Part", "Ana", "Ana", ""},
		{"Empty", "", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			first, last := splitName(tc.in)
			if first != tc.first || last != tc.last {
				t.Errorf("splitName(%q) = %q/%q, want %q/%q", tc.in, first, last, tc.first, tc.last)
			}
		})
	}
}
