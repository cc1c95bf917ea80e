package repository

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"cinetrack-backend/internal/profile/domain"
)

const usersCollection = "users"

// firestoreStore implements Store on top of Cloud Firestore.
type firestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new instance of firestoreStore.
func NewFirestoreStore(client *firestore.Client) Store {
	return &firestoreStore{
		client: client,
	}
}

func (s *firestoreStore) doc(uid string) *firestore.DocumentRef {
	return s.client.Collection(usersCollection).Doc(uid)
}

func (s *firestoreStore) GetProfile(ctx context.Context, uid string) (*domain.Profile, error) {
	snap, err := s.doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var profile domain.Profile
	if err := snap.DataTo(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *firestoreStore) CreateProfile(ctx context.Context, uid string, profile *domain.Profile) error {
	bookmarks := make([]interface{}, 0, len(profile.Bookmarks))
	for _, b := range profile.Bookmarks {
		bookmarks = append(bookmarks, b)
	}

	// Create keeps an existing document intact when two sessions race on
	// first sign-in.
	_, err := s.doc(uid).Create(ctx, map[string]interface{}{
		"firstName": profile.FirstName,
		"lastName":  profile.LastName,
		"photoURL":  profile.PhotoURL,
		"bookmarks": bookmarks,
	})
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	return err
}

// Subscribe opens a snapshot listener on the user's document. The listener
// goroutine stops on cancellation; the returned cancel function waits for it
// to exit so no callback runs after cancel returns.
func (s *firestoreStore) Subscribe(ctx context.Context, uid string, onSnapshot func(*domain.Profile, error)) func() {
	ctx, cancel := context.WithCancel(ctx)
	it := s.doc(uid).Snapshots(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer it.Stop()
		for {
			snap, err := it.Next()
			if err != nil {
				if ctx.Err() != nil || status.Code(err) == codes.Canceled {
					return
				}
				onSnapshot(nil, err)
				return
			}
			if !snap.Exists() {
				onSnapshot(nil, nil)
				continue
			}
			var profile domain.Profile
			if err := snap.DataTo(&profile); err != nil {
				onSnapshot(nil, err)
				continue
			}
			onSnapshot(&profile, nil)
		}
	}()

	return func() {
		cancel()
		<-done
	}
}

func (s *firestoreStore) UpdateFields(ctx context.Context, uid string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return errors.New("no fields to update")
	}

	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	_, err := s.doc(uid).Update(ctx, updates)
	return err
}

func (s *firestoreStore) AddBookmark(ctx context.Context, uid string, bookmark domain.Bookmark) error {
	// Set with merge so the union transform also works when the document is
	// missing.
	_, err := s.doc(uid).Set(ctx, map[string]interface{}{
		"bookmarks": firestore.ArrayUnion(bookmark),
	}, firestore.MergeAll)
	return err
}

func (s *firestoreStore) RemoveBookmark(ctx context.Context, uid string, bookmark domain.Bookmark) error {
	_, err := s.doc(uid).Update(ctx, []firestore.Update{
		{Path: "bookmarks", Value: firestore.ArrayRemove(bookmark)},
	})
	return err
}

func (s *firestoreStore) RemoveBookmarks(ctx context.Context, uid string, bookmarks []domain.Bookmark) error {
	if len(bookmarks) == 0 {
		return nil
	}

	values := make([]interface{}, 0, len(bookmarks))
	for _, b := range bookmarks {
		values = append(values, b)
	}
	_, err := s.doc(uid).Update(ctx, []firestore.Update{
		{Path: "bookmarks", Value: firestore.ArrayRemove(values...)},
	})
	return err
}
