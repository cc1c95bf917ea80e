// package firebase initializes the Firebase Admin SDK clients shared by the
// auth and profile layers.
package firebase

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	fb "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Clients bundles the Firebase services this application consumes: the auth
// client for ID token verification and the Firestore client for profile
// documents.
type Clients struct {
	Auth      *auth.Client
	Firestore *firestore.Client
}

// NewClients creates the Firebase clients using the provided credentials file.
func NewClients(ctx context.Context, credentialsFile, projectID string) (*Clients, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	var cfg *fb.Config
	if projectID != "" {
		cfg = &fb.Config{ProjectID: projectID}
	}

	app, err := fb.NewApp(ctx, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get auth client: %w", err)
	}

	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get firestore client: %w", err)
	}

	return &Clients{
		Auth:      authClient,
		Firestore: firestoreClient,
	}, nil
}

// Close releases the underlying Firestore connection.
func (c *Clients) Close() error {
	return c.Firestore.Close()
}
