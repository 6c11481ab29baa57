package services

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FirebaseClients holds the Firebase clients the server needs.
type FirebaseClients struct {
	Auth      *auth.Client
	Messaging *messaging.Client
}

// NewFirebaseClients initializes the Firebase app from a credentials file.
func NewFirebaseClients(ctx context.Context, credentialsPath string) (*FirebaseClients, error) {
	if credentialsPath == "" {
		return nil, ErrFirebaseDisabled
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase auth: %w", err)
	}

	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error initializing FCM client: %w", err)
	}

	return &FirebaseClients{Auth: authClient, Messaging: messagingClient}, nil
}
