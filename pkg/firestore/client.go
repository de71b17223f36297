package firestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// Config holds server-side Firestore credentials
type Config struct {
	ProjectID       string
	ClientEmail     string
	PrivateKey      string // PEM, newlines already unescaped
	CredentialsFile string // service account JSON file; wins over the inline key
}

// ClientOptions builds the credential option for cfg.
func ClientOptions(cfg Config) ([]option.ClientOption, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("firestore: FIREBASE_PROJECT_ID not configured")
	}
	if cfg.CredentialsFile != "" {
		return []option.ClientOption{option.WithCredentialsFile(cfg.CredentialsFile)}, nil
	}
	if cfg.ClientEmail == "" || cfg.PrivateKey == "" {
		return nil, errors.New("firestore: FIREBASE_CLIENT_EMAIL and FIREBASE_PRIVATE_KEY are required")
	}

	creds, err := json.Marshal(map[string]string{
		"type":         "service_account",
		"project_id":   cfg.ProjectID,
		"client_email": cfg.ClientEmail,
		"private_key":  cfg.PrivateKey,
		"token_uri":    "https://oauth2.googleapis.com/token",
	})
	if err != nil {
		return nil, err
	}
	return []option.ClientOption{option.WithCredentialsJSON(creds)}, nil
}

// NewClient creates a Firestore client. The caller owns it.
func NewClient(ctx context.Context, cfg Config) (*firestore.Client, error) {
	opts, err := ClientOptions(cfg)
	if err != nil {
		return nil, err
	}
	client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore: %w", err)
	}
	return client, nil
}
