// utils/firebase.go
package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"ghtour/config"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// FirebaseClients groups the clients built from one Firebase app.
type FirebaseClients struct {
	App       *firebase.App
	Firestore *firestore.Client
	Auth      *auth.Client
	Messaging *messaging.Client
}

// FirebaseInit initializes the Firebase App and its Firestore, Auth and Messaging clients.
func FirebaseInit(ctx context.Context) (*FirebaseClients, error) {
	var opts []option.ClientOption
	projectID := config.AppConfig.FirebaseProjectID

	if path := config.AppConfig.FirebaseCredentialsFile; path != "" {
		if _, err := os.Stat(path); err == nil {
			opts = append(opts, option.WithCredentialsFile(path))
			if sa, err := readServiceAccount(path); err == nil && sa.ProjectID != "" {
				projectID = sa.ProjectID
			}
		} else {
			// Fall back to application default credentials.
			GetLogger().Warn("Firebase credentials file not found", zap.String("path", path))
		}
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}

	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Firestore client: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Auth client: %w", err)
	}

	msgClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Messaging client: %w", err)
	}

	GetLogger().Info("Firebase initialized", zap.String("projectId", projectID))
	return &FirebaseClients{App: app, Firestore: fs, Auth: authClient, Messaging: msgClient}, nil
}

func readServiceAccount(path string) (*config.ServiceAccount, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sa config.ServiceAccount
	if err := json.Unmarshal(raw, &sa); err != nil {
		return nil, err
	}
	return &sa, nil
}
