package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"ghtour/config"
	"ghtour/database/store"

	"cloud.google.com/go/firestore"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClient is set when STORE_BACKEND=mongo.
var MongoClient *mongo.Client

// InitMongo connects to MongoDB and pings it.
func InitMongo() (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.AppConfig.DatabaseURL)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	MongoClient = client
	log.Println("Connected to MongoDB successfully!")
	return client, nil
}

// InitStore builds the DocumentStore selected by STORE_BACKEND.
// fs is only consulted for the firestore backend.
func InitStore(fs *firestore.Client) (store.DocumentStore, error) {
	switch config.AppConfig.StoreBackend {
	case config.StoreFirestore, "":
		if fs == nil {
			return nil, fmt.Errorf("firestore backend selected but no Firestore client is available")
		}
		return store.NewFirestoreStore(fs), nil
	case config.StoreMongo:
		client, err := InitMongo()
		if err != nil {
			return nil, err
		}
		s := store.NewMongoStore(client.Database(config.AppConfig.DatabaseName))
		if err := s.EnsureIndexes(context.Background(), config.BookingsCollection); err != nil {
			log.Printf("mongo: %v", err)
		}
		return s, nil
	case config.StoreMemory:
		log.Println("Using in-memory store; data is lost on restart")
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", config.AppConfig.StoreBackend)
	}
}

// Close releases the MongoDB connection, if one was opened.
func Close(ctx context.Context) {
	if MongoClient == nil {
		return
	}
	if err := MongoClient.Disconnect(ctx); err != nil {
		log.Printf("mongo: disconnect failed: %v", err)
	}
}
