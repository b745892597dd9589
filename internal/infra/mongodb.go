package infra

import (
	"context"
	"fmt"
	"net/url"

	"github.com/umalmyha/contacts/internal/config"
	"github.com/umalmyha/contacts/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoURI builds connection string from config
func MongoURI(cfg config.MongoCfg) string {
	u := url.URL{
		Scheme:   "mongodb",
		Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:     "/",
		RawQuery: fmt.Sprintf("maxPoolSize=%d", cfg.MaxPoolSize),
	}

	if cfg.User != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	}
	return u.String()
}

// Mongodb connects to mongodb and verifies connection with ping
func Mongodb(ctx context.Context, cfg config.MongoCfg) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(MongoURI(cfg)))
	if err != nil {
		return nil, fmt.Errorf("failed to establish connection to mongodb - %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("didn't get response from mongodb after sending ping request - %w", err)
	}
	return client, nil
}

// EnsureMongoIndexes creates unique email index on contacts collection if it is missing
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(repository.ContactsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(repository.MongoEmailIndex),
	})
	if err != nil {
		return fmt.Errorf("failed to create unique email index - %w", err)
	}
	return nil
}
