package config

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var mongoClient *mongo.Client

// ConnectDB opens the MongoDB connection and returns the application
// database handle. Collections are created lazily on first insert.
func ConnectDB() *mongo.Database {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(AppConfig.MongoURI))
	if err != nil {
		logrus.Fatalf("Unable to connect to MongoDB: %v", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		logrus.Fatalf("Unable to ping MongoDB: %v", err)
	}

	mongoClient = client
	logrus.Info("Database connected successfully")
	return client.Database(AppConfig.MongoDBName)
}

func CloseDB() {
	if mongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			logrus.Errorf("Error closing database connection: %v", err)
			return
		}
		logrus.Info("Database connection closed")
	}
}
