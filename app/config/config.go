package config

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Config struct {
	Client       *mongo.Client
	DB           *mongo.Database
	TeamIDPrefix string
}

var AppConfig *Config

// getEnv returns the value of an environment variable or a fallback.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB connects to MongoDB and populates the global AppConfig.
func InitDB() {
	uri := getEnv("MONGODB_URI", "mongodb://localhost:27017")
	dbName := getEnv("MONGODB_DB", "npni")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatal("Failed to create MongoDB client:", err)
	}

	log.Println("Testing database connection...")
	if err := client.Ping(ctx, nil); err != nil {
		log.Printf("Database connection failed: %v", err)
		log.Println("Set MONGODB_URI to point at a reachable MongoDB instance")
		log.Fatal("Cannot establish database connection")
	}

	AppConfig = &Config{
		Client:       client,
		DB:           client.Database(dbName),
		TeamIDPrefix: getEnv("TEAM_ID_PREFIX", "NPNI2025"),
	}
	log.Printf("Database connected successfully (%s/%s)", uri, dbName)
}

func GetDB() *mongo.Database {
	return AppConfig.DB
}

func GetClient() *mongo.Client {
	return AppConfig.Client
}

// TeamIDPrefix returns the prefix used when synthesizing team IDs during
// CSV import, e.g. "NPNI2025" yields NPNI2025-001, NPNI2025-002, ...
func TeamIDPrefix() string {
	return AppConfig.TeamIDPrefix
}
