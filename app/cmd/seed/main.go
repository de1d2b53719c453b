package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/milavdabgar/npni-flutter/app/config"
	"github.com/milavdabgar/npni-flutter/app/database"
	"github.com/milavdabgar/npni-flutter/app/importer"
	"github.com/milavdabgar/npni-flutter/app/models"
	"github.com/milavdabgar/npni-flutter/app/routes/auth"
)

// Bootstrap accounts for a fresh deployment. Passwords can be overridden
// via ADMIN_PASSWORD / JURY_PASSWORD before seeding a real instance.
var seedUsers = []struct {
	email    string
	password string
	name     string
	role     string
}{
	{"admin@gppalanpur.ac.in", envOr("ADMIN_PASSWORD", "admin123"), "Admin User", models.RoleAdmin},
	{"jury1@gppalanpur.ac.in", envOr("JURY_PASSWORD", "jury123"), "Jury Member 1", models.RoleJury},
	{"jury2@gppalanpur.ac.in", envOr("JURY_PASSWORD", "jury123"), "Jury Member 2", models.RoleJury},
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	csvPath := flag.String("csv", "", "optional roster CSV to import after seeding accounts")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize database connection
	config.InitDB()
	ctx := context.Background()
	defer config.GetClient().Disconnect(ctx)

	db := config.GetDB()
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatal("Failed to create indexes:", err)
	}

	for _, seed := range seedUsers {
		hash, err := auth.HashPassword(seed.password)
		if err != nil {
			log.Fatal("Failed to hash password:", err)
		}
		user := &models.User{
			Email:    seed.email,
			Password: hash,
			Name:     seed.name,
			Role:     seed.role,
		}
		if err := database.CreateUser(ctx, db, user); err != nil {
			if errors.Is(err, database.ErrDuplicateKey) {
				fmt.Printf("User already exists, skipping: %s\n", seed.email)
				continue
			}
			log.Fatalf("Error creating user %s: %v", seed.email, err)
		}
		fmt.Printf("User created successfully: %s (%s)\n", seed.email, seed.role)
	}

	if *csvPath == "" {
		return
	}

	// Run the roster import through the same engine the API uses
	data, err := os.ReadFile(*csvPath)
	if err != nil {
		log.Fatal("Failed to read CSV file:", err)
	}

	stores := database.NewImportStores(config.GetClient(), db)
	engine := importer.NewEngine(
		importer.DefaultSchema(config.TeamIDPrefix()),
		stores.Projects(),
		stores.Accounts(),
		stores,
	)

	result, err := engine.ImportCSV(ctx, data)
	if err != nil {
		log.Fatal("Import failed:", err)
	}
	fmt.Printf("Imported %d projects (%d rows skipped)\n", result.Imported, result.Skipped)
}
