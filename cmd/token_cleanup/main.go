package main

import (
	"context"
	"log"
	"os"

	"badmintok/internal/database"
	"badmintok/internal/repository"
)

// Removes expired and long-revoked refresh tokens. Meant to run from cron.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	tokens := repository.NewRefreshTokenRepository(db)
	removed, err := tokens.DeleteExpired(context.Background())
	if err != nil {
		log.Fatalf("token cleanup failed: %v", err)
	}

	log.Printf("token cleanup completed: refresh_tokens removed=%d", removed)
}
