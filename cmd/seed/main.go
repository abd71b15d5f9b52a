// seed inserts development sample data for local testing.
// Idempotent: skips inserts if the admin user (admin@example.com) already exists.
package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"notekeeper/internal/config"
	"notekeeper/internal/db"
	notedomain "notekeeper/internal/note/domain"
	noterepo "notekeeper/internal/note/repository"
	"notekeeper/internal/security"
	userdomain "notekeeper/internal/user/domain"
	userrepo "notekeeper/internal/user/repository"
)

const (
	adminEmail   = "admin@example.com"
	userEmail    = "user@example.com"
	seedPassword = "password123"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer database.Close()

	ctx := context.Background()
	users := userrepo.NewPostgresRepository(database)
	notes := noterepo.NewPostgresRepository(database)

	existing, err := users.GetByEmail(ctx, adminEmail)
	if err != nil {
		log.Fatalf("check admin user: %v", err)
	}
	if existing != nil {
		log.Printf("seed: %s already exists, nothing to do", adminEmail)
		return
	}

	hasher := security.NewHasher(cfg.BcryptCost)
	hashed, err := hasher.Hash([]byte(seedPassword))
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	now := time.Now().UTC()
	admin := &userdomain.User{
		ID:           uuid.New().String(),
		Name:         "Admin",
		Email:        adminEmail,
		Role:         userdomain.RoleAdmin,
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	regular := &userdomain.User{
		ID:           uuid.New().String(),
		Name:         "Dev User",
		Email:        userEmail,
		Role:         userdomain.RoleUser,
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, u := range []*userdomain.User{admin, regular} {
		if err := users.Create(ctx, u); err != nil {
			log.Fatalf("create user %s: %v", u.Email, err)
		}
	}

	note := &notedomain.Note{
		ID:          uuid.New().String(),
		Title:       "Welcome",
		Description: "This note was created by the seed tool.",
		OwnerID:     regular.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := notes.Create(ctx, note); err != nil {
		log.Fatalf("create note: %v", err)
	}

	log.Printf("seed: created %s and %s (password %q)", adminEmail, userEmail, seedPassword)
}
