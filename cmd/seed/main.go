// Package main provides a tool to seed the database with catalog data.
//
// It loads the ingredient catalog from a JSON file, creates a default
// set of tags, and optionally creates an admin account.
//
// Usage:
//
//	DATA_PATH=~/Forkful/data go run ./cmd/seed --ingredients ingredients.json
//	DATA_PATH=~/Forkful/data go run ./cmd/seed --admin-email admin@example.com --admin-password secret123
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/forkfulapp/forkful-server/internal/auth"
	"github.com/forkfulapp/forkful-server/internal/domain"
	"github.com/forkfulapp/forkful-server/internal/errors"
	"github.com/forkfulapp/forkful-server/internal/id"
	"github.com/forkfulapp/forkful-server/internal/store"
)

var (
	ingredientsFile = flag.String("ingredients", "", "Path to a JSON file with the ingredient catalog")
	adminEmail      = flag.String("admin-email", "", "Email for an admin account to create")
	adminPassword   = flag.String("admin-password", "", "Password for the admin account")
)

// catalogEntry is one row of the ingredient catalog file.
type catalogEntry struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// defaultTags is the starter tag vocabulary.
var defaultTags = []domain.Tag{
	{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
	{Name: "Lunch", Color: "#49B64E", Slug: "lunch"},
	{Name: "Dinner", Color: "#8775D2", Slug: "dinner"},
}

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/Forkful/data")
	}

	dbFile := filepath.Join(dataPath, "forkful.db")
	fmt.Printf("Opening database at: %s\n", dbFile)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	s, err := store.Open(dbFile, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	seedTags(ctx, s)

	if *ingredientsFile != "" {
		seedIngredients(ctx, s, *ingredientsFile)
	}

	if *adminEmail != "" {
		if *adminPassword == "" {
			log.Fatal("--admin-password is required with --admin-email")
		}
		seedAdmin(ctx, s, *adminEmail, *adminPassword)
	}

	fmt.Println("Seeding complete!")
}

// seedTags creates the default tags, skipping ones that already exist.
func seedTags(ctx context.Context, s *store.Store) {
	fmt.Println("Seeding tags...")

	created := 0
	for _, t := range defaultTags {
		tag := t
		tag.ID = id.MustGenerate(id.PrefixTag)
		tag.CreatedAt = time.Now()

		if err := s.CreateTag(ctx, &tag); err != nil {
			if errors.Is(err, errors.ErrAlreadyExists) {
				continue
			}
			log.Printf("  Failed to create tag %s: %v", tag.Slug, err)
			continue
		}
		created++
	}

	fmt.Printf("  Created %d tags\n", created)
}

// seedIngredients loads the catalog file and inserts each entry.
func seedIngredients(ctx context.Context, s *store.Store, path string) {
	fmt.Printf("Seeding ingredients from %s...\n", path)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read ingredients file: %v", err)
	}

	var entries []catalogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Fatalf("Failed to parse ingredients file: %v", err)
	}

	created := 0
	for _, e := range entries {
		if e.Name == "" || e.MeasurementUnit == "" {
			log.Printf("  Skipping invalid entry: %+v", e)
			continue
		}

		ing := &domain.Ingredient{
			ID:              id.MustGenerate(id.PrefixIngredient),
			Name:            e.Name,
			MeasurementUnit: e.MeasurementUnit,
			CreatedAt:       time.Now(),
		}
		if err := s.CreateIngredient(ctx, ing); err != nil {
			log.Printf("  Failed to create ingredient %s: %v", e.Name, err)
			continue
		}
		created++
	}

	fmt.Printf("  Created %d of %d ingredients\n", created, len(entries))
}

// seedAdmin creates an admin account unless the email is taken.
func seedAdmin(ctx context.Context, s *store.Store, email, password string) {
	fmt.Printf("Creating admin account %s...\n", email)

	if existing, _ := s.GetUserByEmail(ctx, email); existing != nil {
		fmt.Println("  Account already exists, skipping")
		return
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	now := time.Now()
	admin := &domain.User{
		ID:           id.MustGenerate(id.PrefixUser),
		Email:        email,
		Username:     "admin",
		PasswordHash: passwordHash,
		FirstName:    "Admin",
		LastName:     "User",
		IsAdmin:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.CreateUser(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin account: %v", err)
	}

	fmt.Printf("  Created admin: %s\n", admin.ID)
}
