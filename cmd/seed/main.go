// Command seed populates the development database with fake data.
package main

import (
	"flag"
	"log"

	"earshot/internal/config"
	"earshot/internal/database"
	"earshot/internal/seed"
)

func main() {
	users := flag.Int("users", 10, "number of users to create")
	episodes := flag.Int("episodes", 20, "number of episodes to create")
	books := flag.Int("books", 8, "number of books to create")
	clean := flag.Bool("clean", false, "delete existing data first")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if _, err := seed.EnsureAdmin(db, cfg); err != nil {
		log.Fatalf("Failed to ensure admin account: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *users,
		NumEpisodes: *episodes,
		NumBooks:    *books,
		ShouldClean: *clean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
