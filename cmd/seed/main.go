package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/creatorlink/config"
	"github.com/oksasatya/creatorlink/internal/infrastructure/demo"
	"github.com/oksasatya/creatorlink/pkg/helpers"
)

// Seeds the accounts table with the demo accounts so the postgres identity
// backend answers the same logins as the in-process one.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	hash, err := helpers.HashPassword(cfg.DemoPassword)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	for _, s := range demo.Accounts {
		var id string
		err := db.QueryRow(`
			INSERT INTO accounts (email, password_hash, name, role, email_verified, onboarding_completed, company, follower_count, niche)
			VALUES ($1, $2, $3, $4, TRUE, $5, $6, $7, $8)
			ON CONFLICT (email) DO UPDATE SET
				password_hash = EXCLUDED.password_hash,
				name = EXCLUDED.name,
				role = EXCLUDED.role,
				onboarding_completed = EXCLUDED.onboarding_completed
			RETURNING id
		`, s.Email, hash, s.Name, string(s.Role), s.OnboardingCompleted, s.Company, s.FollowerCount, s.Niche).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed %s: %v", s.Email, err)
		}
		fmt.Printf("seeded account: id=%s email=%s role=%s\n", id, s.Email, s.Role)
	}
	fmt.Printf("all demo accounts share password=%s\n", cfg.DemoPassword)
}
