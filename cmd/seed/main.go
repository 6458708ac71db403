package main

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/arkadata/userhub/config"
)

// Seeds a handful of demo users for local development. Re-running is safe;
// existing emails are left untouched.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	age := func(n int) *int { return &n }
	users := []struct {
		email string
		name  string
		age   *int
	}{
		{"ada@example.com", "Ada Lovelace", age(36)},
		{"grace@example.com", "Grace Hopper", age(85)},
		{"alan@example.com", "Alan Turing", nil},
	}

	for _, u := range users {
		res, err := db.Exec(`
			INSERT INTO users (id, email, name, age)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (email) DO NOTHING
		`, uuid.NewString(), u.email, u.name, u.age)
		if err != nil {
			log.Fatalf("failed to seed %s: %v", u.email, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			fmt.Printf("seeded user: email=%s name=%s\n", u.email, u.name)
		} else {
			fmt.Printf("user already present: email=%s\n", u.email)
		}
	}
}
