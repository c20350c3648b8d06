package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avelichko/scribe/internal/auth"
	"github.com/avelichko/scribe/internal/snowflake"
)

// Set via -ldflags at build time.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "migrate":
		if hasFlag("--help", os.Args[2:]) {
			fmt.Println("Usage: scribe-cli migrate")
			fmt.Println()
			fmt.Println("Run database migrations from the migrations/ directory.")
			fmt.Println()
			fmt.Println("Environment:")
			fmt.Println("  DATABASE_URL  PostgreSQL connection string (required)")
			return
		}
		os.Exit(runMigrate())
	case "seed":
		if hasFlag("--help", os.Args[2:]) {
			fmt.Println("Usage: scribe-cli seed")
			fmt.Println()
			fmt.Println("Seed the database with demo data: 2 users and a few posts.")
			fmt.Println()
			fmt.Println("Environment:")
			fmt.Println("  DATABASE_URL  PostgreSQL connection string (required)")
			return
		}
		os.Exit(runSeed())
	case "health":
		if hasFlag("--help", os.Args[2:]) {
			fmt.Println("Usage: scribe-cli health")
			fmt.Println()
			fmt.Println("Check if the Scribe server is running.")
			fmt.Println()
			fmt.Println("Environment:")
			fmt.Println("  SERVER_URL  Server base URL (default: http://localhost:4000)")
			return
		}
		os.Exit(runHealth())
	case "version", "--version":
		fmt.Printf("scribe-cli %s\n", version)
	case "help", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: scribe-cli <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  migrate   Run database migrations")
	fmt.Println("  seed      Seed demo data")
	fmt.Println("  health    Check server health")
	fmt.Println("  version   Print version")
}

func hasFlag(flag string, args []string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

func runMigrate() int {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		return 1
	}

	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		return 1
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		fmt.Fprintf(os.Stderr, "migrate up: %v\n", err)
		return 1
	}
	fmt.Println("migrations applied")
	return 0
}

func runSeed() int {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "postgres: %v\n", err)
		return 1
	}
	defer pool.Close()

	sf, err := snowflake.NewGenerator(2)
	if err != nil {
		fmt.Fprintf(os.Stderr, "snowflake: %v\n", err)
		return 1
	}

	type seedUser struct {
		username, name, password string
		email                    *string
	}
	aliceEmail := "alice@example.com"
	seedUsers := []seedUser{
		{username: "alice", name: "Alice Carter", password: "password1", email: &aliceEmail},
		{username: "bob", name: "Bob Reyes", password: "password2"},
	}

	now := time.Now()
	ids := make(map[string]int64)

	for _, u := range seedUsers {
		hash, err := auth.HashPassword(u.password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hashing password: %v\n", err)
			return 1
		}
		id := sf.Generate().Int64()
		_, err = pool.Exec(ctx,
			`INSERT INTO users (id, username, name, email, password_hash, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (username) DO NOTHING`,
			id, u.username, u.name, u.email, hash, now, now,
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "seeding user %s: %v\n", u.username, err)
			return 1
		}
		ids[u.username] = id
	}

	posts := []struct {
		author, title, content string
	}{
		{"alice", "Hello, world", "First post on the demo instance."},
		{"alice", "On writing less", "Short posts are underrated."},
		{"bob", "Checking in", "Bob was here."},
	}
	for _, p := range posts {
		_, err := pool.Exec(ctx,
			`INSERT INTO posts (id, title, image, content, author_id, created_at, updated_at)
			 VALUES ($1, $2, NULL, $3, $4, $5, $6)`,
			sf.Generate().Int64(), p.title, p.content, ids[p.author], now, now,
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "seeding post %q: %v\n", p.title, err)
			return 1
		}
	}

	fmt.Println("seeded 2 users and 3 posts (passwords: password1, password2)")
	return 0
}

func runHealth() int {
	base := os.Getenv("SERVER_URL")
	if base == "" {
		base = "http://localhost:4000"
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(base + "/health")
	if err != nil {
		fmt.Fprintf(os.Stderr, "server unreachable: %v\n", err)
		return 1
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "unhealthy: %d %s\n", resp.StatusCode, body)
		return 1
	}
	fmt.Printf("ok: %s\n", body)
	return 0
}
