package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Normalizes legacy outcome strings in place: trims whitespace and
// lowercases the void sentinels so the derivations recognize them.
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Build connection string
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword, dbName)

	// Connect to database
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	log.Println("Connected to database successfully")

	// Step 1: Trim stray whitespace
	result, err := db.Exec(`
		UPDATE bets
		SET outcome = TRIM(outcome)
		WHERE outcome IS NOT NULL AND outcome <> TRIM(outcome)
	`)
	if err != nil {
		log.Fatalf("Failed to trim outcomes: %v", err)
	}
	rows, _ := result.RowsAffected()
	log.Printf("Trimmed %d outcomes", rows)

	// Step 2: Normalize NULL outcomes to the empty string
	result, err = db.Exec(`
		UPDATE bets
		SET outcome = ''
		WHERE outcome IS NULL
	`)
	if err != nil {
		log.Fatalf("Failed to normalize null outcomes: %v", err)
	}
	rows, _ = result.RowsAffected()
	log.Printf("Normalized %d null outcomes", rows)

	// Step 3: Lowercase the void sentinels
	result, err = db.Exec(`
		UPDATE bets
		SET outcome = LOWER(outcome)
		WHERE LOWER(outcome) IN ('incomplete', 'expired') AND outcome <> LOWER(outcome)
	`)
	if err != nil {
		log.Fatalf("Failed to normalize sentinels: %v", err)
	}
	rows, _ = result.RowsAffected()
	log.Printf("Lowercased %d sentinel outcomes", rows)

	log.Println("Outcome backfill completed successfully")
}
