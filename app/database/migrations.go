package database

import (
	"database/sql"
	"fmt"
	"log"
)

// CreateTables creates the base schema. All statements are idempotent so the
// service can run them on every startup.
func CreateTables(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS admins (
			username TEXT PRIMARY KEY,
			password_hash TEXT NOT NULL,
			email TEXT DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS admin_security (
			username TEXT PRIMARY KEY REFERENCES admins(username) ON DELETE CASCADE,
			question TEXT NOT NULL,
			answer_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS students (
			roll TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			class TEXT NOT NULL,
			dob TEXT DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS marks (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			roll TEXT NOT NULL REFERENCES students(roll) ON DELETE CASCADE,
			subject TEXT NOT NULL,
			exam_type TEXT NOT NULL,
			marks DOUBLE PRECISION NOT NULL,
			max_marks DOUBLE PRECISION DEFAULT 100,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_marks_roll ON marks(roll)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %v", err)
		}
	}
	return nil
}

// RunMigrations checks and applies necessary schema updates
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	// 1. Add email column to admins if not exists
	if err := addColumnIfMissing(db, "admins", "email", "TEXT DEFAULT ''"); err != nil {
		return err
	}

	// 2. Add dob column to students if not exists
	if err := addColumnIfMissing(db, "students", "dob", "TEXT DEFAULT ''"); err != nil {
		return err
	}

	// 3. Add max_marks column to marks if not exists
	if err := addColumnIfMissing(db, "marks", "max_marks", "DOUBLE PRECISION DEFAULT 100"); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func addColumnIfMissing(db *sql.DB, table, column, definition string) error {
	query := fmt.Sprintf(`
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1
				FROM information_schema.columns
				WHERE table_name = '%s'
				AND column_name = '%s'
			) THEN
				ALTER TABLE %s ADD COLUMN %s %s;
				RAISE NOTICE 'Added %s column to %s';
			END IF;
		END $$;
	`, table, column, table, column, definition, column, table)

	if _, err := db.Exec(query); err != nil {
		log.Printf("Failed to run migration for %s.%s: %v", table, column, err)
		return err
	}
	return nil
}
