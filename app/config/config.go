package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"

	_ "github.com/lib/pq"
)

type Config struct {
	DB   *sql.DB
	SMTP SMTPConfig
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Configured reports whether every setting required to reach the SMTP server
// is present. A partially configured channel counts as unavailable.
func (s SMTPConfig) Configured() bool {
	return s.Host != "" && s.Port != 0 && s.Username != "" && s.Password != ""
}

var AppConfig *Config

func InitDB() {
	psqlInfo := os.Getenv("DATABASE_URL")
	if psqlInfo == "" {
		host := envOr("PGHOST", "localhost")
		port := envOr("PGPORT", "5432")
		user := envOr("PGUSER", "postgres")
		dbname := envOr("PGDATABASE", "resultdesk")
		psqlInfo = fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable", host, port, user, dbname)
		if pw := os.Getenv("PGPASSWORD"); pw != "" {
			psqlInfo += " password=" + pw
		}
		log.Printf("DATABASE_URL not set, connecting to %s:%s/%s", host, port, dbname)
	}

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Testing database connection...")
	if err = db.Ping(); err != nil {
		log.Printf("Database connection failed: %v", err)
		log.Println("Set DATABASE_URL or the PG* environment variables and try again.")
		log.Fatal("Cannot establish database connection")
	}

	AppConfig = &Config{
		DB:   db,
		SMTP: loadSMTPConfig(),
	}
	log.Println("Database connected successfully")
	if AppConfig.SMTP.Configured() {
		log.Println("Email configuration initialized")
	} else {
		log.Println("SMTP not configured, one-time codes will be disclosed in responses instead of emailed")
	}
}

func loadSMTPConfig() SMTPConfig {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	cfg := SMTPConfig{
		Host:     os.Getenv("SMTP_SERVER"),
		Port:     port,
		Username: os.Getenv("SMTP_USER"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetDB() *sql.DB {
	return AppConfig.DB
}
