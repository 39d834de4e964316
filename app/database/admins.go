package database

import (
	"database/sql"
	"log"
	"resultdesk/app/models"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
	DefaultAdminEmail    = "admin@resultdesk.local"
)

// hashPassword hashes a password using bcrypt
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func GetAdminByUsername(db *sql.DB, username string) (*models.Admin, error) {
	admin := &models.Admin{}
	query := `SELECT username, password_hash, email, created_at
			  FROM admins WHERE username = $1`

	err := db.QueryRow(query, username).Scan(
		&admin.Username, &admin.PasswordHash, &admin.Email, &admin.CreatedAt,
	)

	if err != nil {
		return nil, err
	}
	return admin, nil
}

func CreateAdmin(db *sql.DB, username, password, email string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	query := `INSERT INTO admins (username, password_hash, email) VALUES ($1, $2, $3)`
	_, err = db.Exec(query, username, hash, email)
	return err
}

func UpdateAdminPassword(db *sql.DB, username, hashedPassword string) error {
	query := `UPDATE admins SET password_hash = $1 WHERE username = $2`
	_, err := db.Exec(query, hashedPassword, username)
	return err
}

func SetAdminEmail(db *sql.DB, username, email string) error {
	query := `UPDATE admins SET email = $1 WHERE username = $2`
	_, err := db.Exec(query, email, username)
	return err
}

func GetAdminEmail(db *sql.DB, username string) (string, error) {
	var email string
	err := db.QueryRow(`SELECT email FROM admins WHERE username = $1`, username).Scan(&email)
	if err != nil {
		return "", err
	}
	return email, nil
}

// SetSecurityProfile replaces the admin's question/answer profile wholesale.
func SetSecurityProfile(db *sql.DB, username, question, answerHash string) error {
	query := `INSERT INTO admin_security (username, question, answer_hash)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (username)
			  DO UPDATE SET question = EXCLUDED.question, answer_hash = EXCLUDED.answer_hash`
	_, err := db.Exec(query, username, question, answerHash)
	return err
}

func GetSecurityProfile(db *sql.DB, username string) (*models.SecurityProfile, error) {
	profile := &models.SecurityProfile{}
	query := `SELECT username, question, answer_hash FROM admin_security WHERE username = $1`

	err := db.QueryRow(query, username).Scan(
		&profile.Username, &profile.Question, &profile.AnswerHash,
	)

	if err != nil {
		return nil, err
	}
	return profile, nil
}

// EnsureDefaultAdmin seeds the fixed default account when the admins table is
// empty, so a fresh deployment has a first login. The default credentials must
// be rotated immediately after.
func EnsureDefaultAdmin(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if err := CreateAdmin(db, DefaultAdminUsername, DefaultAdminPassword, DefaultAdminEmail); err != nil {
		return err
	}
	log.Printf("No admin accounts found, created default account %q (change its password now)", DefaultAdminUsername)
	return nil
}
