package auth

import (
	"crypto/rand"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Principal kinds carried in session claims.
const (
	KindAdmin   = "admin"
	KindStudent = "student"
)

// Authentication methods carried in session claims.
const (
	MethodPassword         = "password"
	MethodOTP              = "otp"
	MethodSecurityQuestion = "security_question"
	MethodRollDOB          = "roll_dob"
)

const sessionTTL = 24 * time.Hour

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// NormalizeAnswer canonicalizes a security answer before hashing or comparing,
// so "  Blue " and "blue" verify against the same digest.
func NormalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

func HashAnswer(answer string) (string, error) {
	return HashPassword(NormalizeAnswer(answer))
}

func CheckAnswerHash(answer, hash string) bool {
	return CheckPasswordHash(NormalizeAnswer(answer), hash)
}

// SessionClaims is the explicit session context: who authenticated, what kind
// of principal they are, and which proof method they used.
type SessionClaims struct {
	Principal string `json:"principal"`
	Kind      string `json:"kind"`
	Method    string `json:"method"`
	jwt.RegisteredClaims
}

var (
	jwtSecret     []byte
	jwtSecretOnce sync.Once
)

// getJWTSecret returns the signing key. Without JWT_SECRET a random key is
// generated once per process, so sessions cannot outlive the process.
func getJWTSecret() []byte {
	jwtSecretOnce.Do(func() {
		if secret := os.Getenv("JWT_SECRET"); secret != "" {
			jwtSecret = []byte(secret)
			return
		}
		jwtSecret = make([]byte, 32)
		if _, err := rand.Read(jwtSecret); err != nil {
			log.Fatal("Failed to generate session signing key:", err)
		}
		log.Println("JWT_SECRET not set, sessions will not survive a restart")
	})
	return jwtSecret
}

func GenerateSession(principal, kind, method string) (string, error) {
	claims := SessionClaims{
		Principal: principal,
		Kind:      kind,
		Method:    method,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "resultdesk",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getJWTSecret())
}

func ValidateSession(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return getJWTSecret(), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrInvalidKey
}
