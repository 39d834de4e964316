package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"
)

// OTPTTL is how long an issued code stays valid.
const OTPTTL = 300 * time.Second

const otpDigits = 6

var (
	ErrNoChallenge  = errors.New("no active one-time code for this user")
	ErrExpired      = errors.New("one-time code has expired")
	ErrCodeMismatch = errors.New("incorrect one-time code")
)

type challenge struct {
	code     string
	issuedAt time.Time
}

// ChallengeStore holds at most one live one-time code per username. Codes are
// kept in memory only: they are worthless after five minutes and must not
// survive a restart.
type ChallengeStore struct {
	mu         sync.Mutex
	ttl        time.Duration
	now        func() time.Time
	challenges map[string]challenge
}

func NewChallengeStore(ttl time.Duration) *ChallengeStore {
	return &ChallengeStore{
		ttl:        ttl,
		now:        time.Now,
		challenges: make(map[string]challenge),
	}
}

// Challenges is the store used by the HTTP handlers.
var Challenges = NewChallengeStore(OTPTTL)

func generateCode() (string, error) {
	limit := big.NewInt(1)
	for i := 0; i < otpDigits; i++ {
		limit.Mul(limit, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpDigits, n), nil
}

// Issue generates a fresh code for the username. Any prior live challenge for
// the same username is overwritten, last issued wins.
func (s *ChallengeStore) Issue(username string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.challenges[username] = challenge{code: code, issuedAt: s.now()}
	s.mu.Unlock()
	return code, nil
}

// Verify checks the supplied code against the live challenge for the username.
// An expired challenge is discarded even though verification fails, so it can
// never be retried. A matching code consumes the challenge (single use). A
// mismatch within the window leaves the challenge live for another attempt.
func (s *ChallengeStore) Verify(username, input string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.challenges[username]
	if !ok {
		return ErrNoChallenge
	}
	if s.now().Sub(c.issuedAt) > s.ttl {
		delete(s.challenges, username)
		return ErrExpired
	}
	if strings.TrimSpace(input) != c.code {
		return ErrCodeMismatch
	}
	delete(s.challenges, username)
	return nil
}

// Sweep evicts expired challenges and returns how many were removed.
func (s *ChallengeStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	now := s.now()
	for username, c := range s.challenges {
		if now.Sub(c.issuedAt) > s.ttl {
			delete(s.challenges, username)
			removed++
		}
	}
	return removed
}
