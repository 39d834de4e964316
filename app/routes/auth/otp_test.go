package auth

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*ChallengeStore, *time.Time) {
	t.Helper()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewChallengeStore(OTPTTL)
	store.now = func() time.Time { return now }
	return store, &now
}

func TestIssueGeneratesSixDigitCode(t *testing.T) {
	store, _ := newTestStore(t)

	code, err := store.Issue("admin")
	require.NoError(t, err)
	require.Regexp(t, regexp.MustCompile(`^\d{6}$`), code)
}

func TestVerifyWithinTTLSucceedsOnce(t *testing.T) {
	store, now := newTestStore(t)

	code, err := store.Issue("admin")
	require.NoError(t, err)

	// One second before expiry the code is still good
	*now = now.Add(OTPTTL - time.Second)
	require.NoError(t, store.Verify("admin", code))

	// Single use: the same code immediately fails with no live challenge
	require.ErrorIs(t, store.Verify("admin", code), ErrNoChallenge)
}

func TestVerifyAfterTTLExpiresAndDiscards(t *testing.T) {
	store, now := newTestStore(t)

	code, err := store.Issue("admin")
	require.NoError(t, err)

	*now = now.Add(OTPTTL + time.Second)
	require.ErrorIs(t, store.Verify("admin", code), ErrExpired)

	// The expired challenge was discarded, the correct code can never be retried
	require.ErrorIs(t, store.Verify("admin", code), ErrNoChallenge)
}

func TestVerifyMismatchKeepsChallengeLive(t *testing.T) {
	store, _ := newTestStore(t)

	code, err := store.Issue("admin")
	require.NoError(t, err)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	require.ErrorIs(t, store.Verify("admin", wrong), ErrCodeMismatch)

	// A retry with the right code still works
	require.NoError(t, store.Verify("admin", code))
}

func TestReissueInvalidatesPriorChallenge(t *testing.T) {
	store, _ := newTestStore(t)

	first, err := store.Issue("admin")
	require.NoError(t, err)
	second, err := store.Issue("admin")
	require.NoError(t, err)

	if first == second {
		t.Skip("collision between two generated codes")
	}

	require.ErrorIs(t, store.Verify("admin", first), ErrCodeMismatch)
	require.NoError(t, store.Verify("admin", second))
}

func TestVerifyUnknownUser(t *testing.T) {
	store, _ := newTestStore(t)

	require.ErrorIs(t, store.Verify("nobody", "123456"), ErrNoChallenge)
}

func TestVerifyTrimsInput(t *testing.T) {
	store, _ := newTestStore(t)

	code, err := store.Issue("admin")
	require.NoError(t, err)
	require.NoError(t, store.Verify("admin", "  "+code+" "))
}

func TestChallengesAreIndependentPerUsername(t *testing.T) {
	store, _ := newTestStore(t)

	codeA, err := store.Issue("alice")
	require.NoError(t, err)
	_, err = store.Issue("bob")
	require.NoError(t, err)

	require.NoError(t, store.Verify("alice", codeA))
	require.ErrorIs(t, store.Verify("alice", codeA), ErrNoChallenge)
}

func TestSweepEvictsOnlyExpired(t *testing.T) {
	store, now := newTestStore(t)

	_, err := store.Issue("old")
	require.NoError(t, err)

	*now = now.Add(OTPTTL / 2)
	fresh, err := store.Issue("fresh")
	require.NoError(t, err)

	*now = now.Add(OTPTTL/2 + time.Second)
	require.Equal(t, 1, store.Sweep())
	require.Equal(t, 0, store.Sweep())

	require.ErrorIs(t, store.Verify("old", "123456"), ErrNoChallenge)
	require.NoError(t, store.Verify("fresh", fresh))
}
