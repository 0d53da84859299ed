package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack-go-be/models"
)

func testUser() *models.User {
	u := &models.User{Username: "alice", Email: "alice@example.com"}
	u.ID = uuid.New()
	return u
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	ts := NewTokenService("secret", time.Hour)
	user := testUser()

	token, err := ts.Issue(user)
	require.NoError(t, err)

	claims, err := ts.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Empty(t, claims.Purpose)
}

func TestVerifyExpired(t *testing.T) {
	ts := NewTokenService("secret", -time.Minute)

	token, err := ts.Issue(testUser())
	require.NoError(t, err)

	_, err = ts.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyMalformed(t *testing.T) {
	ts := NewTokenService("secret", time.Hour)

	for _, garbage := range []string{"", "not-a-token", "a.b.c"} {
		_, err := ts.Verify(garbage)
		assert.ErrorIs(t, err, ErrTokenInvalid, "input %q", garbage)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-one", time.Hour)
	verifier := NewTokenService("secret-two", time.Hour)

	token, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestPurposeScopedTokens(t *testing.T) {
	ts := NewTokenService("secret", time.Hour)
	user := testUser()

	reset, err := ts.IssuePurpose(user, PurposePasswordReset)
	require.NoError(t, err)

	// the reset token only works through VerifyPurpose with the right flow
	_, err = ts.Verify(reset)
	assert.ErrorIs(t, err, ErrWrongPurpose)
	_, err = ts.VerifyPurpose(reset, "email-change")
	assert.ErrorIs(t, err, ErrWrongPurpose)

	claims, err := ts.VerifyPurpose(reset, PurposePasswordReset)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	// and a plain session token never satisfies a purpose check
	session, err := ts.Issue(user)
	require.NoError(t, err)
	_, err = ts.VerifyPurpose(session, PurposePasswordReset)
	assert.ErrorIs(t, err, ErrWrongPurpose)
}
