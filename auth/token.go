package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"fintrack-go-be/models"
)

// Purpose values for scoped tokens.
const PurposePasswordReset = "password-reset"

// How long a purpose-scoped token stays valid.
const purposeTTL = time.Hour

var (
	// ErrTokenExpired means the token was well formed and correctly signed
	// but its expiry has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers garbage input, bad signatures and wrong
	// signing methods.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrWrongPurpose means a purpose-scoped token was presented to a
	// different flow than it was issued for.
	ErrWrongPurpose = errors.New("token issued for a different purpose")
)

// Claims is the identity carried by every bearer token.
type Claims struct {
	UserID   uuid.UUID `json:"-"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Purpose  string    `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 bearer tokens. It is stateless
// beyond the signing secret and safe for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue signs a session token for the given user.
func (ts *TokenService) Issue(user *models.User) (string, error) {
	return ts.sign(user, "", ts.ttl)
}

// IssuePurpose signs a short-lived token tied to a single flow, e.g. the
// password-reset link.
func (ts *TokenService) IssuePurpose(user *models.User, purpose string) (string, error) {
	return ts.sign(user, purpose, purposeTTL)
}

func (ts *TokenService) sign(user *models.User, purpose string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: user.Username,
		Email:    user.Email,
		Purpose:  purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.secret)
}

// Verify parses and checks a session token. Purpose-scoped tokens are
// rejected here; they only work through VerifyPurpose.
func (ts *TokenService) Verify(tokenStr string) (*Claims, error) {
	claims, err := ts.parse(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != "" {
		return nil, ErrWrongPurpose
	}
	return claims, nil
}

// VerifyPurpose checks a purpose-scoped token against the expected flow.
func (ts *TokenService) VerifyPurpose(tokenStr, purpose string) (*Claims, error) {
	claims, err := ts.parse(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != purpose {
		return nil, ErrWrongPurpose
	}
	return claims, nil
}

func (ts *TokenService) parse(tokenStr string) (*Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return ts.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	claims.UserID = uid
	return &claims, nil
}
