package auth

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnauthorized is returned for every credential failure: missing token,
// malformed token, expired token, bad signature, or a missing user-id claim.
// Callers must not distinguish between these cases.
var ErrUnauthorized = errors.New("auth: invalid credential")

// Verifier validates bearer tokens issued by the host application and extracts
// the canonical user identifier from a configured claim.
type Verifier struct {
	secret []byte
	claim  string
}

func NewVerifier(secret string, userIDClaim string) *Verifier {
	return &Verifier{secret: []byte(secret), claim: userIDClaim}
}

// Verify checks the token signature and expiry, then returns the user id held
// in the configured claim.
func (v *Verifier) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrUnauthorized
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return v.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrUnauthorized
	}

	userID := claimAsString(claims[v.claim])
	if userID == "" {
		return "", ErrUnauthorized
	}
	return userID, nil
}

// claimAsString normalizes the user-id claim; host applications store ids as
// strings or as JSON numbers depending on their schema.
func claimAsString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	default:
		return ""
	}
}
