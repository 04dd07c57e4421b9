package utils // package utils provides helpers for minting operator tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// OperatorToken is a signed HS256 JWT and its expiry.
type OperatorToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewOperatorToken signs a token for subject carrying the given role.  The
// claims are sub, role, exp and iat.
func NewOperatorToken(secret, subject, role string, ttl time.Duration) (OperatorToken, error) {
	if secret == "" {
		return OperatorToken{}, errors.New("empty signing secret")
	}
	if ttl <= 0 {
		return OperatorToken{}, errors.New("token ttl must be positive")
	}
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return OperatorToken{}, err
	}
	return OperatorToken{Token: signed, Exp: exp}, nil
}
