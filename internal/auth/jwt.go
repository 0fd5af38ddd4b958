package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTTL = time.Hour

// ErrNoSecret means the signing secret was absent at construction. This
// is a configuration error; the process should refuse to start on it.
var ErrNoSecret = errors.New("token signing secret is not configured")

// Issuer signs caller-supplied claims with a server-held HS256 secret.
// It is a pure function of its inputs: no user record is consulted, and
// nothing in this service verifies the tokens it hands out.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
	}, nil
}

// Issue signs the claims payload as-is, adding iat and exp. Caller
// claims never override the expiry.
func (i *Issuer) Issue(claims map[string]any) (string, error) {
	now := time.Now().UTC()

	mapped := jwt.MapClaims{}

	for k, v := range claims {
		mapped[k] = v
	}

	mapped["iat"] = jwt.NewNumericDate(now)
	mapped["exp"] = jwt.NewNumericDate(now.Add(i.ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapped)

	signed, err := token.SignedString(i.secret)

	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}
