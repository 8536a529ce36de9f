package auth

import (
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

// TokenSigner mints and verifies RS256 access tokens carrying the session
// identifier as a "sid" claim.
type TokenSigner struct {
	key    jwk.Key
	public jwk.Key
	issuer string
	ttl    time.Duration
}

// NewTokenSigner wraps the RSA private key for signing and verification.
func NewTokenSigner(priv *rsa.PrivateKey, issuer string, ttl time.Duration) (*TokenSigner, error) {
	key, err := jwk.Import(priv)
	if err != nil {
		return nil, fmt.Errorf("failed to convert private key to JWK: %w", err)
	}

	if err := key.Set(jwk.AlgorithmKey, jwa.RS256()); err != nil {
		return nil, fmt.Errorf("failed to set algorithm: %w", err)
	}

	public, err := jwk.PublicKeyOf(key)
	if err != nil {
		return nil, fmt.Errorf("failed to derive public key: %w", err)
	}

	return &TokenSigner{
		key:    key,
		public: public,
		issuer: issuer,
		ttl:    ttl,
	}, nil
}

// Sign builds and signs an access token for the user and session.
func (ts *TokenSigner) Sign(userID, sessionID string) (string, error) {
	now := time.Now()

	token, err := jwt.NewBuilder().
		Subject(userID).
		Issuer(ts.issuer).
		IssuedAt(now).
		Expiration(now.Add(ts.ttl)).
		Claim("sid", sessionID).
		Build()
	if err != nil {
		return "", err
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.RS256(), ts.key))
	if err != nil {
		return "", err
	}

	return string(signed), nil
}

// Verify parses and validates a signed access token and returns the session
// identifier from its "sid" claim.
func (ts *TokenSigner) Verify(raw string) (string, error) {
	token, err := jwt.Parse(
		[]byte(raw),
		jwt.WithKey(jwa.RS256(), ts.public),
		jwt.WithIssuer(ts.issuer),
	)
	if err != nil {
		return "", err
	}

	var sid any
	if err := token.Get("sid", &sid); err != nil {
		return "", fmt.Errorf("token missing sid claim")
	}
	s, ok := sid.(string)
	if !ok {
		return "", fmt.Errorf("token sid claim is not a string")
	}

	return s, nil
}
