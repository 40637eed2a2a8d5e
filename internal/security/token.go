package security

import (
	"crypto/subtle"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// TokenVerifier authorizes bearer tokens on the mutating API endpoints.
// Three credential forms are accepted:
//   - the shared secret itself, compared in constant time
//   - an HS256 JWT signed with the shared secret, for callers that
//     prefer short-lived service tokens
//   - when the operator configures a bcrypt hash instead of the
//     plaintext secret, the presented token is checked against the hash
type TokenVerifier struct {
	token     string
	tokenHash string
}

// NewTokenVerifier creates a verifier from the configured secret and/or
// bcrypt hash. Either may be empty; with both empty every request is
// rejected.
func NewTokenVerifier(token, tokenHash string) *TokenVerifier {
	return &TokenVerifier{token: token, tokenHash: tokenHash}
}

// Configured reports whether any credential is set
func (v *TokenVerifier) Configured() bool {
	return v.token != "" || v.tokenHash != ""
}

// Verify checks a presented bearer token
func (v *TokenVerifier) Verify(bearer string) bool {
	if bearer == "" {
		return false
	}

	if v.token != "" {
		if subtle.ConstantTimeCompare([]byte(bearer), []byte(v.token)) == 1 {
			return true
		}
		if v.verifySignedToken(bearer) {
			return true
		}
	}

	if v.tokenHash != "" {
		if bcrypt.CompareHashAndPassword([]byte(v.tokenHash), []byte(bearer)) == nil {
			return true
		}
	}

	return false
}

// verifySignedToken accepts an HS256 JWT signed with the shared secret.
// Expiry and not-before claims are enforced by the parser.
func (v *TokenVerifier) verifySignedToken(raw string) bool {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	token, err := parser.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(v.token), nil
	})
	return err == nil && token.Valid
}
