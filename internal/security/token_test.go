package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func TestVerifyPlaintextToken(t *testing.T) {
	v := NewTokenVerifier("secret-token", "")

	tests := []struct {
		name   string
		bearer string
		want   bool
	}{
		{"exact match", "secret-token", true},
		{"wrong token", "wrong-token", false},
		{"empty token", "", false},
		{"prefix only", "secret", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.Verify(tt.bearer); got != tt.want {
				t.Errorf("Verify(%q) = %v, want %v", tt.bearer, got, tt.want)
			}
		})
	}
}

func TestVerifyBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-token"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	v := NewTokenVerifier("", string(hash))

	if !v.Verify("secret-token") {
		t.Error("Verify() rejected the correct token against its hash")
	}
	if v.Verify("wrong-token") {
		t.Error("Verify() accepted a wrong token against the hash")
	}
}

func TestVerifySignedToken(t *testing.T) {
	v := NewTokenVerifier("signing-secret", "")

	signed := func(claims jwt.MapClaims, secret string, method jwt.SigningMethod) string {
		t.Helper()
		token := jwt.NewWithClaims(method, claims)
		raw, err := token.SignedString([]byte(secret))
		if err != nil {
			t.Fatal(err)
		}
		return raw
	}

	valid := signed(jwt.MapClaims{
		"sub": "invite-bot",
		"exp": time.Now().Add(time.Hour).Unix(),
	}, "signing-secret", jwt.SigningMethodHS256)
	if !v.Verify(valid) {
		t.Error("Verify() rejected a valid HS256 token")
	}

	expired := signed(jwt.MapClaims{
		"sub": "invite-bot",
		"exp": time.Now().Add(-time.Hour).Unix(),
	}, "signing-secret", jwt.SigningMethodHS256)
	if v.Verify(expired) {
		t.Error("Verify() accepted an expired token")
	}

	wrongKey := signed(jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}, "other-secret", jwt.SigningMethodHS256)
	if v.Verify(wrongKey) {
		t.Error("Verify() accepted a token signed with the wrong key")
	}
}

func TestVerifyUnconfigured(t *testing.T) {
	v := NewTokenVerifier("", "")

	if v.Configured() {
		t.Error("Configured() = true with no credentials set")
	}
	if v.Verify("anything") {
		t.Error("Verify() accepted a token with no credentials configured")
	}
}
