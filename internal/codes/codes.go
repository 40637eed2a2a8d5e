// Package codes generates the opaque identifiers used for invite links.
package codes

import (
	"crypto/rand"
	"fmt"
	"strings"
)

const (
	// Alphabet is the character set for all invite codes
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	// CodeLength is the length of a full invite code
	CodeLength = 8

	// ShortCodeLength is the length of a short alias code.
	// Deliberately small for shareability; collisions are handled by the caller.
	ShortCodeLength = 4
)

// Generate produces a random code of the given length, each character drawn
// uniformly from the alphabet. Uniqueness is the caller's responsibility.
func Generate(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid code length: %d", length)
	}

	// Rejection sampling keeps the draw uniform: 248 is the largest
	// multiple of 62 below 256, so bytes at or above it are discarded.
	const max = byte(248)

	out := make([]byte, 0, length)
	buf := make([]byte, length*2)
	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		for _, b := range buf {
			if b >= max {
				continue
			}
			out = append(out, Alphabet[int(b)%len(Alphabet)])
			if len(out) == length {
				break
			}
		}
	}
	return string(out), nil
}

// GenerateCode produces a full-length invite code
func GenerateCode() (string, error) {
	return Generate(CodeLength)
}

// GenerateShortCode produces a short alias code
func GenerateShortCode() (string, error) {
	return Generate(ShortCodeLength)
}

// Valid reports whether a code is non-empty and drawn from the alphabet
func Valid(code string) bool {
	if code == "" {
		return false
	}
	for _, c := range code {
		if !strings.ContainsRune(Alphabet, c) {
			return false
		}
	}
	return true
}
