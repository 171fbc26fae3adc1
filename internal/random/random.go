// Package random generates opaque refresh-token values.
package random

import (
	"crypto/rand"
	"fmt"
)

// RefreshTokenLength is the fixed length of generated token values.
const RefreshTokenLength = 23

// 64 symbols, so a random byte maps onto the alphabet without modulo bias.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz$%&._-+)=?*#"

// String returns a fixed-length random string drawn from the alphabet using
// a cryptographically secure source.
func String(size int) (string, error) {
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf), nil
}
