package helpers

import (
	"crypto/sha256"
	"crypto/subtle"
	"strings"
)

const bearerPrefix = "Bearer "

// BearerToken extracts the token of an "Authorization: Bearer <token>" header value.
// The scheme is case-sensitive and must be followed by a single space.
func BearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimPrefix(header, bearerPrefix)
	if token == "" {
		return "", false
	}
	return token, true
}

// TokenMatches compares token with secret in constant time. Both sides are hashed first
// so the comparison does not depend on their lengths.
func TokenMatches(token, secret string) bool {
	if secret == "" {
		return false
	}
	tokenDigest := sha256.Sum256([]byte(token))
	secretDigest := sha256.Sum256([]byte(secret))
	return subtle.ConstantTimeCompare(tokenDigest[:], secretDigest[:]) == 1
}
