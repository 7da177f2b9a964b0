// Where: cli/internal/domain/env/secret.go
// What: Random secret material for the runtime environment file.
// Why: Every bootstrap must write fresh, unpredictable keys and token secrets.
package env

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// Byte lengths of each generated secret before hex encoding.
const (
	CipherKeyBytes     = 32
	CipherIVKeyBytes   = 16
	TokenDBPassBytes   = 64
	TokenSecretBytes   = 64
	minimumSecretBytes = 1
)

// randReader is the entropy source. Tests swap it to simulate failures.
var randReader io.Reader = rand.Reader

// GenerateToken returns a hex string carrying byteLength bytes read from a
// cryptographically secure source.
func GenerateToken(byteLength int) (string, error) {
	if byteLength < minimumSecretBytes {
		return "", fmt.Errorf("%w: %d", ErrInvalidTokenLength, byteLength)
	}
	buf := make([]byte, byteLength)
	if _, err := io.ReadFull(randReader, buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Secrets holds the six independently generated values written on bootstrap.
type Secrets struct {
	CipherKey          string
	CipherIVKey        string
	TokenDBPassword    string
	AccessTokenSecret  string
	RefreshTokenSecret string
	ResetTokenSecret   string
}

// GenerateSecrets draws a new Secrets set. Values are never derived from one
// another.
func GenerateSecrets() (Secrets, error) {
	var s Secrets
	targets := []struct {
		dst  *string
		size int
	}{
		{&s.CipherKey, CipherKeyBytes},
		{&s.CipherIVKey, CipherIVKeyBytes},
		{&s.TokenDBPassword, TokenDBPassBytes},
		{&s.AccessTokenSecret, TokenSecretBytes},
		{&s.RefreshTokenSecret, TokenSecretBytes},
		{&s.ResetTokenSecret, TokenSecretBytes},
	}
	for _, target := range targets {
		token, err := GenerateToken(target.size)
		if err != nil {
			return Secrets{}, err
		}
		*target.dst = token
	}
	return s, nil
}

// String hides the values so a stray %v never leaks them.
func (s Secrets) String() string {
	return "env.Secrets{redacted}"
}

// GoString hides the values from %#v as well.
func (s Secrets) GoString() string {
	return s.String()
}
