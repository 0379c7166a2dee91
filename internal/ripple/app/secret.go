package app

import (
	"crypto/rand"
	"os"
	"path/filepath"
)

const tokenSecretLen = 32

// loadOrGenerateTokenSecret reads the session token HMAC secret from file,
// generating and persisting a fresh one on first boot so restarts don't
// invalidate every outstanding session.
func loadOrGenerateTokenSecret(path string) ([]byte, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		secret := make([]byte, tokenSecretLen)
		if _, err := rand.Read(secret); err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, secret, 0600); err != nil {
			return nil, err
		}
		return secret, nil
	}

	return os.ReadFile(path)
}
