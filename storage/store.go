// Package storage holds named save slots. Values are opaque bytes, usually produced by the codec package.
package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Store is a key-value backend for save slots.
type Store interface {
	Save(ctx context.Context, key string, data []byte) error
	// Load returns found=false, and no error, for a missing key.
	Load(ctx context.Context, key string) (data []byte, found bool, err error)
	// List returns every key in lexical order.
	List(ctx context.Context) ([]string, error)
	// Delete is a no-op for a missing key.
	Delete(ctx context.Context, key string) error
	Close() error
}

var ErrInvalidKey = errors.New("invalid slot key")

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidateKey trims the key and checks it can be used as a file name by every backend.
func ValidateKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("%w: slot key is required", ErrInvalidKey)
	}
	if !keyPattern.MatchString(key) {
		return "", fmt.Errorf("%w: %q may only use letters, digits, '-' and '_'", ErrInvalidKey, key)
	}
	return key, nil
}
