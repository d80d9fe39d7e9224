// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mmynk/swiper/internal/models"
)

// LikedKey is the key under which a session's liked profiles are stored.
const LikedKey = "likedUsers"

// ErrMalformed is returned when a stored value cannot be decoded.
var ErrMalformed = errors.New("malformed stored value")

// Store defines a small namespaced key-value store.
// Values are opaque bytes; namespaces keep browsing sessions apart.
// This abstraction allows swapping storage backends without changing the
// session layer.
type Store interface {
	// Get returns the value stored under (namespace, key).
	// The boolean is false when nothing is stored.
	Get(ctx context.Context, namespace, key string) ([]byte, bool, error)

	// Set stores value under (namespace, key), replacing any previous value.
	Set(ctx context.Context, namespace, key string, value []byte) error

	// Delete removes the value under (namespace, key). Missing keys are not an error.
	Delete(ctx context.Context, namespace, key string) error

	// Close releases any resources held by the store.
	Close() error
}

// LoadLiked reads the liked list of a session.
// A missing key yields an empty list; undecodable data yields ErrMalformed.
func LoadLiked(ctx context.Context, s Store, namespace string) ([]models.Profile, error) {
	raw, ok, err := s.Get(ctx, namespace, LikedKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var liked []models.Profile
	if err := json.Unmarshal(raw, &liked); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, LikedKey, err)
	}
	return liked, nil
}

// SaveLiked writes the liked list of a session as a JSON array.
func SaveLiked(ctx context.Context, s Store, namespace string, liked []models.Profile) error {
	if liked == nil {
		liked = []models.Profile{}
	}
	raw, err := json.Marshal(liked)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", LikedKey, err)
	}
	return s.Set(ctx, namespace, LikedKey, raw)
}

// DeleteLiked removes the persisted liked list of a session.
func DeleteLiked(ctx context.Context, s Store, namespace string) error {
	return s.Delete(ctx, namespace, LikedKey)
}
