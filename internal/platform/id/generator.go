// Package id mints opaque identifiers for requests and reconcile runs.
package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

type Generator interface {
	NewID() (string, error)
}

// RandomGenerator returns hex encoded random bytes.
type RandomGenerator struct {
	size int
}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{size: 12}
}

func (g *RandomGenerator) NewID() (string, error) {
	size := g.size
	if size <= 0 {
		size = 12
	}
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// Static always returns the same id. It keeps handler tests deterministic.
type Static string

func (s Static) NewID() (string, error) {
	return string(s), nil
}
