package adapter

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"
)

// Canonicalizer produces stable content hashes of JSON-serializable values
//
//go:generate mockgen -source=canonical.go -destination=../mocks/canonical.go -package=mocks -mock_names=Canonicalizer=MockCanonicalizer
type Canonicalizer interface {
	// ContentHash returns the hex sha256 of the RFC 8785 canonical JSON form of v
	ContentHash(v interface{}) (string, error)
}

// RealCanonicalizer implements Canonicalizer using the jcs package
type RealCanonicalizer struct{}

// NewCanonicalizer creates a new canonicalizer
func NewCanonicalizer() Canonicalizer {
	return &RealCanonicalizer{}
}

func (c *RealCanonicalizer) ContentHash(v interface{}) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal value: %w", err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize value: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
