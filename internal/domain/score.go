package domain

import (
	"math"
	"regexp"
	"strings"
)

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// ValidAddress checks if the address is a 20-byte hex address with 0x prefix
func ValidAddress(address string) bool {
	return addressPattern.MatchString(address)
}

// NormalizeAddress lowercases a valid address, returning ErrInvalidInput otherwise
func NormalizeAddress(address string) (string, error) {
	if !ValidAddress(address) {
		return "", ErrInvalidInput
	}
	return strings.ToLower(address), nil
}

// Clamp01 clamps v into [0, 1]; NaN becomes 0
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// StatusForScore maps a score to its status: >=0.8 likely, >=0.5 maybe, otherwise unlikely
func StatusForScore(score float64) EligibilityStatus {
	switch {
	case score >= 0.8:
		return EligibilityLikely
	case score >= 0.5:
		return EligibilityMaybe
	default:
		return EligibilityUnlikely
	}
}
