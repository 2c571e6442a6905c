package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Digest computes the content-addressed digest of a result.
// Two evaluations with identical draws and rules share a digest, which is
// what replay verifies.
func Digest(result AggregateResult) (string, error) {
	canonical, err := MarshalCanonical(result.CanonicalMap())
	if err != nil {
		return "", fmt.Errorf("Digest: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainRoll, canonical), nil
}
