package ir

// Version constants for the result encoding.
const (
	// DigestVersion is the canonical result encoding version.
	DigestVersion = "1"

	// DomainRoll separates roll digests from any other hash use.
	DomainRoll = "dicerules/roll/v" + DigestVersion
)
