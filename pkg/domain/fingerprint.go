package domain

import "strings"

// Fingerprint is a fixed-length hex digest of a content buffer.
// It is only compared for equality, never decoded.
type Fingerprint string

// MissingFingerprint stands in for content that does not exist yet.
// It never equals a real digest, so a missing artifact always forces a rebuild.
var MissingFingerprint = Fingerprint(strings.Repeat("0", 64))

func (f Fingerprint) String() string {
	return string(f)
}

// Short returns the first 12 characters, for logs.
func (f Fingerprint) Short() string {
	if len(f) < 12 {
		return string(f)
	}
	return string(f[:12])
}
