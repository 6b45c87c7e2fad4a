package canonical

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// The version suffix leaves room for a future algorithm change.
const (
	DomainRecord = "speed/record/v1"
	DomainSchema = "speed/schema/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null separator keeps the domain/data boundary unambiguous.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint hashes the NFC canonical encoding of v under domain.
// Values that differ only in Unicode normalization share a fingerprint.
func Fingerprint(domain string, v any) (string, error) {
	data, err := MarshalNFC(v)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	return hashWithDomain(domain, data), nil
}
