// Package identity handles device hardware identifiers and the credentials
// derived from them. Firmware reports MAC addresses in inconsistent casing
// and separator styles; everything else in the system compares canonical
// forms only.
package identity

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ErrInvalidIdentifier indicates a malformed hardware identifier.
var ErrInvalidIdentifier = errors.New("invalid hardware identifier")

// FriendlyIDPrefix is the prefix shown on-device and in the dashboard.
const FriendlyIDPrefix = "TRMNL"

var (
	macPattern = regexp.MustCompile(`^([0-9A-Fa-f]{2}[:-]){5}([0-9A-Fa-f]{2})$`)
	nonHex     = regexp.MustCompile(`[^0-9A-Fa-f]`)
)

// IsValid reports whether s looks like a MAC address: six groups of two hex
// digits separated by ':' or '-', case-insensitive.
func IsValid(s string) bool {
	return macPattern.MatchString(s)
}

// Normalize canonicalizes a MAC address to uppercase colon-separated form
// (XX:XX:XX:XX:XX:XX). All non-hex characters are stripped first; anything
// that does not leave exactly 12 hex digits fails with ErrInvalidIdentifier.
// Normalize is idempotent over its own output.
func Normalize(s string) (string, error) {
	cleaned := strings.ToUpper(nonHex.ReplaceAllString(s, ""))
	if len(cleaned) != 12 {
		return "", fmt.Errorf("%w: need 12 hex characters, got %d", ErrInvalidIdentifier, len(cleaned))
	}

	var b strings.Builder
	b.Grow(17)
	for i := 0; i < 12; i += 2 {
		if i > 0 {
			b.WriteByte(':')
		}
		b.WriteString(cleaned[i : i+2])
	}
	return b.String(), nil
}

// FriendlyID derives the stable human-readable device label from a MAC
// address, in the form TRMNL_XXXXXX. The derivation is deterministic so the
// same hardware always maps to the same label.
func FriendlyID(mac string) string {
	cleaned := strings.ToUpper(nonHex.ReplaceAllString(mac, ""))
	sum := sha256.Sum256([]byte(cleaned))
	return FriendlyIDPrefix + "_" + strings.ToUpper(hex.EncodeToString(sum[:])[:6])
}

// NewAPIKey generates an opaque bearer credential for a device. The key is
// an HMAC-SHA256 over the MAC plus the current time, so keys are unique per
// issuance even for the same hardware. When secret is empty a random one is
// drawn, matching a deployment that never configured API_KEY_SECRET.
func NewAPIKey(mac string, secret []byte) string {
	if len(secret) == 0 {
		secret = make([]byte, 32)
		_, _ = rand.Read(secret)
	}
	mac = strings.ToUpper(mac)
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(fmt.Sprintf("%s%d", mac, time.Now().UnixNano())))
	return hex.EncodeToString(h.Sum(nil))
}

// PseudoMAC synthesizes a deterministic canonical MAC address from a
// credential. Used to auto-provision devices that present only an API key:
// repeated calls with the same key yield the same pseudo hardware identity,
// which keeps auto-registration idempotent.
func PseudoMAC(apiKey string) string {
	sum := sha256.Sum256([]byte(apiKey))
	normalized, _ := Normalize(hex.EncodeToString(sum[:6]))
	return normalized
}
