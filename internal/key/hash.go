package key

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainStep is the domain prefix for step identity hashing.
// Version suffix enables future algorithm migration.
const DomainStep = "keypad/step/v1"

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// StepID computes the content-addressed ID for a step.
// The ID is stable across restarts and replays given the same inputs.
func StepID(session, kind, value, display string, seq int64) (string, error) {
	obj := map[string]any{
		"session": session,
		"kind":    kind,
		"value":   value,
		"display": display,
		"seq":     seq,
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("StepID: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainStep, canonical), nil
}

// MustStepID is like StepID but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustStepID(session, kind, value, display string, seq int64) string {
	id, err := StepID(session, kind, value, display, seq)
	if err != nil {
		panic(err)
	}
	return id
}
