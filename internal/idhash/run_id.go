package idhash

import (
	"crypto/sha256"
	"encoding/hex"
)

// ComputeRunID computes a deterministic run_id for an analyzed log.
// Formula: SHA256(log_text)
// Returns hex-encoded hash (64 characters).
func ComputeRunID(logText string) string {
	hash := sha256.Sum256([]byte(logText))
	return hex.EncodeToString(hash[:])
}
