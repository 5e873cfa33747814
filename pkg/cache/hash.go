package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a "<kind>:<hex>" cache key from a kind prefix and the
// key-affecting parts (request hash plus layout options). The parts are
// JSON-encoded before hashing, so adding a field to an options struct
// automatically invalidates old entries.
func hashKey(kind string, parts ...any) string {
	encoded, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", kind, Hash(encoded))
}

// Hash returns the hex SHA-256 of data. Processing is deterministic, so the
// full 256-bit digest of the raw request is a safe identity for its result.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
