// Package sessionid issues session IDs and derives the keys stores use for them.
package sessionid

import (
	"encoding/hex"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// New returns a fresh random session ID.
func New() string {
	return uuid.NewString()
}

// Valid reports whether s looks like an ID issued by New.
func Valid(s string) bool {
	id, err := uuid.Parse(s)
	return err == nil && id.Version() == 4
}

// Digest is the store key for a session ID. Stores never see the cookie value.
func Digest(sid string) string {
	sum := blake2b.Sum256([]byte(sid))
	return hex.EncodeToString(sum[:])
}
