package store

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

// NewDraftID returns draft-<suffix> where suffix is 8 chars of base32
// (lowercase, no padding). 8 chars base32 ~= 40 bits of space; collisions
// within a 5-entry collection are not a practical concern, but callers
// should still treat ids as opaque.
func NewDraftID() (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return "draft-" + suffix, nil
}
