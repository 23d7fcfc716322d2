// Package session implements EduFolio's client-local pseudo-session layer:
// opaque token generation, a single current session with a TTL, and a
// per-identity namespaced record store layered over a storage.Backend.
//
// The token is a correlation id, not a cryptographic credential. There is
// no server-side verification of any kind; the point of the token check on
// reads is to fence off records written under a rotated or expired session,
// not to authenticate anyone.
package session

import (
	"time"

	"github.com/Rachitneema03/edufolio/internal/common"
	"github.com/Rachitneema03/edufolio/internal/shared"
)

// Session is one logical sign-in: who, under which token, and until when.
// Timestamps are epoch milliseconds, matching the persisted record shape.
type Session struct {
	Identity  string `json:"identity"`
	Token     string `json:"token"`
	CreatedAt int64  `json:"createdAt"`
	ExpiresAt int64  `json:"expiresAt"`
}

// currentPointer marks which identity/token pair is active in this client.
type currentPointer struct {
	Identity string `json:"identity"`
	Token    string `json:"token"`
}

// namespacedRecord is one piece of user data under (identity, key).
// Value holds the codec-encoded payload; Token is the session token that
// was current at write time.
type namespacedRecord struct {
	Value     []byte `json:"value"`
	WrittenAt int64  `json:"writtenAt"`
	Token     string `json:"token"`
}

// GenerateToken returns a fresh opaque session token: 16 lowercase hex
// characters (64 bits of randomness).
func GenerateToken() (string, error) {
	return shared.MakeRandHexString(common.TokenByteLength)
}

// expired reports whether the session is past its expiry at instant now.
// Validity is always re-checked against the clock, never cached.
func (s *Session) expired(now time.Time) bool {
	return now.UnixMilli() >= s.ExpiresAt
}
