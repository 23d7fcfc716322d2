package common

import "time"

// DefaultSessionTTL is how long a session stays valid after login.
// 156 hours = 6.5 days.
const DefaultSessionTTL = 156 * time.Hour

// TokenByteLength is the number of random bytes behind a session token.
// Hex encoding doubles it, so tokens are 16 lowercase hex characters.
const TokenByteLength = 8
