package collab

import "time"

// Token is a bearer credential for the CSA API. The zero value is the
// unauthenticated state: no bearer string and an expiry in the distant
// past, so Expired reports true until Mint has succeeded.
type Token struct {
	Bearer    string
	ExpiresAt time.Time
}

// Expired reports whether the token's expiry instant is at or before now.
func (t Token) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
