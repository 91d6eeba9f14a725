package token

import "time"

// Token type claim values
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Result holds a freshly signed token
type Result struct {
	TokenString string
	TokenType   string // claim value: "access" or "refresh"
	ExpiresAt   time.Time
}

// Claims is the verified content of a token. Verify does not check the
// Type claim; callers compare it against what they expect.
type Claims struct {
	Subject   string
	Type      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
