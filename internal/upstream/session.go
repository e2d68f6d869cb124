package upstream

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenExpired reports whether the session token's exp claim has passed.
// The token is decoded without signature verification: the backend is the
// authority on validity, this is only a cheap pre-check so the console can
// tear the session down before a call bounces with 401. Malformed tokens
// are left to the backend to reject.
func TokenExpired(token string, now time.Time) bool {
	if token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	if _, ok := claims["exp"]; !ok {
		return false
	}
	return !claims.VerifyExpiresAt(now.Unix(), false)
}
