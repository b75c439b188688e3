package remote

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// UserIDFromToken reads the subject claim out of an access token without
// verifying the signature — verification is the server's job; the client
// only needs the user id to address its collections. Returns an error when
// the token is not a parseable JWT or carries no subject.
func UserIDFromToken(token string) (string, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return "", fmt.Errorf("parse access token: %w", err)
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("access token has no subject claim")
	}
	return sub, nil
}
