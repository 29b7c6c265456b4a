package auth

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// displayClaims are checked in order for a human readable user name.
var displayClaims = []string{
	"unique_name",
	"name",
	"given_name",
	"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name",
	"sub",
}

// DisplayName reads the user name from the token claims for the navbar.
// The signature is not verified here: the backend verifies the token on
// every call and the value is only ever displayed.
func DisplayName(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "Signed in"
	}
	for _, key := range displayClaims {
		if value, ok := claims[key].(string); ok && strings.TrimSpace(value) != "" {
			return value
		}
	}
	return "Signed in"
}
