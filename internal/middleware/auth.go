package middleware

import "strings"

// ExtractBearerToken returns the token of an "Authorization: Bearer <token>"
// header value, or "" when the header is missing or uses another scheme.
func ExtractBearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
