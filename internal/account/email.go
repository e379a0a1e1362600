package account

import "strings"

// NormalizeEmail trims surrounding whitespace and lowercases the domain part.
// The local part is kept as given since mailbox names may be case sensitive;
// the store compares emails case-insensitively anyway.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}
