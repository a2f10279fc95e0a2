package models

import "github.com/r70610363/swiftcart-backend/pkg/enums"

// User is a directory record. Role is recomputed from the admin allow-lists
// whenever the user authenticates; the stored value is informational only.
type User struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Email  string         `json:"email"`
	Mobile string         `json:"mobile"`
	Role   enums.UserRole `json:"role"`
}

// Matches reports whether the identifier is this user's email or mobile.
func (u User) Matches(identifier string) bool {
	return identifier != "" && (u.Email == identifier || u.Mobile == identifier)
}
