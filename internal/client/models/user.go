// Package models defines the client-side data models: the authenticated
// user, the session snapshot, and the backend's contract and analysis records.
package models

import "strings"

// User mirrors the backend's /auth/me profile. Unknown fields are ignored.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}

// Valid reports whether u identifies anybody at all.
func (u *User) Valid() bool {
	return u != nil && (u.ID != 0 || strings.TrimSpace(u.Email) != "")
}

// DisplayName prefers the full name and falls back to the email.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if name := strings.TrimSpace(u.FullName); name != "" {
		return name
	}
	return u.Email
}
