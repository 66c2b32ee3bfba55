package models

// Snapshot is a read-only view of the session at one point in time.
// User is nil whenever Authenticated is false.
type Snapshot struct {
	Authenticated bool
	User          *User
}
