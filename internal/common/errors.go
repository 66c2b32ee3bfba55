package common

import "errors"

var (
	// Session errors.
	ErrNotLoggedIn = errors.New("not logged in")

	// Local data errors (corrupted or undecryptable values).
	ErrMalformedLocalData = errors.New("malformed local data")
)
