// Package client is the contractlens side of the backend REST API.
//
// # Overview
//
// HTTPClient wraps net/http with the two hooks every call goes through:
//
//   - outgoing: the bearer credential from the CredentialSource (or from
//     WithBearer during login) is attached as a single Authorization header,
//     together with an X-Request-ID;
//   - incoming: a 401 on a credentialed request revokes that credential and,
//     if it was still the active one, runs the session-expired handler once.
//     The error is returned either way.
//
// There are no retries. Each request is bounded by a timeout; uploads and
// analysis use the longer one.
//
// # Errors
//
// Non-2xx responses surface as *APIError. errors.Is matches them against
// ErrUnauthorized, ErrNotFound and ErrUnavailable; transport failures map to
// ErrUnavailable or ErrTimeout. Detail extracts the backend's message.
//
// The package also bootstraps the local SQLite database (InitDatabase,
// RunMigrations) used for the persisted session.
package client
