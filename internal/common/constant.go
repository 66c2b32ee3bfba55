// Package common contains shared constants and sentinel errors used across
// contractlens components.
package common

// AppName is the binary and User-Agent product name.
const AppName = "contractlens"

// AuthorizationHeaderName carries the bearer credential on outbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token inside the Authorization header value.
const BearerPrefix = "Bearer "

// RequestIDHeaderName is set on every outbound request for log correlation.
const RequestIDHeaderName = "X-Request-ID"

// Metadata keys of the persisted session pair. Both are written and removed together.
const (
	SessionTokenKey = "token"
	SessionUserKey  = "user"
)
