package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/contractlens/internal/client/models"
)

// Client is the backend API as seen by the services.
type Client interface {
	Login(ctx context.Context, username, password string) (string, error)
	Me(ctx context.Context) (*models.User, error)
	Signup(ctx context.Context, email, password, fullName string) (*models.User, error)

	ListContracts(ctx context.Context) ([]models.Contract, error)
	GetContract(ctx context.Context, id int64) (*models.Contract, error)
	UploadContract(ctx context.Context, filename string, r io.Reader) (*models.Contract, error)
	AnalyzeContract(ctx context.Context, id int64) (*models.Analysis, error)
}

// CredentialSource supplies the bearer token for outgoing requests and is
// told to forget it when the backend rejects it. Revoke must only clear the
// session while token is still the active credential and reports whether
// it did. session.Store implements it.
type CredentialSource interface {
	Token() (string, bool)
	Revoke(ctx context.Context, token string) bool
}

type bearerKey struct{}

// WithBearer makes requests issued with ctx carry token regardless of the
// credential source. The login flow uses it to fetch the profile before
// the session is established.
func WithBearer(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerKey{}, token)
}

// BearerFromContext returns the token set by WithBearer.
func BearerFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(bearerKey{}).(string)
	return token, ok && token != ""
}
