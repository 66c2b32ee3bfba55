package services

import (
	"context"
	"io"

	"github.com/dmitrijs2005/contractlens/internal/client/client"
	"github.com/dmitrijs2005/contractlens/internal/client/models"
)

// fakeClient implements client.Client and records the last call.
type fakeClient struct {
	calls []string

	LoginToken string
	LoginErr   error
	LastUser   string
	LastPass   string

	MeUser    *models.User
	MeErr     error
	MeBearer  string
	MeHadAuth bool

	SignupUser *models.User
	SignupErr  error
	LastSignup [3]string

	Contracts []models.Contract
	Contract  *models.Contract
	Analysis  *models.Analysis
	Err       error

	UploadName string
	UploadBody string
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Login(_ context.Context, username, password string) (string, error) {
	f.calls = append(f.calls, "login")
	f.LastUser, f.LastPass = username, password
	return f.LoginToken, f.LoginErr
}

func (f *fakeClient) Me(ctx context.Context) (*models.User, error) {
	f.calls = append(f.calls, "me")
	f.MeBearer, f.MeHadAuth = client.BearerFromContext(ctx)
	return f.MeUser, f.MeErr
}

func (f *fakeClient) Signup(_ context.Context, email, password, fullName string) (*models.User, error) {
	f.calls = append(f.calls, "signup")
	f.LastSignup = [3]string{email, password, fullName}
	return f.SignupUser, f.SignupErr
}

func (f *fakeClient) ListContracts(context.Context) ([]models.Contract, error) {
	f.calls = append(f.calls, "list")
	return f.Contracts, f.Err
}

func (f *fakeClient) GetContract(context.Context, int64) (*models.Contract, error) {
	f.calls = append(f.calls, "get")
	return f.Contract, f.Err
}

func (f *fakeClient) UploadContract(_ context.Context, filename string, r io.Reader) (*models.Contract, error) {
	f.calls = append(f.calls, "upload")
	b, _ := io.ReadAll(r)
	f.UploadName, f.UploadBody = filename, string(b)
	return f.Contract, f.Err
}

func (f *fakeClient) AnalyzeContract(context.Context, int64) (*models.Analysis, error) {
	f.calls = append(f.calls, "analyze")
	return f.Analysis, f.Err
}
