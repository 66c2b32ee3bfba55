// Package services holds the page logic of the client: input checks that
// run before any request, the login bootstrap and the contract operations.
package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/contractlens/internal/client/client"
	"github.com/dmitrijs2005/contractlens/internal/client/models"
	"github.com/dmitrijs2005/contractlens/internal/common"
	"github.com/dmitrijs2005/contractlens/internal/logging"
)

// SessionManager is the part of session.Store the services drive.
type SessionManager interface {
	Restore(ctx context.Context) models.Snapshot
	Establish(ctx context.Context, token string, user *models.User) error
	Clear(ctx context.Context)
	Current() models.Snapshot
}

// RegisterInput is the sign-up form.
type RegisterInput struct {
	Email           string
	Password        []byte
	ConfirmPassword []byte
	FullName        string
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: exchange credentials for a token, fetch the profile with it and
//     establish the session. Nothing is stored when any step fails.
//   - Register: create an account on the server. It does not log in.
//   - Logout: forget the session locally.
//   - Restore / Current: read the session state.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Logout(ctx context.Context)
	Restore(ctx context.Context) models.Snapshot
	Current() models.Snapshot
}

type authService struct {
	client  client.Client
	session SessionManager
	log     logging.Logger
}

func NewAuthService(c client.Client, session SessionManager, log logging.Logger) AuthService {
	return &authService{client: c, session: session, log: log}
}

// Login wipes password before returning.
func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	defer common.WipeByteArray(password)

	email = strings.TrimSpace(email)
	if email == "" || len(password) == 0 {
		return nil, invalid(MsgLoginRequired)
	}

	token, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return nil, err
	}

	// The session is not established yet, so the fresh token rides on the
	// context for this one call.
	user, err := a.client.Me(client.WithBearer(ctx, token))
	if err != nil {
		return nil, err
	}

	if err := a.session.Establish(ctx, token, user); err != nil {
		return nil, fmt.Errorf("establish session: %w", err)
	}

	a.log.Info(ctx, "logged in", "user", user.Email)
	return user, nil
}

func validateRegistration(in RegisterInput) error {
	if strings.TrimSpace(in.Email) == "" || len(in.Password) == 0 || len(in.ConfirmPassword) == 0 {
		return invalid(MsgRequiredFields)
	}
	if string(in.Password) != string(in.ConfirmPassword) {
		return invalid(MsgPasswordsMismatch)
	}
	if utf8.RuneCount(in.Password) < MinPasswordLength {
		return invalid(MsgPasswordTooShort)
	}
	return nil
}

// Register wipes both password fields before returning.
func (a *authService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	defer common.WipeByteArray(in.Password)
	defer common.WipeByteArray(in.ConfirmPassword)

	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	user, err := a.client.Signup(ctx, strings.TrimSpace(in.Email), string(in.Password), strings.TrimSpace(in.FullName))
	if err != nil {
		return nil, err
	}

	a.log.Info(ctx, "registered", "user", user.Email)
	return user, nil
}

func (a *authService) Logout(ctx context.Context) {
	a.session.Clear(ctx)
	a.log.Info(ctx, "logged out")
}

func (a *authService) Restore(ctx context.Context) models.Snapshot {
	return a.session.Restore(ctx)
}

func (a *authService) Current() models.Snapshot {
	return a.session.Current()
}
