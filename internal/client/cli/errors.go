package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/contractlens/internal/client/client"
	"github.com/dmitrijs2005/contractlens/internal/client/services"
	"github.com/dmitrijs2005/contractlens/internal/common"
)

// Messages shown when the backend gives no detail of its own.
const (
	MsgListFailed     = "Failed to load your contracts. Please try again."
	MsgShowFailed     = "Failed to load contract. It may have been deleted or you may not have permission to view it."
	MsgAnalyzeFailed  = "Failed to analyze contract. Please try again."
	MsgUploadFailed   = "Failed to upload contract. Please try again."
	MsgRegisterFailed = "Registration failed. Please try again."
	MsgLoginFailed    = "Login failed. Please check your email and password."

	MsgSessionExpired = "Your session has expired. Please log in again."
	MsgRegistered     = "Registration successful! You can now login."
)

// displayError carries the message to print for a failed command. An empty
// message means the user has already been told.
type displayError struct {
	msg string
	err error
}

func (e *displayError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return e.err.Error()
}

func (e *displayError) Unwrap() error { return e.err }

func notLoggedInMessage() string {
	return fmt.Sprintf("not logged in - run '%s login' first", common.AppName)
}

// present turns err into what the user sees: the validation message, the
// backend's detail, or fallback.
func (a *App) present(ctx context.Context, err error, fallback string) error {
	if err == nil {
		return nil
	}

	var (
		derr *displayError
		verr *services.ValidationError
	)
	switch {
	case errors.As(err, &derr):
		return err
	case errors.As(err, &verr):
		return &displayError{msg: verr.Message, err: err}
	case errors.Is(err, common.ErrNotLoggedIn):
		return &displayError{msg: notLoggedInMessage(), err: err}
	case errors.Is(err, client.ErrUnauthorized) && a.expired.Load():
		// the expiry alert has been printed already
		return &displayError{err: err}
	}

	if detail, ok := client.Detail(err); ok {
		return &displayError{msg: detail, err: err}
	}

	a.log.Debug(ctx, "command failed", "error", err)
	return &displayError{msg: fallback, err: err}
}

// message returns what Execute prints for err, or "" when nothing should
// be printed.
func message(err error) string {
	var derr *displayError
	if errors.As(err, &derr) {
		return derr.msg
	}
	return err.Error()
}
