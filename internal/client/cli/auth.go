package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/contractlens/internal/client/services"
	"github.com/dmitrijs2005/contractlens/internal/client/ui"
	"github.com/dmitrijs2005/contractlens/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Login asks for the password (and the email when it is empty) and
// establishes a session. A previous session is replaced.
func (a *App) Login(ctx context.Context, email string) error {
	var err error
	if email == "" {
		email, err = getSimpleText(a.in, "Email", a.out)
		if err != nil {
			return err
		}
	}

	password, err := getPassword(a.in, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	a.expired.Store(false)
	user, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return a.present(ctx, err, MsgLoginFailed)
	}

	a.needLogin.Store(false)
	a.alert(ui.AlertSuccess, fmt.Sprintf("Logged in as %s", user.DisplayName()))
	return nil
}

// Register prompts for the sign-up form. It does not log in.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.in, "Email", a.out)
	if err != nil {
		return err
	}
	fullName, err := getSimpleText(a.in, "Full name (optional)", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.in, "Password", a.out)
	if err != nil {
		return err
	}
	confirm, err := getPassword(a.in, "Confirm password", a.out)
	if err != nil {
		common.WipeByteArray(password)
		return err
	}

	_, err = a.auth.Register(ctx, services.RegisterInput{
		Email:           email,
		Password:        password,
		ConfirmPassword: confirm,
		FullName:        fullName,
	})
	if err != nil {
		return a.present(ctx, err, MsgRegisterFailed)
	}

	a.alert(ui.AlertSuccess, MsgRegistered)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if !a.session.Current().Authenticated {
		return a.present(ctx, common.ErrNotLoggedIn, "")
	}
	a.auth.Logout(ctx)
	a.alert(ui.AlertSuccess, "Logged out.")
	return nil
}

// WhoAmI prints the navbar for the current session.
func (a *App) WhoAmI(ctx context.Context) error {
	if err := a.guard(ctx); err != nil {
		return a.present(ctx, err, MsgLoginFailed)
	}

	snap := a.session.Current()
	a.println(ui.Navbar(snap))
	if snap.User != nil {
		a.println(snap.User.Email)
	}
	return nil
}
