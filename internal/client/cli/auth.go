package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/estatekeeper/internal/client/validation"
	"github.com/dmitrijs2005/estatekeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts the user for credentials and signs in. Inputs are validated
// locally before any network call; the password byte slice is wiped before
// returning. The route guard takes care of switching command groups on
// success.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := validation.CheckSignIn(email, string(password)); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	if err := a.session.SignIn(ctx, email, string(password)); err != nil {
		fmt.Fprintln(a.out, "Sign-in failed:", err.Error())
		return err
	}
	return nil
}

// Register prompts for the new account's details and creates it. The backend
// returns only a token for this call, so the profile stays empty until the
// user signs in again or updates it.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	name, err := getSimpleText(a.reader, "Enter your name", os.Stdout)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Enter phone (10-11 digits)", os.Stdout)
	if err != nil {
		return err
	}

	if err := validation.CheckRegister(email, string(password), name, phone); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	if err := a.session.Register(ctx, email, string(password), name, phone); err != nil {
		fmt.Fprintln(a.out, "Registration failed:", err.Error())
		return err
	}

	fmt.Fprintln(a.out, "Account created.")
	return nil
}

// Logout signs out. The local session is cleared even when the backend call
// fails, so this never leaves the user half signed in.
func (a *App) Logout(ctx context.Context) error {
	a.session.SignOut(ctx)
	return nil
}
