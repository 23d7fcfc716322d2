package cli

import (
	"context"
	"os"
	"time"

	"github.com/Rachitneema03/edufolio/internal/shared"
)

// Login prompts for an email and a password and opens a session. There is no
// server: the password is a mock credential, accepted as-is and wiped; only
// the email becomes the session identity.
func (a *App) Login(ctx context.Context) error {
	identity, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "failed to read email", "error", err)
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		a.log.Error(ctx, "failed to read password", "error", err)
		return err
	}
	shared.WipeByteArray(password)

	sess, err := a.store.Login(ctx, identity)
	if err != nil {
		a.log.Error(ctx, "login failed", "error", err)
		return err
	}

	printlnFn("Signed in as", sess.Identity)
	return nil
}

// Logout tears down the current session and all its stored data.
func (a *App) Logout(ctx context.Context) error {
	if err := a.store.Logout(ctx); err != nil {
		a.log.Error(ctx, "logout failed", "error", err)
		return err
	}
	printlnFn("Signed out")
	return nil
}

// Whoami prints the current session, if any.
func (a *App) Whoami(ctx context.Context) error {
	cur, err := a.store.CurrentSession(ctx)
	if err != nil {
		a.log.Error(ctx, "failed to read session", "error", err)
		return err
	}
	if cur == nil {
		printlnFn("Not signed in")
		return nil
	}

	expires := time.UnixMilli(cur.ExpiresAt).Format(time.RFC3339)
	printlnFn("Signed in as", cur.Identity, "until", expires)
	return nil
}

// Cleanup purges every expired session record and its data.
func (a *App) Cleanup(ctx context.Context) error {
	n, err := a.store.CleanupExpired(ctx)
	if err != nil {
		a.log.Error(ctx, "cleanup failed", "error", err)
		return err
	}
	printlnFn("Cleaned", n, "expired session(s)")
	return nil
}
