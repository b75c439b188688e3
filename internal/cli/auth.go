package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/humiapp/humi/internal/dbx"
	"github.com/humiapp/humi/internal/repositories/metadata"
)

// Login asks for an access token, derives the user id from it and persists
// the session so the next start resumes logged in.
func (a *App) Login(ctx context.Context) {
	token, err := GetSecret("Enter access token", os.Stdout)
	if err != nil {
		fmt.Println("Error reading token:", err)
		return
	}
	if token == "" {
		fmt.Println("Login skipped (no token entered)")
		return
	}

	if err := a.connect(ctx, token); err != nil {
		fmt.Println("Login failed:", err)
		return
	}

	err = dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		m := metadata.NewSQLiteRepository(tx)
		if err := m.Set(ctx, metadata.KeyAccessToken, []byte(token)); err != nil {
			return err
		}
		return m.Set(ctx, metadata.KeyRememberedUser, []byte(a.userID))
	})
	if err != nil {
		a.logger.Warn(ctx, "could not persist session", "error", err)
	}

	fmt.Printf("Logged in as %s\n", a.userID)
}

// Logout clears the persisted session and drops the token-bound services.
// Queued entries stay in the local database for the next login.
func (a *App) Logout(ctx context.Context) {
	if !a.requireLogin() {
		return
	}
	if err := a.repos.Metadata.Delete(ctx, metadata.KeyAccessToken); err != nil {
		a.logger.Warn(ctx, "could not clear session", "error", err)
	}
	if err := a.repos.Metadata.Delete(ctx, metadata.KeyRememberedUser); err != nil {
		a.logger.Warn(ctx, "could not clear user", "error", err)
	}
	a.disconnect()
	fmt.Println("Logged out")
}
