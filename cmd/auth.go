package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/gbx/internal/models"
	"github.com/desertthunder/gbx/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin opens a session with the given credentials and persists it so
// later invocations stay signed in.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	password := cmd.String("password")

	if r.store == nil {
		return fmt.Errorf("%w: session store not initialized, run 'gbx setup' first", shared.ErrServiceUnavailable)
	}
	if email == "" || password == "" {
		return fmt.Errorf("%w: --email and --password are required", shared.ErrMissingArgument)
	}

	r.logger.Info("signing in", "email", email)

	if err := r.store.SignIn(ctx, models.Credentials{Email: email, Password: password}); err != nil {
		return err
	}

	user, _ := r.store.User()
	r.logger.Info("session opened", "user", user.ID)

	return r.writePlain("✓ Signed in as %s <%s>\n", user.Name, user.Email)
}

// AuthLogout discards the persisted session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if r.store == nil {
		return fmt.Errorf("%w: session store not initialized, run 'gbx setup' first", shared.ErrServiceUnavailable)
	}

	if _, ok := r.store.User(); !ok {
		return r.writePlain("Not signed in\n")
	}

	if err := r.store.SignOut(); err != nil {
		return err
	}

	r.logger.Info("session cleared")
	return r.writePlain("✓ Signed out\n")
}

// AuthWhoami prints the signed-in user.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	if r.store == nil {
		return fmt.Errorf("%w: session store not initialized, run 'gbx setup' first", shared.ErrServiceUnavailable)
	}

	user, ok := r.store.User()
	if !ok {
		return r.writePlain("Not signed in\n")
	}

	if cmd != nil && cmd.Bool("json") {
		return r.writeJSON(user, true)
	}

	r.writePlain("Name:  %s\n", user.Name)
	r.writePlain("Email: %s\n", user.Email)
	if user.AvatarURL != "" {
		r.writePlain("Avatar: %s\n", user.AvatarURL)
	}
	return nil
}
