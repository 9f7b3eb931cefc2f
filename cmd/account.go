package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/desertthunder/gbx/internal/models"
	"github.com/desertthunder/gbx/internal/shared"
	"github.com/urfave/cli/v3"
)

// AccountRegister creates a new user account. Registration does not open a
// session; sign in afterwards.
func (r *Runner) AccountRegister(ctx context.Context, cmd *cli.Command) error {
	reg := models.Registration{
		Name:     cmd.String("name"),
		Email:    cmd.String("email"),
		Password: cmd.String("password"),
	}

	if reg.Name == "" || reg.Email == "" || reg.Password == "" {
		return fmt.Errorf("%w: --name, --email and --password are required", shared.ErrMissingArgument)
	}

	r.logger.Info("registering account", "email", reg.Email)

	user, err := r.client.CreateUser(ctx, reg)
	if err != nil {
		return err
	}

	r.writePlain("✓ Account created for %s\n", user.Email)
	r.writePlain("Run 'gbx auth login' to sign in.\n")
	return nil
}

// AccountProfile updates the signed-in user's name, email and optionally
// the password. The stored session keeps its token.
func (r *Runner) AccountProfile(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	current, _ := r.store.User()
	update := models.ProfileUpdate{
		Name:                 cmd.String("name"),
		Email:                cmd.String("email"),
		OldPassword:          cmd.String("old-password"),
		Password:             cmd.String("password"),
		PasswordConfirmation: cmd.String("confirm"),
	}
	if update.Name == "" {
		update.Name = current.Name
	}
	if update.Email == "" {
		update.Email = current.Email
	}
	if update.Password != "" && update.OldPassword == "" {
		return fmt.Errorf("%w: --old-password is required to change the password", shared.ErrMissingArgument)
	}

	r.logger.Info("updating profile", "email", update.Email)

	user, err := r.client.UpdateProfile(ctx, update)
	if err != nil {
		return err
	}

	if err := r.store.UpdateUser(user); err != nil {
		return err
	}

	return r.writePlain("✓ Profile updated: %s <%s>\n", user.Name, user.Email)
}

// AccountAvatar uploads a new avatar image for the signed-in user.
func (r *Runner) AccountAvatar(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: avatar file path is required", shared.ErrMissingArgument)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read avatar file: %w", err)
	}

	r.logger.Info("uploading avatar", "file", path, "bytes", len(data))

	user, err := r.client.UpdateAvatar(ctx, filepath.Base(path), data)
	if err != nil {
		return err
	}

	if err := r.store.UpdateUser(user); err != nil {
		return err
	}

	r.writePlain("✓ Avatar updated\n")
	if user.AvatarURL != "" {
		r.writePlain("URL: %s\n", user.AvatarURL)
	}
	return nil
}
