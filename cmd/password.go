package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/gbx/internal/shared"
	"github.com/urfave/cli/v3"
)

// PasswordForgot requests a password-recovery email.
func (r *Runner) PasswordForgot(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	if email == "" {
		return fmt.Errorf("%w: --email is required", shared.ErrMissingArgument)
	}

	r.logger.Info("requesting password recovery", "email", email)

	if err := r.client.ForgotPassword(ctx, email); err != nil {
		return err
	}

	r.writePlain("✓ Recovery email sent to %s\n", email)
	r.writePlain("Use the token from the email with 'gbx password reset'.\n")
	return nil
}

// PasswordReset sets a new password using a recovery token.
func (r *Runner) PasswordReset(ctx context.Context, cmd *cli.Command) error {
	token := cmd.String("token")
	password := cmd.String("password")
	confirm := cmd.String("confirm")

	if token == "" || password == "" {
		return fmt.Errorf("%w: --token and --password are required", shared.ErrMissingArgument)
	}
	if confirm == "" {
		confirm = password
	}
	if confirm != password {
		return fmt.Errorf("%w: password confirmation does not match", shared.ErrInvalidInput)
	}

	r.logger.Info("resetting password")

	if err := r.client.ResetPassword(ctx, token, password, confirm); err != nil {
		return err
	}

	return r.writePlain("✓ Password reset, sign in with the new password\n")
}
