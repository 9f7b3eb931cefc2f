// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize database and run migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.SetupDatabase,
	}
}

// authCommand handles the session lifecycle
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Sign in and out of GoBarber",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Open a session and persist it",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Discard the persisted session",
				Action: r.AuthLogout,
			},
			{
				Name:  "whoami",
				Usage: "Show the signed-in user",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AuthWhoami,
			},
		},
	}
}

// accountCommand handles registration and profile maintenance
func accountCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "account",
		Usage: "Manage your GoBarber account",
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Create a new account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Display name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AccountRegister,
			},
			{
				Name:  "profile",
				Usage: "Update name, email or password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "name",
						Usage: "New display name",
					},
					&cli.StringFlag{
						Name:  "email",
						Usage: "New email",
					},
					&cli.StringFlag{
						Name:  "old-password",
						Usage: "Current password, required when changing the password",
					},
					&cli.StringFlag{
						Name:  "password",
						Usage: "New password",
					},
					&cli.StringFlag{
						Name:  "confirm",
						Usage: "New password confirmation",
					},
				},
				Action: r.AccountProfile,
			},
			{
				Name:  "avatar",
				Usage: "Upload a new avatar image",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Action: r.AccountAvatar,
			},
		},
	}
}

// passwordCommand handles the recovery flow
func passwordCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "password",
		Usage: "Recover a forgotten password",
		Commands: []*cli.Command{
			{
				Name:  "forgot",
				Usage: "Request a recovery email",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email",
						Required: true,
					},
				},
				Action: r.PasswordForgot,
			},
			{
				Name:  "reset",
				Usage: "Set a new password with a recovery token",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "token",
						Aliases:  []string{"t"},
						Usage:    "Recovery token from the email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "New password",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "confirm",
						Usage: "New password confirmation (defaults to --password)",
					},
				},
				Action: r.PasswordReset,
			},
		},
	}
}

// scheduleCommand handles availability and appointment queries
func scheduleCommand(r *Runner) *cli.Command {
	providerFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:  "provider",
			Usage: "Provider ID (defaults to api.provider_id in config.toml)",
		}
	}
	yearFlag := func() cli.Flag {
		return &cli.IntFlag{
			Name:  "year",
			Usage: "Year (defaults to the current year)",
		}
	}
	monthFlag := func() cli.Flag {
		return &cli.IntFlag{
			Name:  "month",
			Usage: "Month 1-12 (defaults to the current month)",
		}
	}

	return &cli.Command{
		Name:    "schedule",
		Aliases: []string{"sched"},
		Usage:   "Inspect and export your appointment schedule",
		Commands: []*cli.Command{
			{
				Name:  "day",
				Usage: "List appointments for one day",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "date",
						Aliases: []string{"d"},
						Usage:   "Day to fetch as YYYY-MM-DD (defaults to today)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ScheduleDay,
			},
			{
				Name:  "month",
				Usage: "Show a provider's month availability",
				Flags: []cli.Flag{
					providerFlag(),
					yearFlag(),
					monthFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ScheduleMonth,
			},
			{
				Name:  "export",
				Usage: "Assemble a full month of appointments",
				Flags: []cli.Flag{
					providerFlag(),
					yearFlag(),
					monthFlag(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: text, json, csv or markdown",
						Value:   "text",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the rendered export to a file",
					},
					&cli.BoolFlag{
						Name:  "save",
						Usage: "Save the export locally",
					},
				},
				Action: r.ScheduleExport,
			},
		},
	}
}

// exportsCommand handles saved exports
func exportsCommand(r *Runner) *cli.Command {
	formatFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: text, json, csv or markdown",
			Value:   "text",
		}
	}

	return &cli.Command{
		Name:  "exports",
		Usage: "Browse saved schedule exports",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List saved exports",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "provider",
						Usage: "Filter by provider ID",
					},
				},
				Action: r.ExportsList,
			},
			{
				Name:  "show",
				Usage: "Render one saved export",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags:  []cli.Flag{formatFlag()},
				Action: r.ExportsShow,
			},
			{
				Name:  "delete",
				Usage: "Remove a saved export",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Action: r.ExportsDelete,
			},
		},
	}
}

// apiCommand handles direct API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to the GoBarber server",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
		},
	}
}

func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Launch the interactive terminal UI",
		Action: r.TUI,
	}
}
