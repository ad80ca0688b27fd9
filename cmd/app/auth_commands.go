package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/petclinic-auth/cmd/app/commands"
	"github.com/allisson/petclinic-auth/internal/app"
	"github.com/allisson/petclinic-auth/internal/config"
)

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-user",
			Usage: "Create an active owner account with its owner profile",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "Login email address",
				},
				&cli.StringFlag{
					Name:     "password",
					Aliases:  []string{"p"},
					Required: true,
					Usage:    "Plain text password (hashed before storage)",
				},
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Display name",
				},
				&cli.StringFlag{
					Name:  "phone",
					Usage: "Owner contact phone",
				},
				&cli.StringFlag{
					Name:  "address",
					Usage: "Owner postal address",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				userRepository, err := container.UserRepository()
				if err != nil {
					return err
				}

				txManager, err := container.TxManager()
				if err != nil {
					return err
				}

				return commands.RunCreateUser(
					ctx,
					userRepository,
					txManager,
					container.PasswordService(),
					container.Logger(),
					commands.DefaultIO().Writer,
					commands.CreateUserInput{
						Email:    cmd.String("email"),
						Password: cmd.String("password"),
						Name:     cmd.String("name"),
						Phone:    cmd.String("phone"),
						Address:  cmd.String("address"),
					},
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "clean-expired-tokens",
			Usage: "Delete refresh tokens whose expiry passed more than the specified days ago",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:     "days",
					Aliases:  []string{"d"},
					Required: true,
					Usage:    "Delete tokens expired longer than this many days",
				},
				&cli.BoolFlag{
					Name:    "dry-run",
					Aliases: []string{"n"},
					Value:   false,
					Usage:   "Show how many tokens would be deleted without deleting",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				refreshTokenRepository, err := container.RefreshTokenRepository()
				if err != nil {
					return err
				}

				return commands.RunCleanExpiredTokens(
					ctx,
					refreshTokenRepository,
					container.Logger(),
					commands.DefaultIO().Writer,
					int(cmd.Int("days")),
					cmd.Bool("dry-run"),
					cmd.String("format"),
				)
			},
		},
	}
}
