package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/salaryhelper/salaryhelper-client/pkg/apiclient"
)

var errNotLoggedIn = errors.New("not logged in")

func newHealthCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check backend health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, c *apiclient.Client) (any, error) {
				return c.HealthCheck(ctx)
			})
		},
	}
}

func newSMSCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "sms <phone>",
		Short: "Request a verification code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, c *apiclient.Client) (any, error) {
				return c.SendSMS(ctx, args[0])
			})
		},
	}
}

func newLoginCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "login <phone> <code>",
		Short: "Log in with a verification code",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, c *apiclient.Client) (any, error) {
				return c.Login(ctx, args[0], args[1])
			})
		},
	}
}

func newLogoutCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, c *apiclient.Client) (any, error) {
				if err := c.Logout(ctx); err != nil {
					return nil, err
				}
				return map[string]bool{"logged_in": false}, nil
			})
		},
	}
}

func newWhoamiCmd(e *env) *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, func(ctx context.Context, c *apiclient.Client) (any, error) {
				if offline {
					user := c.CurrentUser()
					if user == nil {
						return nil, errNotLoggedIn
					}
					return user, nil
				}
				if !c.IsLoggedIn() {
					return nil, errNotLoggedIn
				}
				return c.FetchCurrentUser(ctx)
			})
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Print the cached user without calling the backend")
	return cmd
}
