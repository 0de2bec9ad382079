// Package cli is the salaryhelper command line: one subcommand per backend
// operation, JSON on stdout, logs on stderr.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/salaryhelper/salaryhelper-client/internal/app"
	"github.com/salaryhelper/salaryhelper-client/internal/config"
	"github.com/salaryhelper/salaryhelper-client/internal/logger"
	"github.com/salaryhelper/salaryhelper-client/internal/session"
	"github.com/salaryhelper/salaryhelper-client/pkg/apiclient"
)

var version = "dev"

// Flags are the persistent root flags a factory applies on top of config.
type Flags struct {
	// Ephemeral keeps the session in memory for this run only.
	Ephemeral bool
}

// Apply overrides cfg with whatever the flags ask for.
func (f Flags) Apply(cfg *config.Config) {
	if f.Ephemeral {
		cfg.SessionStore = session.TypeMemory
	}
}

// AppFactory builds the runtime a command talks through.
type AppFactory func(ctx context.Context, flags Flags) (*app.App, error)

type env struct {
	out    io.Writer
	newApp AppFactory
	flags  Flags
}

// NewRootCmd wires every subcommand. Results are written to out.
func NewRootCmd(out io.Writer, newApp AppFactory) *cobra.Command {
	e := &env{out: out, newApp: newApp}

	root := &cobra.Command{
		Use:   "salaryhelper",
		Short: "SalaryHelper API client",
		Long: `salaryhelper talks to the SalaryHelper backend: phone login,
conversations, uploads, document templates and orders.

The login token is kept in the configured session store between runs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().BoolVar(&e.flags.Ephemeral, "ephemeral", false, "Keep the session in memory; nothing is written to the session store")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(e.out, "salaryhelper version %s\n", version)
		},
	})

	root.AddCommand(
		newHealthCmd(e),
		newSMSCmd(e),
		newLoginCmd(e),
		newLogoutCmd(e),
		newWhoamiCmd(e),
		newConversationsCmd(e),
		newSendCmd(e),
		newUploadCmd(e),
		newUploadInfoCmd(e),
		newAttachmentsCmd(e),
		newTemplatesCmd(e),
		newDocumentsCmd(e),
		newOrdersCmd(e),
		newAdminCmd(e),
	)
	return root
}

// Execute runs the CLI against the environment's configuration.
func Execute() error {
	root := NewRootCmd(os.Stdout, defaultApp)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func defaultApp(ctx context.Context, flags Flags) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	flags.Apply(cfg)
	log, err := logger.InitWriter(cfg, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return app.New(ctx, cfg, log)
}

// run builds the app, hands its client to fn and prints what fn returns.
func (e *env) run(cmd *cobra.Command, fn func(ctx context.Context, c *apiclient.Client) (any, error)) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := e.newApp(ctx, e.flags)
	if err != nil {
		return err
	}
	defer a.Close()
	defer logger.Close()

	v, err := fn(ctx, a.Client())
	if err != nil {
		return err
	}
	return e.print(v)
}

func (e *env) print(v any) error {
	enc := json.NewEncoder(e.out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
