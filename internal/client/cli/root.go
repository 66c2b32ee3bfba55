package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/contractlens/internal/buildinfo"
	"github.com/dmitrijs2005/contractlens/internal/client/config"
	"github.com/dmitrijs2005/contractlens/internal/client/ui"
	"github.com/dmitrijs2005/contractlens/internal/common"
	"github.com/dmitrijs2005/contractlens/internal/logging"
)

// streams are the process I/O handed to the commands.
type streams struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	getenv func(string) string
}

// launcher builds the App once per invocation, in the root pre-run hook,
// and restores the session before any command body runs.
type launcher struct {
	streams
	app *App
}

func (l *launcher) start(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(cmd.Flags(), l.getenv)
	if err != nil {
		return err
	}

	log, err := logging.NewLogger(l.errOut, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	app, err := NewApp(ctx, cfg, log, l.in, l.out, l.errOut)
	if err != nil {
		return err
	}
	l.app = app

	app.auth.Restore(ctx)
	return nil
}

func (l *launcher) close() {
	if l.app != nil {
		_ = l.app.Close()
	}
}

func newRootCommand(l *launcher) *cobra.Command {
	root := &cobra.Command{
		Use:   common.AppName,
		Short: "Upload contracts and extract their key clauses",
		Long: `contractlens is a terminal client for the Contract Analyzer service.

Upload PDF or DOCX contracts, browse them and ask the service to extract the
termination, confidentiality, payment, governing law and liability clauses.

Run without a command to see your contracts.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: l.start,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return l.app.List(cmd.Context())
		},
	}
	root.SetIn(l.in)
	root.SetOut(l.out)
	root.SetErr(l.errOut)
	config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newLoginCommand(l),
		newRegisterCommand(l),
		newLogoutCommand(l),
		newWhoAmICommand(l),
		newContractsCommand(l),
		newShellCommand(l),
		newVersionCommand(l),
	)
	return root
}

func newLoginCommand(l *launcher) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		Long: `Log in with your email and password. The session is kept in the data
directory until you log out or the server rejects it.

Examples:
  contractlens login
  contractlens login --email you@example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, _ := cmd.Flags().GetString("email")
			return l.app.Login(cmd.Context(), email)
		},
	}
	cmd.Flags().StringP("email", "e", "", "account email (prompted when omitted)")
	return cmd
}

func newRegisterCommand(l *launcher) *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return l.app.Register(cmd.Context())
		},
	}
}

func newLogoutCommand(l *launcher) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return l.app.Logout(cmd.Context())
		},
	}
}

func newWhoAmICommand(l *launcher) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show who is logged in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return l.app.WhoAmI(cmd.Context())
		},
	}
}

func newContractsCommand(l *launcher) *cobra.Command {
	contracts := &cobra.Command{
		Use:     "contracts",
		Aliases: []string{"c"},
		Short:   "Work with your contracts",
		Long: `Work with your contracts. Without a subcommand the contracts are listed.

Examples:
  contractlens contracts list
  contractlens contracts upload ./nda.pdf
  contractlens contracts show 42
  contractlens contracts analyze 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return l.app.List(cmd.Context())
		},
	}

	contracts.AddCommand(
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List your contracts",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return l.app.List(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show a contract and its extracted text",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return l.app.Show(cmd.Context(), args[0])
			},
		},
		&cobra.Command{
			Use:   "upload <path>",
			Short: "Upload a PDF or DOCX contract",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				path := ""
				if len(args) == 1 {
					path = args[0]
				}
				return l.app.Upload(cmd.Context(), path)
			},
		},
		&cobra.Command{
			Use:   "analyze <id>",
			Short: "Extract the key clauses of a contract",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return l.app.Analyze(cmd.Context(), args[0])
			},
		},
	)
	return contracts
}

func newShellCommand(l *launcher) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return l.app.Shell(cmd.Context())
		},
	}
}

func newVersionCommand(l *launcher) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		// no session needed
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			buildinfo.PrintBuildData(l.out)
		},
	}
}

func run(ctx context.Context, args []string, s streams) int {
	l := &launcher{streams: s}
	defer l.close()

	root := newRootCommand(l)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		if msg := message(err); msg != "" {
			fmt.Fprintln(s.errOut, ui.Alert(ui.AlertError, msg))
		}
		return 1
	}
	return 0
}

// Execute runs the CLI with the process environment and returns the exit code.
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	return run(ctx, args, streams{in: in, out: out, errOut: errOut, getenv: os.Getenv})
}
