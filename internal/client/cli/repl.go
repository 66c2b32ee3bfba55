package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/dmitrijs2005/contractlens/internal/client/models"
	"github.com/dmitrijs2005/contractlens/internal/client/ui"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Register(ctx context.Context) error
	Login(ctx context.Context, email string) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Upload(ctx context.Context, path string) error
	Analyze(ctx context.Context, id string) error
}

const shellHelp = `Available commands:
  list                 show your contracts
  show <id>            show one contract
  upload <path>        upload a PDF or DOCX file
  analyze <id>         extract key clauses
  whoami               show the current user
  login [email]        log in
  register             create an account
  logout               log out
  exit | quit          leave the shell`

// runREPL reads commands line by line from reader and dispatches them to a.
//
// promptFn is asked for the prompt before each line; beforePrompt runs
// first and may itself interact with the user (the forced login after a
// session expiry). Command errors are printed to errOut and do not stop
// the loop. It returns on EOF, "exit"/"quit" or context cancellation.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader, out, errOut io.Writer, promptFn func() string, beforePrompt func(ctx context.Context)) {
	for {
		if ctx.Err() != nil {
			return
		}
		if beforePrompt != nil {
			beforePrompt(ctx)
		}

		fmt.Fprint(out, promptFn())
		line, err := readLine(reader)
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
			}
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]
		arg := strings.Join(args, " ")

		var cmdErr error
		switch cmd {
		case "help", "?":
			fmt.Fprintln(out, shellHelp)
		case "l", "list", "dashboard":
			cmdErr = a.List(ctx)
		case "show":
			if arg == "" {
				fmt.Fprintln(out, "Usage: show <id>")
				continue
			}
			cmdErr = a.Show(ctx, arg)
		case "upload":
			cmdErr = a.Upload(ctx, arg)
		case "analyze":
			if arg == "" {
				fmt.Fprintln(out, "Usage: analyze <id>")
				continue
			}
			cmdErr = a.Analyze(ctx, arg)
		case "whoami":
			cmdErr = a.WhoAmI(ctx)
		case "login":
			cmdErr = a.Login(ctx, arg)
		case "register":
			cmdErr = a.Register(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			if msg := message(cmdErr); msg != "" {
				fmt.Fprintln(errOut, ui.Alert(ui.AlertError, msg))
			}
		}
	}
}

// Shell runs the interactive REPL until the user leaves. The prompt follows
// the session through a subscription, so a logout or an expired session
// shows up on the next line.
func (a *App) Shell(ctx context.Context) error {
	a.interactive = true
	defer func() { a.interactive = false }()

	var prompt atomic.Value
	prompt.Store(ui.Prompt(a.session.Current()))
	unsubscribe := a.session.Subscribe(func(s models.Snapshot) {
		prompt.Store(ui.Prompt(s))
	})
	defer unsubscribe()

	a.println(ui.Navbar(a.session.Current()))
	a.println("Type 'help' for commands.")

	runREPL(ctx, a, a.in, a.out, a.errOut,
		func() string { return prompt.Load().(string) },
		a.forcedLogin,
	)
	return nil
}

// forcedLogin sends the user back to login after the session expired.
func (a *App) forcedLogin(ctx context.Context) {
	if !a.needLogin.Swap(false) {
		return
	}
	if err := a.Login(ctx, ""); err != nil {
		if msg := message(err); msg != "" {
			fmt.Fprintln(a.errOut, ui.Alert(ui.AlertError, msg))
		}
	}
}
