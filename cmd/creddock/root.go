// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/creddock/creddock/internal/config"
	"github.com/creddock/creddock/internal/container"
	"github.com/creddock/creddock/internal/credentials"
	"github.com/creddock/creddock/internal/issue"
	"github.com/creddock/creddock/internal/launcher"
	"github.com/creddock/creddock/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootDeps holds the host facts and process hooks the root command reads.
// Tests swap them to avoid touching the real environment.
type rootDeps struct {
	goos         string
	lookupEnv    credentials.LookupEnvFunc
	lookPath     container.LookPathFunc
	engineOpts   []container.BaseCLIEngineOption
	canonicalize launcher.CanonicalizeFunc
	logger       *log.Logger
	// issueStyle is the glamour style used for help catalog entries.
	issueStyle string
}

func defaultDeps(logger *log.Logger) rootDeps {
	return rootDeps{
		goos:         runtime.GOOS,
		lookupEnv:    os.LookupEnv,
		lookPath:     exec.LookPath,
		canonicalize: credentials.Canonicalize,
		logger:       logger,
		issueStyle:   issueStyleFor(os.Stderr),
	}
}

// issueStyleFor picks the glamour style for help rendered to f; escape
// sequences are only emitted on a terminal.
func issueStyleFor(f *os.File) string {
	if term.IsTerminal(int(f.Fd())) {
		return "dark"
	}
	return "notty"
}

func newRootCmd(deps rootDeps) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "creddock [flags] [-- args...]",
		Short: "Build and run a container with your Google Cloud credentials",
		Long: TitleStyle.Render("creddock") + SubtitleStyle.Render(" - Google Cloud credentials for local containers") + `

creddock builds the image in the given context directory, then runs it with
your application default credentials mounted read-only and
GOOGLE_APPLICATION_CREDENTIALS / GOOGLE_CLOUD_PROJECT exported. The container
is attached to your terminal and its exit status decides creddock's.

` + SubtitleStyle.Render("Examples:") + `
  ` + CmdStyle.Render("creddock --project my-project -c .") + `
  ` + CmdStyle.Render("creddock --project my-project -c ./app --args python --args main.py") + `
  ` + CmdStyle.Render("creddock --project my-project -c ./app -- python main.py") + `
  ` + CmdStyle.Render(`creddock --project my-project -c ./app --cmd 'sh -c "gcloud auth list"'`),
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true
			return runRoot(cmd, args, deps)
		},
	}

	config.AddFlags(rootCmd.Flags())

	return rootCmd
}

func runRoot(cmd *cobra.Command, args []string, deps rootDeps) error {
	stderr := cmd.ErrOrStderr()
	verbose, _ := cmd.Flags().GetBool(config.FlagVerbose)

	cfg, err := config.Load(cmd.Flags(), config.LoadOptions{
		GOOS:       deps.goos,
		LookupEnv:  deps.lookupEnv,
		Positional: args,
	})
	if err != nil {
		return reportError(stderr, err, verbose, deps.issueStyle)
	}

	setVerbose(deps.logger, cfg.Verbose)
	logger := slog.New(deps.logger)
	logger.Debug("configuration resolved",
		"engine", cfg.Engine, "context", cfg.Context, "project", cfg.Project, "adc", cfg.ADC)

	engine, err := container.NewEngine(cfg.Engine, deps.lookPath, deps.engineOpts...)
	if err != nil {
		return reportError(stderr, err, cfg.Verbose, deps.issueStyle)
	}

	opts := []launcher.Option{
		launcher.WithStdio(cmd.InOrStdin(), cmd.OutOrStdout(), stderr),
		launcher.WithLogger(logger),
	}
	if deps.canonicalize != nil {
		opts = append(opts, launcher.WithCanonicalizer(deps.canonicalize))
	}

	if err := launcher.New(engine, opts...).Launch(cmd.Context(), cfg); err != nil {
		return reportError(stderr, err, cfg.Verbose, deps.issueStyle)
	}
	return nil
}

// reportError prints err with its catalog entry, if any, and wraps it in an
// ExitError carrying the mapped exit code.
func reportError(w io.Writer, err error, verbose bool, issueStyle string) error {
	if entry := issue.ForError(err); entry != nil {
		if rendered, renderErr := entry.Render(issueStyle); renderErr == nil {
			fmt.Fprint(w, rendered)
		}
	}
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))
	return &ExitError{Code: classifyExitCode(err), Err: err}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// errorHandler renders errors that never reached RunE (flag parsing, bad
// arguments) with fang's default styling. Errors carried by an ExitError were
// already reported by reportError.
func errorHandler(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the root command and exits with its status.
// This is called by main.main().
func Execute() {
	logger := newLogger(os.Stderr)
	slog.SetDefault(slog.New(logger))

	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version.
	if err := fang.Execute(
		context.Background(),
		newRootCmd(defaultDeps(logger)),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(errorHandler),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(int(types.ExitFailure))
	}
}
