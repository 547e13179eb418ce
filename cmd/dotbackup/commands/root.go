// Package commands implements the dotbackup and dotsetup command lines.
// Both binaries share one root command; the Mode picks the direction.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thoreinstein/dotbackup/cmd"
	"github.com/thoreinstein/dotbackup/internal/config"
	"github.com/thoreinstein/dotbackup/internal/errors"
	"github.com/thoreinstein/dotbackup/internal/logging"
	"github.com/thoreinstein/dotbackup/internal/paths"
)

// Mode selects the direction of a run.
type Mode int

const (
	// ModeBackup copies live files into the backup directory.
	ModeBackup Mode = iota
	// ModeSetup copies backed up files to their live locations.
	ModeSetup
)

// Name returns the binary name for the mode.
func (m Mode) Name() string {
	if m == ModeSetup {
		return "dotsetup"
	}
	return "dotbackup"
}

func (m Mode) cleanHelp() string {
	if m == ModeSetup {
		return "delete old configuration files before setup"
	}
	return "delete old backup files before backup"
}

// options holds the flag values of one root command.
type options struct {
	mode        Mode
	v           *viper.Viper
	verbosity   int
	list        bool
	dumpConfig  bool
	interactive bool

	logFile io.Closer
}

// NewRootCommand builds the root command for mode.
func NewRootCommand(mode Mode) *cobra.Command {
	opts := &options{
		mode: mode,
		v:    config.NewViper(),
	}

	name := mode.Name()
	configPattern := filepath.Join("$XDG_CONFIG_HOME", paths.AppName, "CONFIG.yml")
	if dir, err := paths.ConfigDir(); err == nil {
		configPattern = filepath.Join(dir, "CONFIG.yml")
	}

	rootCmd := &cobra.Command{
		Use:   name + " [OPTIONS] [APPS]",
		Short: "Dotfile backup utility (dotbackup & dotsetup)",
		Long: `Dotfile backup utility (dotbackup & dotsetup).

dotbackup copies the configuration files of each app listed in the
configuration document into the backup directory, keeping their path
relative to the home directory. dotsetup copies them back.

Give app names to operate on a subset of the configured apps, in the
order given. Without names every app is processed in document order.

Options may also be set through DOTBACKUP_FILE, DOTBACKUP_CONFIG,
DOTBACKUP_CLEAN, DOTBACKUP_LOG_FORMAT and DOTBACKUP_LOG_FILE.

See 'man dotbackup' and 'man dotsetup' for more information.`,
		Example: fmt.Sprintf(`  # Process every app in the default configuration
  %[1]s

  # Only zsh and nvim, removing stale files first
  %[1]s --clean zsh nvim

  # Use ~/.config/dotbackup/work.yml
  %[1]s -c work

  # Inspect the parsed configuration
  %[1]s --dump-config`, name),
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setupLogging(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer func() {
				if cerr := opts.closeLogFile(); err == nil {
					err = cerr
				}
			}()
			return opts.run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), args)
		},
	}

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	flags := rootCmd.Flags()
	flags.StringP(config.SettingFile, "f", "", "use configuration file at `PATH`")
	flags.StringP(config.SettingConfig, "c", "", "use configuration file at "+configPattern)
	flags.BoolVarP(&opts.list, "list", "l", false, "list applications and exit")
	flags.Bool(config.SettingClean, false, mode.cleanHelp())
	flags.BoolP("version", "V", false, "print version info and exit")
	flags.CountVarP(&opts.verbosity, "verbose", "v", "use verbose output (-vv for trace)")
	flags.BoolVar(&opts.dumpConfig, "dump-config", false, "print parsed configuration, useful for debugging")
	flags.BoolVarP(&opts.interactive, "interactive", "i", false, "choose apps interactively")
	flags.String(config.SettingLogFormat, "text", "log format: text, json")
	flags.String(config.SettingLogFile, "", "also write logs to file in JSON format")

	for _, key := range []string{
		config.SettingFile,
		config.SettingConfig,
		config.SettingClean,
		config.SettingLogFormat,
		config.SettingLogFile,
	} {
		// Lookup cannot fail for flags defined above.
		_ = opts.v.BindPFlag(key, flags.Lookup(key))
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.WithKind(errors.KindArgument, err)
	})

	return rootCmd
}

// setupLogging configures the logger from the verbosity and log flags and
// stores it in the command context.
func (o *options) setupLogging(cmd *cobra.Command) error {
	settings := config.SettingsFrom(o.v)

	format, err := logging.ParseFormat(settings.LogFormat)
	if err != nil {
		return err
	}

	logOpts := logging.Options{
		Level:  logging.LevelFromVerbosity(o.verbosity),
		Format: format,
		Output: cmd.ErrOrStderr(),
	}

	if settings.LogFile != "" {
		f, err := os.OpenFile(settings.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.System(err, "failed to open log file")
		}
		o.logFile = f
		logOpts.File = f
	}

	logger := logging.New(logOpts)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

func (o *options) closeLogFile() error {
	if o.logFile == nil {
		return nil
	}
	err := o.logFile.Close()
	o.logFile = nil
	return errors.Wrap(err, "closing log file")
}

// Execute runs the root command for mode and returns the process exit code.
func Execute(mode Mode) int {
	return executeWith(NewRootCommand(mode), os.Args[1:], os.Stderr)
}

func executeWith(rootCmd *cobra.Command, args []string, stderr io.Writer) int {
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	if err == nil {
		return errors.ExitSuccess
	}

	printError(stderr, err)
	return errors.ExitCodeOf(err)
}

// printError writes err the way every failure is reported: "{kind}: {message}".
func printError(w io.Writer, err error) {
	if errors.KindOf(err) == errors.KindUnknown {
		err = errors.WithKind(errors.KindUnknown, err)
	}

	red := color.New(color.FgRed, color.Bold)
	if !logging.SupportsColor(w) {
		red.DisableColor()
	}
	red.Fprintln(w, err.Error())

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
		fmt.Fprintf(w, "hint: %s\n", exitErr.Suggestion)
	}
}
