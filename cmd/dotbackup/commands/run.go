package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/thoreinstein/dotbackup/cmd"
	"github.com/thoreinstein/dotbackup/internal/cli/prompt"
	"github.com/thoreinstein/dotbackup/internal/config"
	"github.com/thoreinstein/dotbackup/internal/errors"
	"github.com/thoreinstein/dotbackup/internal/logging"
	"github.com/thoreinstein/dotbackup/internal/paths"
	"github.com/thoreinstein/dotbackup/internal/sync"
)

// run loads the configuration document and performs the requested action.
func (o *options) run(ctx context.Context, in io.Reader, out io.Writer, args []string) error {
	logger := logging.FromContext(ctx)
	settings := config.SettingsFrom(o.v)
	logger.Debug("build info", append([]any{"name", o.mode.Name()}, cmd.LogAttrs()...)...)

	docPath, err := settings.DocumentPath()
	if err != nil {
		return err
	}
	logger.Debug("loading configuration", "path", docPath)

	doc, err := config.Load(docPath)
	if err != nil {
		return err
	}

	cfg := config.Merge(doc, config.Overrides{
		Clean:    settings.Clean,
		Selected: args,
	})

	switch {
	case o.list:
		return listApps(out, cfg)
	case o.dumpConfig:
		return cfg.Dump(out)
	}

	if o.interactive {
		selected, err := o.pickApps(in, out, cfg, args)
		if err != nil {
			return err
		}
		cfg = config.Merge(cfg, config.Overrides{Selected: selected})
	}

	if root, err := paths.ResolveHome(); err == nil {
		for _, problem := range config.Validate(cfg, root) {
			logger.Debug("configuration problem", "error", problem)
		}
	}

	engine := sync.New(cfg)
	if o.mode == ModeSetup {
		return engine.Setup(ctx)
	}
	return engine.Backup(ctx)
}

func (o *options) pickApps(in io.Reader, out io.Writer, cfg *config.Config, args []string) ([]string, error) {
	if len(args) > 0 {
		return nil, errors.Argumentf("--interactive cannot be combined with app names")
	}

	selected, err := prompt.NewPicker(in, out).PickApps(cfg.Apps)
	if err != nil {
		if errors.KindOf(err) != errors.KindUnknown {
			return nil, err
		}
		return nil, errors.WithKind(errors.KindArgument, err)
	}
	return selected, nil
}

// listApps prints one configured app name per line, in document order.
func listApps(w io.Writer, cfg *config.Config) error {
	for _, name := range cfg.AppNames() {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return errors.System(err, "failed to write app list")
		}
	}
	return nil
}
