package sync

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/thoreinstein/dotbackup/internal/config"
	"github.com/thoreinstein/dotbackup/internal/copier"
	"github.com/thoreinstein/dotbackup/internal/errors"
	"github.com/thoreinstein/dotbackup/internal/hook"
	"github.com/thoreinstein/dotbackup/internal/ignore"
	"github.com/thoreinstein/dotbackup/internal/logging"
	"github.com/thoreinstein/dotbackup/internal/paths"
)

// Env is the per-run context handed to app operations.
type Env struct {
	// Root is the configuration root every file must live under.
	Root string
	// BackupDir is the archive location.
	BackupDir string
	Clean     bool
	// Ignore is the global ignore set, applied after the app's own patterns.
	Ignore ignore.Set
}

// Engine runs backup and setup for a configuration.
type Engine struct {
	cfg    *config.Config
	copier *copier.Copier
	hooks  *hook.Runner
	root   string
}

// Option configures an Engine.
type Option func(*Engine)

// WithCopier sets the copier. Defaults to one on the OS filesystem.
func WithCopier(c *copier.Copier) Option {
	return func(e *Engine) {
		e.copier = c
	}
}

// WithExecutor sets the executor hooks run through. Defaults to "sh -s".
func WithExecutor(x hook.Executor) Option {
	return func(e *Engine) {
		e.hooks = hook.NewRunner(x)
	}
}

// WithConfigRoot overrides the configuration root, normally the home directory.
func WithConfigRoot(root string) Option {
	return func(e *Engine) {
		e.root = root
	}
}

// New creates an Engine for cfg.
func New(cfg *config.Config, opts ...Option) *Engine {
	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	if e.copier == nil {
		e.copier = copier.New()
	}
	if e.hooks == nil {
		e.hooks = hook.NewRunner(hook.NewShellExecutor())
	}
	return e
}

// operation describes one direction of a run.
type operation struct {
	name    string
	pre     func(config.Hooks) []string
	post    func(config.Hooks) []string
	restore bool
}

var (
	backupOp = operation{
		name: "backup",
		pre:  func(h config.Hooks) []string { return h.PreBackup },
		post: func(h config.Hooks) []string { return h.PostBackup },
	}
	setupOp = operation{
		name:    "setup",
		pre:     func(h config.Hooks) []string { return h.PreSetup },
		post:    func(h config.Hooks) []string { return h.PostSetup },
		restore: true,
	}
)

// Backup copies every selected app from its live location into the backup directory.
func (e *Engine) Backup(ctx context.Context) error {
	return e.run(ctx, backupOp)
}

// Setup copies every selected app from the backup directory to its live location.
func (e *Engine) Setup(ctx context.Context) error {
	return e.run(ctx, setupOp)
}

// BackupApp backs up a single app.
func (e *Engine) BackupApp(ctx context.Context, app config.App, env Env) error {
	return e.runApp(ctx, backupOp, app, env)
}

// SetupApp restores a single app.
func (e *Engine) SetupApp(ctx context.Context, app config.App, env Env) error {
	return e.runApp(ctx, setupOp, app, env)
}

// Env returns the run environment derived from the configuration.
func (e *Engine) Env() (Env, error) {
	if e.cfg.BackupDir == "" {
		return Env{}, errors.Configf("backup_dir not set")
	}

	root := e.root
	if root == "" {
		home, err := paths.ResolveHome()
		if err != nil {
			return Env{}, err
		}
		root = home
	}

	return Env{
		Root:      root,
		BackupDir: e.cfg.BackupDir,
		Clean:     e.cfg.Clean,
		Ignore:    e.cfg.Ignore,
	}, nil
}

func (e *Engine) run(ctx context.Context, op operation) error {
	logger := logging.FromContext(ctx)

	env, err := e.Env()
	if err != nil {
		return err
	}

	apps, err := e.cfg.ResolveApps()
	if err != nil {
		return err
	}

	logger.Debug("starting run", "operation", op.name, "apps", len(apps), "backup_dir", env.BackupDir, "root", env.Root, "clean", env.Clean)

	if err := e.hooks.RunAll(ctx, op.pre(e.cfg.Hooks), env.BackupDir, "pre-"+op.name+" hooks"); err != nil {
		return err
	}

	for _, app := range apps {
		if err := e.runApp(ctx, op, app, env); err != nil {
			return err
		}
	}

	return e.hooks.RunAll(ctx, op.post(e.cfg.Hooks), env.BackupDir, "post-"+op.name+" hooks")
}

func (e *Engine) runApp(ctx context.Context, op operation, app config.App, env Env) error {
	logger := logging.FromContext(ctx).With("app", app.Name)
	ctx = logging.NewContext(ctx, logger)

	if err := e.hooks.RunAll(ctx, op.pre(app.Hooks), env.BackupDir, fmt.Sprintf("pre-%s hooks for %s", op.name, app.Name)); err != nil {
		return err
	}

	logger.Info(fmt.Sprintf("starting %s for %s", op.name, app.Name))

	transfers, err := plan(op, app, env)
	if err != nil {
		return err
	}

	ign := app.Ignore.Union(env.Ignore)
	for _, t := range transfers {
		if err := e.copyFile(ctx, t, env, ign); err != nil {
			return err
		}
	}

	return e.hooks.RunAll(ctx, op.post(app.Hooks), env.BackupDir, fmt.Sprintf("post-%s hooks for %s", op.name, app.Name))
}

// transfer is one planned copy.
type transfer struct {
	src, dest string
}

// plan checks every file of app before anything is copied, so a bad entry
// leaves both sides untouched.
func plan(op operation, app config.App, env Env) ([]transfer, error) {
	transfers := make([]transfer, 0, len(app.Files))
	for _, live := range app.Files {
		stored, err := config.StoredPath(env.Root, env.BackupDir, live)
		if err != nil {
			return nil, err
		}
		t := transfer{src: live, dest: stored}
		if op.restore {
			t.src, t.dest = t.dest, t.src
		}
		transfers = append(transfers, t)
	}
	return transfers, nil
}

// copyFile mirrors one planned transfer.
func (e *Engine) copyFile(ctx context.Context, t transfer, env Env, ign ignore.Set) error {
	logger := logging.FromContext(ctx)
	src, dest := t.src, t.dest

	exists, err := e.copier.Exists(src)
	if err != nil {
		return errors.System(err, "failed to inspect "+src)
	}
	if !exists {
		logger.Warn("file not found, skipping", "path", src)
		return nil
	}

	if err := e.copier.MkdirAll(ctx, filepath.Dir(dest)); err != nil {
		return err
	}

	if env.Clean {
		if err := e.copier.Remove(ctx, dest); err != nil {
			return err
		}
	}

	logger.Info("copy", "src", src, "dest", dest)
	if e.copier.IsRegular(src) {
		return e.copier.CopyFile(ctx, src, dest)
	}
	return e.copier.CopyTree(ctx, src, dest, ign)
}
