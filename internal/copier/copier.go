package copier

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/thoreinstein/dotbackup/internal/errors"
	"github.com/thoreinstein/dotbackup/internal/ignore"
	"github.com/thoreinstein/dotbackup/internal/logging"
)

// DefaultDirPerm is the permission used for directories the copier creates.
const DefaultDirPerm os.FileMode = 0o755

// Copier copies files and trees on a single filesystem.
type Copier struct {
	fs afero.Fs
}

// Option configures a Copier.
type Option func(*Copier)

// WithFs sets the filesystem. Defaults to the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(c *Copier) {
		c.fs = fs
	}
}

// New creates a Copier with the given options.
func New(opts ...Option) *Copier {
	c := &Copier{fs: afero.NewOsFs()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Exists reports whether path exists. A symlink counts only if its target exists.
func (c *Copier) Exists(path string) (bool, error) {
	return afero.Exists(c.fs, path)
}

// IsRegular reports whether path resolves to a regular file.
func (c *Copier) IsRegular(path string) bool {
	info, err := c.fs.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// MkdirAll creates path and any missing parents.
func (c *Copier) MkdirAll(ctx context.Context, path string) error {
	if ok, _ := afero.DirExists(c.fs, path); ok {
		return nil
	}
	logging.FromContext(ctx).Debug("mkdir", "path", path)
	if err := c.fs.MkdirAll(path, DefaultDirPerm); err != nil {
		return errors.System(err, "failed to create directory "+path)
	}
	return nil
}

// Remove deletes path whether it is a file, a symlink or a directory tree.
// A missing path is not an error.
func (c *Copier) Remove(ctx context.Context, path string) error {
	if _, err := c.lstat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.System(err, "failed to inspect "+path)
	}
	logging.FromContext(ctx).Debug("clean", "path", path)
	if err := c.fs.RemoveAll(path); err != nil {
		return errors.System(err, "failed to remove "+path)
	}
	return nil
}

// CopyFile copies the contents of src to dest, overwriting dest and giving it
// the permission bits of src. Symlinks at src are followed.
func (c *Copier) CopyFile(ctx context.Context, src, dest string) error {
	logging.FromContext(ctx).Log(ctx, logging.LevelTrace, "copy", "src", src, "dest", dest)

	in, err := c.fs.Open(src)
	if err != nil {
		return errors.System(err, "failed to open "+src)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return errors.System(err, "failed to stat "+src)
	}
	mode := info.Mode().Perm()

	out, err := c.fs.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return errors.System(err, "failed to create "+dest)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.System(err, "failed to copy "+src+" to "+dest)
	}

	if err := out.Close(); err != nil {
		return errors.System(err, "failed to close "+dest)
	}

	// OpenFile only applies mode on creation.
	if err := c.fs.Chmod(dest, mode); err != nil {
		return errors.System(err, "failed to set permissions on "+dest)
	}

	return nil
}

// CopyTree recursively copies the directory src into dest, creating dest
// if needed. Entries whose name matches ign are skipped.
func (c *Copier) CopyTree(ctx context.Context, src, dest string, ign ignore.Set) error {
	logger := logging.FromContext(ctx)

	if err := c.MkdirAll(ctx, dest); err != nil {
		return err
	}

	entries, err := afero.ReadDir(c.fs, src)
	if err != nil {
		return errors.System(err, "failed to read directory "+src)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return errors.System(err, "copy interrupted")
		}

		name := entry.Name()
		from := filepath.Join(src, name)
		to := filepath.Join(dest, name)

		if ign.Match(name) {
			logger.Debug("ignore", "path", from)
			continue
		}

		logger.Log(ctx, logging.LevelTrace, "visit", "path", from)

		if err := c.copyEntry(ctx, entry, from, to, ign); err != nil {
			return err
		}
	}

	return nil
}

func (c *Copier) copyEntry(ctx context.Context, entry os.FileInfo, from, to string, ign ignore.Set) error {
	mode := entry.Mode()

	if mode&os.ModeSymlink != 0 {
		if linker, ok := c.fs.(afero.Symlinker); ok {
			return c.copySymlink(ctx, linker, from, to)
		}
		info, err := c.fs.Stat(from)
		if err != nil {
			return errors.System(err, "failed to resolve symlink "+from)
		}
		mode = info.Mode()
	}

	switch {
	case mode.IsDir():
		return c.CopyTree(ctx, from, to, ign)
	case mode.IsRegular():
		return c.CopyFile(ctx, from, to)
	default:
		logging.FromContext(ctx).Warn("skipping special file", "path", from, "mode", mode.String())
		return nil
	}
}

func (c *Copier) copySymlink(ctx context.Context, linker afero.Symlinker, from, to string) error {
	target, err := linker.ReadlinkIfPossible(from)
	if err != nil {
		return errors.System(err, "failed to read symlink "+from)
	}

	if existing, err := c.lstat(to); err == nil {
		if existing.Mode()&os.ModeSymlink != 0 {
			if cur, err := linker.ReadlinkIfPossible(to); err == nil && cur == target {
				return nil
			}
		}
		if err := c.fs.RemoveAll(to); err != nil {
			return errors.System(err, "failed to replace "+to)
		}
	}

	logging.FromContext(ctx).Log(ctx, logging.LevelTrace, "symlink", "dest", to, "target", target)
	if err := linker.SymlinkIfPossible(target, to); err != nil {
		return errors.System(err, "failed to create symlink "+to)
	}
	return nil
}

func (c *Copier) lstat(path string) (os.FileInfo, error) {
	if l, ok := c.fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return c.fs.Stat(path)
}
