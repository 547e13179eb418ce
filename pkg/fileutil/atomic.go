// Package fileutil provides afero-backed file helpers: atomic writes and
// size-limited reads.
package fileutil

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/thoreinstein/dotbackup/internal/errors"
)

// tempPattern names the temporary file created next to the target.
const tempPattern = ".dotbackup-atomic-*.tmp"

// AtomicWrite streams the output of fill into path using a temp file + rename,
// so an interrupted write leaves the previous file intact.
//
// The caller is responsible for ensuring the parent directory exists.
func AtomicWrite(fs afero.Fs, path string, perm os.FileMode, fill func(io.Writer) error) error {
	tmp, err := afero.TempFile(fs, filepath.Dir(path), tempPattern)
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}

	tmpName := tmp.Name()
	renamed := false
	defer func() {
		if !renamed {
			_ = fs.Remove(tmpName)
		}
	}()

	if err := fill(tmp); err != nil {
		_ = tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}

	if err := fs.Chmod(tmpName, perm); err != nil {
		return errors.Wrap(err, "setting file permissions")
	}

	if err := fs.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "renaming temp file")
	}
	renamed = true

	return nil
}

// AtomicWriteFile writes data to path atomically.
func AtomicWriteFile(fs afero.Fs, path string, data []byte, perm os.FileMode) error {
	return AtomicWrite(fs, path, perm, func(w io.Writer) error {
		_, err := io.Copy(w, bytes.NewReader(data))
		return errors.Wrap(err, "writing temp file")
	})
}
