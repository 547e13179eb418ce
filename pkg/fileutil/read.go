package fileutil

import (
	"io"

	"github.com/spf13/afero"

	"github.com/thoreinstein/dotbackup/internal/errors"
)

// MaxFileSize is the largest file ReadFileWithLimit accepts (1MB).
const MaxFileSize = 1024 * 1024

// ErrFileTooLarge indicates that a file exceeded MaxFileSize.
var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxFileSize)

// ReadFileWithLimit reads the file at path from fs, failing with
// ErrFileTooLarge past MaxFileSize.
func ReadFileWithLimit(fs afero.Fs, path string) ([]byte, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Size() > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	return data, nil
}
