package fileutil

import (
	"bytes"
	"os"
	"testing"

	"github.com/spf13/afero"

	"github.com/thoreinstein/dotbackup/internal/errors"
)

func TestReadFileWithLimit(t *testing.T) {
	fs := afero.NewMemMapFs()

	if err := afero.WriteFile(fs, "/small.yml", []byte("apps: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	data, err := ReadFileWithLimit(fs, "/small.yml")
	if err != nil {
		t.Fatalf("ReadFileWithLimit() error = %v", err)
	}
	if string(data) != "apps: {}\n" {
		t.Errorf("content = %q", data)
	}

	if err := afero.WriteFile(fs, "/exact.yml", bytes.Repeat([]byte("a"), MaxFileSize), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFileWithLimit(fs, "/exact.yml"); err != nil {
		t.Errorf("file at the limit: error = %v", err)
	}

	if err := afero.WriteFile(fs, "/large.yml", bytes.Repeat([]byte("a"), MaxFileSize+1), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFileWithLimit(fs, "/large.yml"); !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("large file: error = %v, want ErrFileTooLarge", err)
	}

	if _, err := ReadFileWithLimit(fs, "/missing.yml"); !os.IsNotExist(err) {
		t.Errorf("missing file: error = %v, want not exist", err)
	}
}
