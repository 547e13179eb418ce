package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/thoreinstein/dotbackup/internal/errors"
	"github.com/thoreinstein/dotbackup/pkg/fileutil"
)

// Format is a configuration document syntax.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

func (f Format) String() string {
	if f == FormatTOML {
		return "toml"
	}
	return "yaml"
}

// FormatFromPath picks the document syntax from the file extension.
// Anything other than .toml is read as YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// ParseValue decodes data into a Value using the front-end for f.
func ParseValue(data []byte, f Format) (Value, error) {
	if f == FormatTOML {
		return ParseTOML(data)
	}
	return ParseYAML(data)
}

// Parse decodes a document into a Config.
func Parse(data []byte, f Format) (*Config, error) {
	v, err := ParseValue(data, f)
	if err != nil {
		return nil, err
	}
	return Decode(v)
}

// Load reads and decodes the document at path from the OS filesystem.
func Load(path string) (*Config, error) {
	return LoadFs(afero.NewOsFs(), path)
}

// LoadFs reads and decodes the document at path from fs.
// A file that cannot be read, or exceeds fileutil.MaxFileSize, is a system error.
func LoadFs(fs afero.Fs, path string) (*Config, error) {
	data, err := fileutil.ReadFileWithLimit(fs, path)
	if err != nil {
		return nil, errors.System(err, "failed to open "+path)
	}
	return Parse(data, FormatFromPath(path))
}
