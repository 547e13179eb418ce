package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/thoreinstein/dotbackup/internal/paths"
)

// EnvPrefix is the prefix of environment variables read into Settings.
const EnvPrefix = "DOTBACKUP"

// Setting keys shared by flags and environment variables.
const (
	SettingFile      = "file"
	SettingConfig    = "config"
	SettingClean     = "clean"
	SettingLogFormat = "log-format"
	SettingLogFile   = "log-file"
)

// Settings are the tool options that do not come from the document.
type Settings struct {
	// File is an explicit document path (-f).
	File string
	// Config is a document name under the config directory (-c).
	Config    string
	Clean     bool
	LogFormat string
	LogFile   string
}

// NewViper returns a viper instance reading DOTBACKUP_* environment
// variables, e.g. DOTBACKUP_FILE or DOTBACKUP_LOG_FORMAT.
// Callers bind their flags on top of it.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(SettingFile, "")
	v.SetDefault(SettingConfig, "")
	v.SetDefault(SettingClean, false)
	v.SetDefault(SettingLogFormat, "text")
	v.SetDefault(SettingLogFile, "")
	return v
}

// SettingsFrom reads Settings out of v.
func SettingsFrom(v *viper.Viper) Settings {
	return Settings{
		File:      v.GetString(SettingFile),
		Config:    v.GetString(SettingConfig),
		Clean:     v.GetBool(SettingClean),
		LogFormat: v.GetString(SettingLogFormat),
		LogFile:   v.GetString(SettingLogFile),
	}
}

// DocumentPath returns the document to load: the explicit file, else the
// named configuration, else the default document.
func (s Settings) DocumentPath() (string, error) {
	if s.File != "" {
		return paths.Expand(s.File)
	}
	if s.Config != "" {
		return paths.NamedConfigPath(s.Config)
	}
	return paths.DefaultConfigPath()
}
