package config

import (
	"github.com/thoreinstein/dotbackup/internal/errors"
	"github.com/thoreinstein/dotbackup/internal/ignore"
	"github.com/thoreinstein/dotbackup/internal/paths"
)

// Document keys.
const (
	keyBackupDir  = "backup_dir"
	keyClean      = "clean"
	keyIgnore     = "ignore"
	keyApps       = "apps"
	keyFiles      = "files"
	keyPreBackup  = "pre_backup"
	keyPostBackup = "post_backup"
	keyPreSetup   = "pre_setup"
	keyPostSetup  = "post_setup"
)

// Decode converts a parsed document into a Config. Paths are home-expanded
// and ignore patterns compiled. Unknown keys are ignored.
func Decode(doc Value) (*Config, error) {
	if doc.Kind != KindMapping {
		return nil, errors.Configf("configuration not valid")
	}
	root := doc.Map

	cfg := &Config{}

	if v, ok := root.Get(keyBackupDir); ok {
		if v.Kind != KindString {
			return nil, errors.Configf("expected %s to be a string", keyBackupDir)
		}
		dir, err := paths.Expand(v.Str)
		if err != nil {
			return nil, err
		}
		cfg.BackupDir = dir
	}

	if v, ok := root.Get(keyClean); ok {
		if v.Kind != KindBool {
			return nil, errors.Configf("expected %s to be a boolean", keyClean)
		}
		cfg.Clean = v.Bool
	}

	set, err := decodeIgnore(root)
	if err != nil {
		return nil, err
	}
	cfg.Ignore = set

	if v, ok := root.Get(keyApps); ok {
		apps, err := decodeApps(v)
		if err != nil {
			return nil, err
		}
		cfg.Apps = apps
	}

	hooks, err := decodeHooks(root)
	if err != nil {
		return nil, err
	}
	cfg.Hooks = hooks

	return cfg, nil
}

func decodeApps(v Value) ([]App, error) {
	if v.Kind != KindMapping {
		return nil, errors.Configf("expected %s to be a mapping", keyApps)
	}

	apps := make([]App, 0, v.Map.Len())
	for _, e := range v.Map.Entries {
		if e.Key.Kind != KindString {
			return nil, errors.Configf("expected app name to be a string, but found: %s", e.Key.Kind)
		}
		app, err := decodeApp(e.Key.Str, e.Value)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, nil
}

func decodeApp(name string, v Value) (App, error) {
	if v.Kind != KindMapping {
		return App{}, errors.Configf("expected app %s to be a mapping", name)
	}

	app := App{Name: name}

	files, err := stringArray(v.Map, keyFiles)
	if err != nil {
		return App{}, err
	}
	for _, f := range files {
		expanded, err := paths.Expand(f)
		if err != nil {
			return App{}, err
		}
		app.Files = append(app.Files, expanded)
	}

	if app.Ignore, err = decodeIgnore(v.Map); err != nil {
		return App{}, err
	}
	if app.Hooks, err = decodeHooks(v.Map); err != nil {
		return App{}, err
	}
	return app, nil
}

func decodeIgnore(m *Mapping) (ignore.Set, error) {
	patterns, err := stringArray(m, keyIgnore)
	if err != nil {
		return ignore.Set{}, err
	}
	return ignore.Compile(patterns)
}

func decodeHooks(m *Mapping) (Hooks, error) {
	var (
		h   Hooks
		err error
	)
	if h.PreBackup, err = stringArray(m, keyPreBackup); err != nil {
		return Hooks{}, err
	}
	if h.PostBackup, err = stringArray(m, keyPostBackup); err != nil {
		return Hooks{}, err
	}
	if h.PreSetup, err = stringArray(m, keyPreSetup); err != nil {
		return Hooks{}, err
	}
	if h.PostSetup, err = stringArray(m, keyPostSetup); err != nil {
		return Hooks{}, err
	}
	return h, nil
}

// stringArray reads key as a sequence of strings. A missing key yields nil.
func stringArray(m *Mapping, key string) ([]string, error) {
	v, ok := m.Get(key)
	if !ok {
		return nil, nil
	}
	if v.Kind != KindSequence {
		return nil, errors.Configf("expected %s to be an array", key)
	}

	out := make([]string, 0, len(v.Seq))
	for _, item := range v.Seq {
		if item.Kind != KindString {
			return nil, errors.Configf("expected element of %s to be string, but found: %s", key, item.Kind)
		}
		out = append(out, item.Str)
	}
	return out, nil
}
