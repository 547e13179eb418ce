package config

import (
	"github.com/thoreinstein/dotbackup/internal/errors"
	"github.com/thoreinstein/dotbackup/internal/ignore"
)

// Hooks holds the shell scripts run around backup and setup.
type Hooks struct {
	PreBackup  []string
	PostBackup []string
	PreSetup   []string
	PostSetup  []string
}

// App is a named group of configuration files backed up and restored together.
type App struct {
	Name string
	// Files are absolute paths after home expansion.
	Files  []string
	Ignore ignore.Set
	Hooks  Hooks
}

// Config is the effective configuration for one run.
type Config struct {
	// BackupDir is empty when the document does not set it.
	BackupDir string
	Clean     bool
	Ignore    ignore.Set
	Apps      []App
	// Selected lists the apps to operate on; empty means all of them.
	Selected []string
	Hooks    Hooks
}

// Overrides carries command line adjustments applied on top of a document.
type Overrides struct {
	// Clean can only turn cleaning on.
	Clean    bool
	Selected []string
}

// Merge returns the effective configuration for doc with overrides applied.
// doc is not modified.
func Merge(doc *Config, o Overrides) *Config {
	out := *doc
	out.Clean = doc.Clean || o.Clean
	out.Apps = append([]App(nil), doc.Apps...)
	if len(o.Selected) > 0 {
		out.Selected = append([]string(nil), o.Selected...)
	} else {
		out.Selected = append([]string(nil), doc.Selected...)
	}
	return &out
}

// App returns the first app named name.
func (c *Config) App(name string) (*App, bool) {
	for i := range c.Apps {
		if c.Apps[i].Name == name {
			return &c.Apps[i], true
		}
	}
	return nil, false
}

// AppNames returns the app names in declaration order.
func (c *Config) AppNames() []string {
	names := make([]string, 0, len(c.Apps))
	for _, a := range c.Apps {
		names = append(names, a.Name)
	}
	return names
}

// ResolveApps returns the apps an operation acts on: every app in
// declaration order when nothing is selected, otherwise the first app
// matching each selected name, in selection order.
// An unknown name is a CLI argument error.
func (c *Config) ResolveApps() ([]App, error) {
	if len(c.Selected) == 0 {
		return c.Apps, nil
	}

	apps := make([]App, 0, len(c.Selected))
	for _, name := range c.Selected {
		app, ok := c.App(name)
		if !ok {
			return nil, errors.Mark(errors.Argumentf("app not found: %s", name), errors.ErrNotFound)
		}
		apps = append(apps, *app)
	}
	return apps, nil
}
