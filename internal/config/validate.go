package config

import (
	"path/filepath"

	"github.com/thoreinstein/dotbackup/internal/errors"
	"github.com/thoreinstein/dotbackup/internal/paths"
)

// Validation problems reported by Validate.
var (
	// ErrDuplicateApp indicates two apps share a name; only the first is selectable.
	ErrDuplicateApp = errors.New("duplicate app name")

	// ErrRelativeBackupDir indicates backup_dir is not absolute.
	ErrRelativeBackupDir = errors.New("backup_dir is relative")

	// ErrOutsideRoot indicates a file does not live strictly under the
	// configuration root. The root itself is outside too.
	ErrOutsideRoot = errors.New("configuration file not under configuration root")

	// ErrOverlap indicates a file and its backup location contain each other,
	// as when backup_dir lies inside a backed up directory.
	ErrOverlap = errors.New("configuration file overlaps backup directory")
)

// StoredPath checks live against root and backupDir and returns where live
// is kept inside backupDir. It fails with ErrOutsideRoot when live is not
// strictly under root, and with ErrOverlap when live and its stored path
// contain each other.
func StoredPath(root, backupDir, live string) (string, error) {
	rel, ok := paths.Rel(root, live)
	if !ok || rel == "." {
		return "", errors.Mark(
			errors.Configf("configuration file not under configuration root: %s", live),
			ErrOutsideRoot,
		)
	}

	stored := filepath.Join(backupDir, rel)
	_, storedInLive := paths.Rel(live, stored)
	_, liveInStored := paths.Rel(stored, live)
	if storedInLive || liveInStored {
		return "", errors.Mark(
			errors.Configf("configuration file overlaps backup directory: %s contains %s", live, backupDir),
			ErrOverlap,
		)
	}
	return stored, nil
}

// Validate checks cfg against the configuration root (the home directory)
// and returns every problem found. None of them stop loading; backup and
// setup fail on a bad file only when they reach its app.
func Validate(cfg *Config, root string) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.BackupDir != "" && !filepath.IsAbs(cfg.BackupDir) {
		errs = append(errs, errors.Wrap(ErrRelativeBackupDir, cfg.BackupDir))
	}

	seen := make(map[string]bool, len(cfg.Apps))
	for _, app := range cfg.Apps {
		if seen[app.Name] {
			errs = append(errs, errors.Wrap(ErrDuplicateApp, app.Name))
		}
		seen[app.Name] = true

		if root == "" {
			continue
		}
		for _, f := range app.Files {
			if _, err := StoredPath(root, cfg.BackupDir, f); err != nil {
				errs = append(errs, errors.Wrapf(err, "app %s", app.Name))
			}
		}
	}

	return errs
}
