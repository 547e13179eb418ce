package prompt

import (
	"sort"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/dotbackup/internal/config"
	"github.com/thoreinstein/dotbackup/internal/errors"
)

// FuzzyPicker selects apps in a full-screen fuzzy finder. Tab marks
// several apps; the preview pane lists each app's files and hooks.
type FuzzyPicker struct{}

// PickApps returns the marked apps in declaration order.
func (p *FuzzyPicker) PickApps(apps []config.App) ([]string, error) {
	if len(apps) == 0 {
		return nil, ErrNoApps
	}

	idx, err := fuzzyfinder.FindMulti(
		apps,
		func(i int) string {
			return apps[i].Name
		},
		fuzzyfinder.WithPromptString("app> "),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return preview(apps[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "interactive selection failed")
	}

	sort.Ints(idx)
	names := make([]string, 0, len(idx))
	for _, i := range idx {
		names = append(names, apps[i].Name)
	}
	return names, nil
}

func preview(app config.App) string {
	var b strings.Builder
	b.WriteString(app.Name + "\n\nFiles:\n")
	for _, f := range app.Files {
		b.WriteString("  " + f + "\n")
	}
	if !app.Ignore.Empty() {
		b.WriteString("\nIgnore:\n")
		for _, p := range app.Ignore.Strings() {
			b.WriteString("  " + p + "\n")
		}
	}

	hooks := []struct {
		name    string
		scripts []string
	}{
		{"pre_backup", app.Hooks.PreBackup},
		{"post_backup", app.Hooks.PostBackup},
		{"pre_setup", app.Hooks.PreSetup},
		{"post_setup", app.Hooks.PostSetup},
	}
	for _, h := range hooks {
		if len(h.scripts) > 0 {
			b.WriteString("\n" + h.name + ": " + plural(len(h.scripts), "hook") + "\n")
		}
	}
	return b.String()
}
