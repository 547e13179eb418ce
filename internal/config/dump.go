package config

import (
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const indentUnit = "  "

// String renders the configuration in the --dump-config layout.
func (c *Config) String() string {
	var b strings.Builder

	if c.BackupDir != "" {
		b.WriteString("backup_dir: " + scalar(c.BackupDir) + "\n")
	}
	b.WriteString("clean: " + strconv.FormatBool(c.Clean) + "\n")
	writeArray(&b, keyIgnore, c.Ignore.Strings(), 0)

	if len(c.Selected) > 0 {
		quoted := make([]string, len(c.Selected))
		for i, s := range c.Selected {
			quoted[i] = strconv.Quote(s)
		}
		b.WriteString("# selected_apps: [" + strings.Join(quoted, ", ") + "]\n")
	}

	if len(c.Apps) > 0 {
		b.WriteString(keyApps + ":\n")
		for _, app := range c.Apps {
			b.WriteString(indentUnit + scalar(app.Name) + ":\n")
			writeArray(&b, keyFiles, app.Files, 2)
			writeArray(&b, keyIgnore, app.Ignore.Strings(), 2)
			writeHooks(&b, app.Hooks, 2)
		}
	}

	writeHooks(&b, c.Hooks, 0)
	return b.String()
}

// Dump writes the --dump-config rendering to w.
func (c *Config) Dump(w io.Writer) error {
	_, err := io.WriteString(w, c.String())
	return err
}

func writeHooks(b *strings.Builder, h Hooks, level int) {
	writeArray(b, keyPreBackup, h.PreBackup, level)
	writeArray(b, keyPostBackup, h.PostBackup, level)
	writeArray(b, keyPreSetup, h.PreSetup, level)
	writeArray(b, keyPostSetup, h.PostSetup, level)
}

// writeArray writes name and its items at level. Empty arrays are omitted.
func writeArray(b *strings.Builder, name string, items []string, level int) {
	if len(items) == 0 {
		return
	}

	indent := strings.Repeat(indentUnit, level)
	b.WriteString(indent + name + ":\n")

	indent += indentUnit
	for _, item := range items {
		if !strings.Contains(item, "\n") || strings.Trim(item, "\n") == "" {
			b.WriteString(indent + "- " + scalar(item) + "\n")
			continue
		}
		writeLiteral(b, item, indent)
	}
}

// writeLiteral writes item as a literal block entry of a sequence whose dashes
// sit at indent. The body goes one level below the dash.
func writeLiteral(b *strings.Builder, item, indent string) {
	body := item
	chomp := "-"
	switch {
	case strings.HasSuffix(item, "\n\n"):
		chomp = "+"
		body = strings.TrimSuffix(item, "\n")
	case strings.HasSuffix(item, "\n"):
		chomp = ""
		body = strings.TrimSuffix(item, "\n")
	}

	lines := strings.Split(body, "\n")

	// A leading space on the first content line would be read as indentation.
	header := "|"
	for _, line := range lines {
		if line == "" {
			continue
		}
		if line[0] == ' ' {
			header += strconv.Itoa(len(indentUnit))
		}
		break
	}
	header += chomp

	b.WriteString(indent + "- " + header + "\n")
	for _, line := range lines {
		if line == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString(indent + indentUnit + line + "\n")
	}
}

// scalar renders s as a YAML scalar, quoting it only when a plain scalar
// would read back differently (e.g. "*.log").
func scalar(s string) string {
	out, err := yaml.Marshal(s)
	if err != nil {
		return strconv.Quote(s)
	}
	text := strings.TrimSuffix(string(out), "\n")
	if strings.Contains(text, "\n") {
		// Folded long lines would lose the surrounding indentation.
		return strconv.Quote(s)
	}
	return text
}
