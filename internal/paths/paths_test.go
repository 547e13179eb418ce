package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/thoreinstein/dotbackup/internal/errors"
)

func TestResolveHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ResolveHome()
	if err != nil {
		t.Fatalf("ResolveHome() error = %v", err)
	}
	if got != home {
		t.Errorf("ResolveHome() = %q, want %q", got, home)
	}
}

func TestResolveHome_FollowsEnvironment(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	t.Setenv("HOME", first)
	if got, _ := ResolveHome(); got != first {
		t.Fatalf("ResolveHome() = %q, want %q", got, first)
	}

	t.Setenv("HOME", second)
	if got, _ := ResolveHome(); got != second {
		t.Errorf("ResolveHome() after change = %q, want %q", got, second)
	}
}

func TestConfigHome(t *testing.T) {
	got := ConfigHome()
	if got == "" {
		t.Error("ConfigHome() returned empty string")
	}
	if !filepath.IsAbs(got) {
		t.Errorf("ConfigHome() = %q, want absolute path", got)
	}
}

func TestConfigDir(t *testing.T) {
	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	want := filepath.Join(ConfigHome(), "dotbackup")
	if got != want {
		t.Errorf("ConfigDir() = %q, want %q", got, want)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	got, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("DefaultConfigPath() error = %v", err)
	}
	dir, _ := ConfigDir()
	base := filepath.Base(got)
	if filepath.Dir(got) != dir {
		t.Errorf("DefaultConfigPath() dir = %q, want %q", filepath.Dir(got), dir)
	}
	switch base {
	case "dotbackup.yml", "dotbackup.yaml", "dotbackup.toml":
	default:
		t.Errorf("DefaultConfigPath() base = %q, want dotbackup.{yml,yaml,toml}", base)
	}
}

func TestNamedConfigPathIn(t *testing.T) {
	tests := []struct {
		name    string
		present []string
		want    string
	}{
		{
			name: "nothing present falls back to yml",
			want: "work.yml",
		},
		{
			name:    "yml preferred",
			present: []string{"work.yml", "work.yaml", "work.toml"},
			want:    "work.yml",
		},
		{
			name:    "yaml before toml",
			present: []string{"work.yaml", "work.toml"},
			want:    "work.yaml",
		},
		{
			name:    "toml alone",
			present: []string{"work.toml"},
			want:    "work.toml",
		},
		{
			name:    "other names ignored",
			present: []string{"home.toml"},
			want:    "work.yml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.present {
				if err := os.WriteFile(filepath.Join(dir, f), nil, 0o644); err != nil {
					t.Fatal(err)
				}
			}

			got := namedConfigPathIn(dir, "work")
			if want := filepath.Join(dir, tt.want); got != want {
				t.Errorf("namedConfigPathIn() = %q, want %q", got, want)
			}
		})
	}
}

func TestExpand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bare tilde", "~", home},
		{"tilde slash", "~/", home},
		{"home relative", "~/.config/nvim", filepath.Join(home, ".config", "nvim")},
		{"nested", "~/a/b/c.txt", filepath.Join(home, "a", "b", "c.txt")},
		{"absolute unchanged", "/etc/hosts", "/etc/hosts"},
		{"relative unchanged", "relative/path", "relative/path"},
		{"other user unchanged", "~bob/.zshrc", "~bob/.zshrc"},
		{"tilde inside unchanged", "/tmp/~/x", "/tmp/~/x"},
		{"empty unchanged", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(tt.raw)
			if err != nil {
				t.Fatalf("Expand(%q) error = %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("Expand(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestExpand_NoHome(t *testing.T) {
	t.Setenv("HOME", "")

	// Unexpandable forms never consult the home directory.
	got, err := Expand("/etc/hosts")
	if err != nil || got != "/etc/hosts" {
		t.Fatalf("Expand(/etc/hosts) = %q, %v", got, err)
	}

	_, err = Expand("~/.zshrc")
	if err == nil {
		// go-homedir falls back to the passwd database; nothing to assert then.
		t.Skip("home directory resolvable without HOME")
	}
	if !errors.Is(err, ErrHomeDirNotFound) {
		t.Errorf("Expand() error = %v, want ErrHomeDirNotFound", err)
	}
	if errors.KindOf(err) != errors.KindSystem {
		t.Errorf("Expand() error kind = %v, want %v", errors.KindOf(err), errors.KindSystem)
	}
}

func TestRel(t *testing.T) {
	tests := []struct {
		name    string
		root    string
		p       string
		wantRel string
		wantOK  bool
	}{
		{"direct child", "/home/alice", "/home/alice/.zshrc", ".zshrc", true},
		{"nested", "/home/alice", "/home/alice/.config/nvim", filepath.Join(".config", "nvim"), true},
		{"root itself", "/home/alice", "/home/alice", ".", true},
		{"trailing slash", "/home/alice/", "/home/alice/.zshrc", ".zshrc", true},
		{"sibling prefix", "/home/alice", "/home/alicia/.zshrc", "", false},
		{"parent", "/home/alice", "/home", "", false},
		{"outside", "/home/alice", "/etc/hosts", "", false},
		{"dotdot escape", "/home/alice", "/home/alice/../bob/.zshrc", "", false},
		{"relative path", "/home/alice", ".zshrc", "", false},
		{"dotdot prefixed name", "/home/alice", "/home/alice/..hidden", "..hidden", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rel, ok := Rel(tt.root, tt.p)
			if ok != tt.wantOK {
				t.Fatalf("Rel(%q, %q) ok = %v, want %v", tt.root, tt.p, ok, tt.wantOK)
			}
			if rel != tt.wantRel {
				t.Errorf("Rel(%q, %q) = %q, want %q", tt.root, tt.p, rel, tt.wantRel)
			}
		})
	}
}
