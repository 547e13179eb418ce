package copier

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/dotbackup/internal/ignore"
	"github.com/thoreinstein/dotbackup/internal/logging"
)

func testContext(t *testing.T) context.Context {
	return logging.NewContext(context.Background(), logging.ForTest(t))
}

func writeFiles(t *testing.T, fs afero.Fs, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(name), 0o755))
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
}

func readFile(t *testing.T, fs afero.Fs, name string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, name)
	require.NoError(t, err)
	return string(data)
}

func TestCopier_CopyTree(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/src/a.txt":          "alpha",
		"/src/sub/b.txt":      "beta",
		"/src/sub/deep/c.txt": "gamma",
		"/src/empty/.keep":    "",
	})

	c := New(WithFs(fs))
	require.NoError(t, c.CopyTree(testContext(t), "/src", "/dest", ignore.Set{}))

	assert.Equal(t, "alpha", readFile(t, fs, "/dest/a.txt"))
	assert.Equal(t, "beta", readFile(t, fs, "/dest/sub/b.txt"))
	assert.Equal(t, "gamma", readFile(t, fs, "/dest/sub/deep/c.txt"))
	assert.Equal(t, "", readFile(t, fs, "/dest/empty/.keep"))
}

func TestCopier_CopyTree_Ignore(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/src/a.log":        "skip me",
		"/src/b.txt":        "keep",
		"/src/cache/x.txt":  "skip subtree",
		"/src/nested/c.log": "skip nested",
		"/src/nested/d.txt": "keep nested",
		"/src/z.txt":        "keep last",
	})

	c := New(WithFs(fs))
	ign := ignore.MustCompile("*.log", "cache")
	require.NoError(t, c.CopyTree(testContext(t), "/src", "/dest", ign))

	// Siblings after an ignored entry are still copied.
	assert.Equal(t, "keep", readFile(t, fs, "/dest/b.txt"))
	assert.Equal(t, "keep nested", readFile(t, fs, "/dest/nested/d.txt"))
	assert.Equal(t, "keep last", readFile(t, fs, "/dest/z.txt"))

	for _, p := range []string{"/dest/a.log", "/dest/cache", "/dest/nested/c.log"} {
		ok, err := afero.Exists(fs, p)
		require.NoError(t, err)
		assert.False(t, ok, "%s should have been ignored", p)
	}
}

func TestCopier_CopyTree_OverwritesWithoutRemoving(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/src/a.txt":  "new",
		"/dest/a.txt": "old",
		"/dest/extra": "stale",
	})

	c := New(WithFs(fs))
	require.NoError(t, c.CopyTree(testContext(t), "/src", "/dest", ignore.Set{}))

	assert.Equal(t, "new", readFile(t, fs, "/dest/a.txt"))
	assert.Equal(t, "stale", readFile(t, fs, "/dest/extra"))
}

func TestCopier_CopyTree_MissingSource(t *testing.T) {
	c := New(WithFs(afero.NewMemMapFs()))
	err := c.CopyTree(testContext(t), "/nope", "/dest", ignore.Set{})
	require.Error(t, err)
}

func TestCopier_CopyTree_Cancelled(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{"/src/a.txt": "a"})

	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	c := New(WithFs(fs))
	require.Error(t, c.CopyTree(ctx, "/src", "/dest", ignore.Set{}))
}

func TestCopier_CopyFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{"/src/a.sh": "#!/bin/sh\necho hi\n"})
	require.NoError(t, fs.Chmod("/src/a.sh", 0o755))
	require.NoError(t, fs.MkdirAll("/dest", 0o755))

	c := New(WithFs(fs))
	require.NoError(t, c.CopyFile(testContext(t), "/src/a.sh", "/dest/a.sh"))

	assert.Equal(t, "#!/bin/sh\necho hi\n", readFile(t, fs, "/dest/a.sh"))
	info, err := fs.Stat("/dest/a.sh")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestCopier_CopyFile_Truncates(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/src":  "short",
		"/dest": "a much longer previous content",
	})

	c := New(WithFs(fs))
	require.NoError(t, c.CopyFile(testContext(t), "/src", "/dest"))
	assert.Equal(t, "short", readFile(t, fs, "/dest"))
}

func TestCopier_Remove(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/tree/a/b.txt": "b",
		"/file.txt":     "f",
	})

	c := New(WithFs(fs))
	ctx := testContext(t)

	require.NoError(t, c.Remove(ctx, "/tree"))
	require.NoError(t, c.Remove(ctx, "/file.txt"))
	require.NoError(t, c.Remove(ctx, "/missing"))

	for _, p := range []string{"/tree", "/file.txt"} {
		ok, err := afero.Exists(fs, p)
		require.NoError(t, err)
		assert.False(t, ok, "%s should be removed", p)
	}
}

func TestCopier_MkdirAll(t *testing.T) {
	fs := afero.NewMemMapFs()
	c := New(WithFs(fs))

	require.NoError(t, c.MkdirAll(testContext(t), "/a/b/c"))
	ok, err := afero.DirExists(fs, "/a/b/c")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, c.MkdirAll(testContext(t), "/a/b/c"))
}

func TestCopier_ExistsAndIsRegular(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{"/dir/file": "x"})
	c := New(WithFs(fs))

	ok, err := c.Exists("/dir/file")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Exists("/dir/none")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.True(t, c.IsRegular("/dir/file"))
	assert.False(t, c.IsRegular("/dir"))
	assert.False(t, c.IsRegular("/dir/none"))
}

func TestCopier_Symlinks_OsFs(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	dest := filepath.Join(root, "dest")

	require.NoError(t, os.MkdirAll(filepath.Join(src, "real"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "real", "f.txt"), []byte("data"), 0o644))
	if err := os.Symlink("real/f.txt", filepath.Join(src, "link")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	require.NoError(t, os.Symlink("missing-target", filepath.Join(src, "dangling")))

	c := New()
	ctx := testContext(t)
	require.NoError(t, c.CopyTree(ctx, src, dest, ignore.Set{}))

	target, err := os.Readlink(filepath.Join(dest, "link"))
	require.NoError(t, err)
	assert.Equal(t, "real/f.txt", target)

	target, err = os.Readlink(filepath.Join(dest, "dangling"))
	require.NoError(t, err)
	assert.Equal(t, "missing-target", target)

	data, err := os.ReadFile(filepath.Join(dest, "link"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))

	// A second copy replaces links in place.
	require.NoError(t, os.Remove(filepath.Join(src, "link")))
	require.NoError(t, os.Symlink("real", filepath.Join(src, "link")))
	require.NoError(t, c.CopyTree(ctx, src, dest, ignore.Set{}))

	target, err = os.Readlink(filepath.Join(dest, "link"))
	require.NoError(t, err)
	assert.Equal(t, "real", target)
}

func TestCopier_PreservesMode_OsFs(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	dest := filepath.Join(root, "dest")
	require.NoError(t, os.MkdirAll(src, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "secret"), []byte("s"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(src, "run.sh"), []byte("r"), 0o755))

	c := New()
	require.NoError(t, c.CopyTree(testContext(t), src, dest, ignore.Set{}))

	for name, want := range map[string]os.FileMode{"secret": 0o600, "run.sh": 0o755} {
		info, err := os.Stat(filepath.Join(dest, name))
		require.NoError(t, err)
		assert.Equal(t, want, info.Mode().Perm(), name)
	}
}
