// Package copier mirrors files and directory trees between the live
// configuration locations and the backup directory.
//
// All filesystem access goes through an [afero.Fs]: the OS filesystem in
// production, an in-memory filesystem in tests.
//
// # Tree Copies
//
// [Copier.CopyTree] visits the entries of a directory in name order. An entry
// whose name matches the ignore set is skipped together with its subtree, and
// the walk continues with its siblings. Directories are recreated, regular
// files are copied byte for byte with their permission bits, and symbolic
// links are recreated as links when the filesystem supports them. On a
// filesystem without symlink support the link target's contents are copied.
//
// Copies overwrite existing destination files. Nothing is ever removed from the
// destination unless the caller asks for it with [Copier.Remove].
package copier
