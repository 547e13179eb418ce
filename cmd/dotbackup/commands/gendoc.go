package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra/doc"

	"github.com/thoreinstein/dotbackup/cmd"
	"github.com/thoreinstein/dotbackup/internal/errors"
	"github.com/thoreinstein/dotbackup/internal/paths"
	"github.com/thoreinstein/dotbackup/pkg/fileutil"
)

// Modes lists every binary built from the shared root command.
var Modes = []Mode{ModeBackup, ModeSetup}

func manHeader(mode Mode) *doc.GenManHeader {
	return &doc.GenManHeader{
		Title:   strings.ToUpper(mode.Name()),
		Section: "1",
		Source:  paths.AppName + " " + cmd.Version,
		Manual:  "Dotfile Backup Manual",
	}
}

// WriteManPage writes the man page of mode to w.
func WriteManPage(w io.Writer, mode Mode) error {
	root := NewRootCommand(mode)
	root.DisableAutoGenTag = true
	if err := doc.GenMan(root, manHeader(mode), w); err != nil {
		return errors.System(err, "failed to generate man page")
	}
	return nil
}

// docDirPerm is the permission for a documentation directory created on demand.
const docDirPerm = 0o755

// GenManPages writes dotbackup.1 and dotsetup.1 into dir on fs.
func GenManPages(fs afero.Fs, dir string) error {
	if err := fs.MkdirAll(dir, docDirPerm); err != nil {
		return errors.System(err, "failed to create "+dir)
	}

	for _, mode := range Modes {
		path := filepath.Join(dir, mode.Name()+".1")
		if err := writeFile(fs, path, func(w io.Writer) error { return WriteManPage(w, mode) }); err != nil {
			return err
		}
	}
	return nil
}

// GenMarkdown writes one Markdown reference page per binary into dir on fs.
func GenMarkdown(fs afero.Fs, dir string) error {
	if err := fs.MkdirAll(dir, docDirPerm); err != nil {
		return errors.System(err, "failed to create "+dir)
	}

	for _, mode := range Modes {
		root := NewRootCommand(mode)
		root.DisableAutoGenTag = true
		path := filepath.Join(dir, mode.Name()+".md")
		err := writeFile(fs, path, func(w io.Writer) error {
			if _, err := io.WriteString(w, filePrepender(path)); err != nil {
				return err
			}
			return doc.GenMarkdownCustom(root, w, linkHandler)
		})
		if err != nil {
			return errors.Wrap(err, "generating markdown")
		}
	}
	return nil
}

func writeFile(fs afero.Fs, path string, fill func(io.Writer) error) error {
	if err := fileutil.AtomicWrite(fs, path, 0o644, fill); err != nil {
		return errors.System(err, "failed to write "+path)
	}
	return nil
}

func filePrepender(filename string) string {
	name := filepath.Base(filename)
	title := strings.TrimSuffix(name, filepath.Ext(name))

	return fmt.Sprintf(`---
title: "%s"
description: "Reference for %s"
draft: false
toc: true
---
`, title, title)
}

func linkHandler(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return "/docs/reference/" + strings.ToLower(base) + "/"
}
