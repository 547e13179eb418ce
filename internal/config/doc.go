// Package config loads dotbackup documents and the tool settings that sit
// next to them.
//
// A document is YAML (default) or TOML, chosen by file extension:
//
//	backup_dir: ~/dotfiles
//	clean: false
//	ignore:
//	  - "*.log"
//	apps:
//	  nvim:
//	    files:
//	      - ~/.config/nvim
//	    ignore:
//	      - plugin
//	    post_setup:
//	      - nvim --headless +PlugInstall +qa
//
// Parsing happens in two steps. A front-end ([ParseYAML] or [ParseTOML])
// turns the text into a format-neutral [Value] that keeps mapping order, then
// [Decode] checks types and builds a [Config]. Apps keep their declaration
// order, which is the order backup and setup visit them.
//
// Command line adjustments are applied with [Merge], which never modifies
// the decoded document.
//
// Tool settings (document location, log format) come from flags and
// DOTBACKUP_* environment variables through viper; see [NewViper].
package config
