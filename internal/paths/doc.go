// Package paths resolves the directories dotbackup works with: the user's home
// directory (the configuration root that every managed file must live under),
// the XDG configuration directory holding dotbackup documents, and
// home-relative paths written in those documents.
//
// # Home Expansion
//
// [Expand] only understands the two forms used in configuration documents:
//
//	paths.Expand("~")            // /home/alice
//	paths.Expand("~/.config/nvim") // /home/alice/.config/nvim
//	paths.Expand("~bob/.zshrc")  // ~bob/.zshrc (unchanged)
//	paths.Expand("/etc/hosts")   // /etc/hosts (unchanged)
//
// # Configuration Root Checks
//
// [Rel] decides whether a path lies under a root component by component, so
// /home/alicia is not considered to be under /home/alice.
//
// # Document Locations
//
//	<ConfigHome>/dotbackup/dotbackup.yml   default document
//	<ConfigHome>/dotbackup/NAME.yml        selected with -c NAME
//
// ConfigHome comes from github.com/adrg/xdg: ~/.config on Linux,
// ~/Library/Application Support on macOS.
package paths
