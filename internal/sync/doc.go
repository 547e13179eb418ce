// Package sync performs backup and setup runs for a loaded configuration.
//
// A run checks the backup directory and the configuration root (the home
// directory), resolves the selected apps, then executes in this order:
//
//	global pre hooks
//	for each app: app pre hooks, file copies, app post hooks
//	global post hooks
//
// Backup copies each configured file from its live location to the same
// relative path under the backup directory; setup copies it back. The first
// failure ends the run. Apps processed before the failure keep their copies.
package sync
