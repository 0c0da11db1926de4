// Package confloader loads configuration with koanf.
//
// Sources, highest priority first:
//
//  1. Overrides (command-line flags)
//  2. Environment variables (EASYCAR_SECTION_KEY)
//  3. Configuration file (YAML)
//  4. Defaults, taken from the target struct as passed to Load
//
// Watcher reports changes to the configuration file through fsnotify so
// long-running processes can re-apply hot-reloadable settings.
package confloader
