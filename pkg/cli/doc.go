// Package cli holds helpers shared by the radiusd subcommands: command
// error wrapping and signal-driven shutdown.
package cli
