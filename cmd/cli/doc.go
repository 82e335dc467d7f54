// Package cli builds the workon command-line interface: the cobra root
// command with its configuration and logging flags, and the start, open and
// done subcommands.
package cli
