// Package cli provides the command-line interface of collector. It wires
// flags, configuration and logging with cobra and viper and hands each
// command to an organizer bound to the configured storage backend.
package cli
