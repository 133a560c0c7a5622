// Package cli wires configuration, sources, notifier and pipeline into
// the stadtticker command.
package cli
