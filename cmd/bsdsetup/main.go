// Package main is the entry point for the bsdsetup CLI.
//
// bsdsetup provisions a FreeBSD host from a fresh installation into a
// hardened media server: packages, user account, timezone, dotfiles,
// SSH hardening, pf firewall, Caddy reverse proxy and periodic
// maintenance, executed as an ordered, idempotent step pipeline.
//
// For detailed usage information, run:
//
//	bsdsetup --help
package main

import (
	"fmt"
	"os"

	"bsdsetup/cmd/bsdsetup/commands"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	commands.SetVersionInfo(version, commit)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
