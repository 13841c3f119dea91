package main

import (
	"os"

	"github.com/awnumar/memguard"

	"github.com/jmcleod/topsecret/cmd/topsecret/cmd"
)

func main() {
	// serve owns SIGINT/SIGTERM; guarded memory is purged on the way out.
	code := cmd.Execute()
	memguard.Purge()
	os.Exit(code)
}
