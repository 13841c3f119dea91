package cmd

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

const banner = `
  _____           ____                     _   
 |_   _|__  _ __ / ___|  ___  ___ _ __ ___| |_ 
   | |/ _ \| '_ \\___ \ / _ \/ __| '__/ _ \ __|
   | | (_) | |_) |___) |  __/ (__| | |  __/ |_ 
   |_|\___/| .__/|____/ \___|\___|_|  \___|\__|
           |_|                                 
`

// printBanner writes the banner, coloured when w is a terminal.
func printBanner(w io.Writer) {
	if !isTerminal(w) {
		fmt.Fprint(w, banner)
		fmt.Fprintf(w, "  File Decoder - Version %s\n\n", Version)
		return
	}
	fmt.Fprintf(w, "\x1b[34m%s\x1b[0m", banner)
	fmt.Fprintf(w, "\x1b[32m  File Decoder - Version %s\x1b[0m\n\n", Version)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
