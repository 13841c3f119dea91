package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmcleod/topsecret/cipher"
	"github.com/jmcleod/topsecret/control"
	"github.com/jmcleod/topsecret/internal/util"
)

var encodeKey string

var encodeCmd = &cobra.Command{
	Use:   "encode [file]",
	Short: "Encode plain text with a key",
	Long: `Encodes a file, or standard input when no file is given, with the inverse
of the key mapping and writes the result to standard output. The output can
be saved in the data directory and decoded with the same key.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().StringVar(&encodeKey, "key", "", "Key file (default from config, key.txt)")
}

func runEncode(cmd *cobra.Command, args []string) error {
	source := encodeKey
	if source == "" {
		source = cfg.DefaultKey
	}

	key, err := newLoader().Load(source)
	if err != nil {
		return &control.Error{Kind: control.KindKeyUnavailable, Message: "unable to encode with provided key", Cause: err}
	}

	text, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return &control.Error{Kind: control.KindFileUnreadable, Message: "unable to read input", Cause: err}
	}

	fmt.Fprint(cmd.OutOrStdout(), cipher.Encode(text, key))
	return nil
}

func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		return util.ReadText(stdin)
	}
	f, err := os.Open(args[0])
	if err != nil {
		return "", err
	}
	defer f.Close()
	return util.ReadText(f)
}
