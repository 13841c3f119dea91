package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jmcleod/topsecret/cipher"
	"github.com/jmcleod/topsecret/control"
)

type verifyResult struct {
	Source      string `json:"source"`
	Path        string `json:"path,omitempty"`
	Valid       bool   `json:"valid"`
	Kind        string `json:"kind,omitempty"`
	Detail      string `json:"detail,omitempty"`
	Size        int    `json:"size,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

// verifyKey loads source the same way a decode request would and reports
// what it found. The returned error is the loader's, if any.
func verifyKey(loader *cipher.Loader, source string) (verifyResult, error) {
	result := verifyResult{Source: source}
	if p, err := loader.Resolve(source); err == nil {
		result.Path = p
	}

	key, err := loader.Load(source)
	if err != nil {
		result.Kind = string(cipher.KindOf(err))
		result.Detail = err.Error()
		return result, err
	}

	result.Valid = true
	result.Size = key.Size()
	result.Fingerprint = key.Fingerprint()
	return result, nil
}

func printHumanVerify(w io.Writer, result verifyResult) {
	fmt.Fprintf(w, "Key:  %s\n", result.Source)
	if result.Path != "" {
		fmt.Fprintf(w, "Path: %s\n\n", result.Path)
	} else {
		fmt.Fprintln(w)
	}

	if result.Valid {
		fmt.Fprintf(w, "[PASS] alphabets: %d characters each, no repeats\n", result.Size)
		fmt.Fprintf(w, "[INFO] fingerprint: %s\n", result.Fingerprint)
		fmt.Fprintln(w, "\nResult: VALID")
		return
	}
	fmt.Fprintf(w, "[FAIL] %s: %s\n", result.Kind, result.Detail)
	fmt.Fprintln(w, "\nResult: INVALID")
}

func printJSONVerify(w io.Writer, result verifyResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

var verifyJSONOutput bool

var keyVerifyCmd = &cobra.Command{
	Use:   "verify [key]",
	Short: "Check that a key file can be used for decoding",
	Long: `Loads a key file the way a decode request does and checks that both
alphabets are present, have the same length and repeat no character.

Key names that are not found as given are looked up in the key directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runKeyVerify,
}

func init() {
	keyCmd.AddCommand(keyVerifyCmd)
	keyVerifyCmd.Flags().BoolVar(&verifyJSONOutput, "json", false, "Output results as JSON")
}

func runKeyVerify(cmd *cobra.Command, args []string) error {
	result, loadErr := verifyKey(newLoader(), args[0])

	out := cmd.OutOrStdout()
	if verifyJSONOutput {
		if err := printJSONVerify(out, result); err != nil {
			return err
		}
	} else {
		printHumanVerify(out, result)
	}

	if loadErr != nil {
		return &control.Error{Kind: control.KindKeyUnavailable, Message: "key is not usable", Cause: loadErr}
	}
	return nil
}
