package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmcleod/topsecret/catalog"
	"github.com/jmcleod/topsecret/cipher"
	"github.com/jmcleod/topsecret/config"
	"github.com/jmcleod/topsecret/control"
	"github.com/jmcleod/topsecret/storage/localfs"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=...".
var Version = "dev"

// Exit codes returned by Execute.
const (
	ExitOK             = 0
	ExitUnexpected     = 1
	ExitInvalidInput   = 2
	ExitOutOfRange     = 3
	ExitFileUnreadable = 4
	ExitKeyUnavailable = 5
)

var (
	configPath string
	dataDir    string
	keyDir     string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
)

var selectionPattern = regexp.MustCompile(`^\d{2}$`)

var rootCmd = &cobra.Command{
	Use:   "topsecret [selection] [key]",
	Short: "List and decode top secret files",
	Long: `Lists the text files in the data directory, or decodes one of them with a
substitution key.

  topsecret              list the files, numbered from 01
  topsecret 01           decode file 01 with the default key
  topsecret 01 my.key    decode file 01 with my.key

Key names that are not found as given are looked up in the key directory.`,
	Args:              validateRootArgs,
	PersistentPreRunE: setup,
	RunE:              runRoot,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute runs the root command with the process arguments and returns the
// exit code.
func Execute() int {
	return execute(os.Args[1:], os.Stdout, os.Stderr)
}

func execute(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		// cobra falls back to os.Args for nil.
		args = []string{}
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err == nil {
		return ExitOK
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitCode(err)
}

func exitCode(err error) int {
	switch control.KindOf(err) {
	case control.KindInvalidSelectionSyntax, control.KindInvalidArguments:
		return ExitInvalidInput
	case control.KindSelectionOutOfRange:
		return ExitOutOfRange
	case control.KindFileUnreadable:
		return ExitFileUnreadable
	case control.KindKeyUnavailable:
		return ExitKeyUnavailable
	default:
		return ExitUnexpected
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a TOML config file (default: ./"+config.DefaultFileName+" if present)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding the text files")
	rootCmd.PersistentFlags().StringVar(&keyDir, "key-dir", "", "Directory searched for key names not found as given")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &control.Error{Kind: control.KindInvalidArguments, Message: err.Error()}
	})
}

func validateRootArgs(_ *cobra.Command, args []string) error {
	if len(args) > 2 {
		return control.NewError(control.KindInvalidArguments,
			"expected at most 2 arguments, got %d", len(args))
	}
	if len(args) >= 1 && !selectionPattern.MatchString(args[0]) {
		return control.NewError(control.KindInvalidSelectionSyntax,
			"invalid file number %q: expected two digits such as 01", args[0])
	}
	if len(args) == 2 && strings.TrimSpace(args[1]) == "" {
		return control.NewError(control.KindInvalidArguments, "key file must not be empty")
	}
	return nil
}

// setup loads the configuration, applies the global flags and builds the
// logger shared by every command.
func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dataDir != "" {
		c.DataDir = dataDir
	}
	if keyDir != "" {
		c.KeyDir = keyDir
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}
	if err := c.Validate(); err != nil {
		return &control.Error{Kind: control.KindInvalidArguments, Message: "invalid settings", Cause: err}
	}

	level, _ := c.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if c.Log.Format == "text" {
		handler = slog.NewTextHandler(cmd.ErrOrStderr(), opts)
	} else {
		handler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	}

	cfg = c
	logger = slog.New(handler)
	return nil
}

func newLoader() *cipher.Loader {
	return cipher.NewLoader(cipher.WithFallbackDir(cfg.KeyDir))
}

func newController() *control.Controller {
	store := localfs.New(cfg.DataDir, localfs.WithExtension(cfg.Extension))
	return control.New(
		catalog.New(store, catalog.WithExtension(cfg.Extension)),
		store,
		newLoader(),
		control.WithDefaultKey(cfg.DefaultKey),
		control.WithLogger(logger),
	)
}

func runRoot(cmd *cobra.Command, args []string) error {
	res := newController().Execute(args)
	if !res.OK() {
		return res.Error()
	}
	writeOutput(cmd.OutOrStdout(), res.Output)
	return nil
}

// writeOutput prints s followed by a newline unless it already ends in one.
func writeOutput(w io.Writer, s string) {
	if strings.HasSuffix(s, "\n") {
		fmt.Fprint(w, s)
		return
	}
	fmt.Fprintln(w, s)
}
