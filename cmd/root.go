package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jbaldus/shorten"
	"github.com/jbaldus/shorten/cache"
	"github.com/jbaldus/shorten/cache/bolt"
	"github.com/jbaldus/shorten/client"
	"github.com/jbaldus/shorten/clip"
	"github.com/jbaldus/shorten/config"
	"github.com/jbaldus/shorten/logger"
	"github.com/jbaldus/shorten/notify"
	"github.com/jbaldus/shorten/utils"
)

var (
	clipboardArg bool
	selectionArg bool
	debugArg     bool
	selfTestArg  bool
)

// stubbed in tests
var (
	notifyFn = notify.Send
	isTTY    = func(f *os.File) bool {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
)

var rootCmd = &cobra.Command{
	Use:   "shorten [url]",
	Short: "shorten a URL, caching results to spare the provider",
	Long: `shorten a URL through a remote provider, caching results locally
so the same URL is never shortened twice.

The URL is taken from the first argument, from piped standard input,
or from the clipboard, in that order. The result is printed to
standard output; with -c or -s it is also written back to the
corresponding clipboard selection.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func run(cmd *cobra.Command, args []string) error {
	if debugArg {
		logger.SetDebug()
	}
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	m := modeFor(filepath.Base(os.Args[0]), clipboardArg, selectionArg)
	stdoutIsTTY := isTTY(os.Stdout)

	rawURL, err := resolver{
		args:       args,
		stdin:      cmd.InOrStdin(),
		stdinIsTTY: isTTY(os.Stdin),
		selection:  m.selection(),
		readClip:   clip.Read,
		selfTest:   selfTestArg,
	}.resolve(ctx)
	if err != nil {
		return reportError(cmd, stdoutIsTTY, err)
	}

	store := openStore(cfg.Cache)
	defer store.Close()

	provider, err := client.New(cfg.Client)
	if err != nil {
		return reportError(cmd, stdoutIsTTY, err)
	}

	shortened, err := shorten.NewService(store, provider).Shorten(ctx, rawURL)
	if err != nil {
		return reportError(cmd, stdoutIsTTY, err)
	}

	router{
		stdout:      cmd.OutOrStdout(),
		stdoutIsTTY: stdoutIsTTY,
		mode:        m,
		writeClip:   clip.Write,
		notify:      notifyFn,
	}.emit(ctx, shortened)
	return nil
}

// reportError shows the help text for bad input and raises a warning
// notification when nobody is watching the terminal. The error itself
// is printed by cobra once RunE returns it.
func reportError(cmd *cobra.Command, stdoutIsTTY bool, err error) error {
	if errors.Is(err, shorten.ErrInvalidURL) || errors.Is(err, errNoInput) {
		fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
	}
	if !stdoutIsTTY {
		notifyFn("shorten failed", err.Error())
	}
	return err
}

// openStore opens the bolt-backed cache, degrading to a no-op store
// when the cache file cannot be used. Shortening still works then,
// every call just goes to the network.
func openStore(opt cache.Options) cache.Store {
	path, err := utils.ExpandPath(opt.Path)
	if err == nil {
		var store cache.Store
		if store, err = bolt.New(cache.Options{Path: path}); err == nil {
			return store
		}
	}
	logger.Warn("cache unavailable, continuing without it", "error", err)
	return cache.NopStore{}
}

func init() {
	cobra.OnInitialize(initConfig)
	// a flag parse failure shows the usage, cobra then prints the error
	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		fmt.Fprint(c.ErrOrStderr(), c.UsageString())
		return err
	})
	rootCmd.Flags().BoolVarP(&clipboardArg, "clipboard", "c", false, "write the result back to the clipboard")
	rootCmd.Flags().BoolVarP(&selectionArg, "selection", "s", false, "write the result back to the middle-click selection")
	rootCmd.Flags().BoolVarP(&debugArg, "debug", "d", false, "output the debug log")
	rootCmd.Flags().BoolVar(&selfTestArg, "self-test", false, "shorten a fixed sample url")
}
