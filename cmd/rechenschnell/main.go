package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/codefionn/rechenschnell/internal/cli"
	"github.com/codefionn/rechenschnell/internal/config"
	"github.com/codefionn/rechenschnell/internal/logger"
	"github.com/codefionn/rechenschnell/internal/tui"
	"github.com/codefionn/rechenschnell/internal/web"
)

type runMode int

const (
	modeAuto runMode = iota // expression argument, piped stdin or TUI
	modeServe
	modeSyntax
)

type options struct {
	mode       runMode
	expression string
	showTree   bool
	showTokens bool
	noColor    bool
	addr       string
	configPath string
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		// evaluation failures were already reported by the cli package
		if !errors.Is(err, cli.ErrEvaluationFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string) (err error) {
	opts, err := parseCLIArgs(args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	// Allow environment variables to override config file values for logging.
	cfg.ApplyEnv()

	if initErr := logger.Init(logger.ParseLevel(cfg.LogLevel), cfg.LogPath); initErr != nil {
		return fmt.Errorf("failed to initialize logger: %w", initErr)
	}
	defer func() {
		if err != nil && !errors.Is(err, cli.ErrEvaluationFailed) {
			logger.Error("Fatal error: %v", err)
		}
		if closeErr := logger.Global().Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close logger: %v\n", closeErr)
		}
	}()

	logger.Info("rechenschnell starting")
	logger.Debug("Configuration loaded: log_level=%s, log_path=%s, lock_on_error=%t, history_size=%d",
		cfg.LogLevel, cfg.LogPath, cfg.LockOnError, cfg.HistorySize)

	switch opts.mode {
	case modeServe:
		return runServe(cfg, opts)
	case modeSyntax:
		return cli.PrintSyntax(os.Stdout)
	}

	c := cli.New(os.Stdout, os.Stderr, cli.Options{
		ShowTree:   opts.showTree || cfg.ShowTree,
		ShowTokens: opts.showTokens,
		Styled:     cfg.ColorOutput && !opts.noColor && cli.IsTerminal(os.Stdout),
	})

	switch {
	case opts.expression != "":
		return c.Run(opts.expression)
	case !cli.IsTerminal(os.Stdin):
		logger.Info("Reading expressions from standard input")
		return c.RunLines(os.Stdin)
	default:
		return runTUI(cfg, opts)
	}
}

func runTUI(cfg *config.Config, opts *options) error {
	logger.Info("Running in TUI mode")
	return tui.Run(tui.Options{
		LockOnError: cfg.LockOnError,
		HistorySize: cfg.HistorySize,
		ShowTree:    opts.showTree || cfg.ShowTree,
	})
}

func runServe(cfg *config.Config, opts *options) error {
	addr := cfg.ListenAddr
	if opts.addr != "" {
		addr = opts.addr
	}

	srv := web.NewServer(addr)
	if err := srv.Start(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Serving rechenschnell on %s\n", srv.URL())

	watcher, err := config.NewWatcher(opts.configPath, func(updated *config.Config) {
		level := logger.ParseLevel(updated.LogLevel)
		logger.Global().SetLevel(level)
		logger.Info("Config reloaded, log level %s", level)
	})
	if err != nil {
		logger.Warn("Config hot reload disabled: %v", err)
	} else {
		defer watcher.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	fmt.Fprintln(os.Stderr, "Shutting down...")
	return srv.Stop()
}

func parseCLIArgs(args []string, output io.Writer) (*options, error) {
	opts := &options{configPath: config.GetConfigPath()}

	if len(args) > 0 && args[0] == "serve" {
		opts.mode = modeServe
		args = args[1:]
	}

	fs := flag.NewFlagSet("rechenschnell", flag.ContinueOnError)
	fs.SetOutput(output)

	var (
		showHelp bool
		syntax   bool
	)

	fs.BoolVar(&opts.showTree, "tree", false, "Print the parsed expression tree")
	fs.BoolVar(&opts.showTokens, "tokens", false, "Print the normalized token stream")
	fs.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&syntax, "syntax", false, "Show the expression syntax reference")
	fs.StringVar(&opts.addr, "addr", "", "Listen address for serve (default from config)")
	fs.StringVar(&opts.configPath, "config", opts.configPath, "Path to the config file")
	fs.BoolVar(&showHelp, "help", false, "Show usage information")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: rechenschnell [options] [expression]\n")
		fmt.Fprintf(fs.Output(), "       rechenschnell serve [-addr host:port]\n\n")
		fmt.Fprintln(fs.Output(), "Without an expression, lines from standard input are evaluated,")
		fmt.Fprintln(fs.Output(), "or the interactive keypad starts when attached to a terminal.")
		fmt.Fprintln(fs.Output(), "\nOptions:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(separateNegativeExpression(args)); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, flag.ErrHelp
		}
		return nil, err
	}

	if showHelp {
		fs.Usage()
		return nil, flag.ErrHelp
	}

	remaining := fs.Args()
	if opts.mode == modeServe {
		if len(remaining) > 0 {
			return nil, fmt.Errorf("serve does not accept expression arguments")
		}
		return opts, nil
	}
	if opts.addr != "" {
		return nil, fmt.Errorf("-addr is only valid with serve")
	}

	if syntax {
		if len(remaining) > 0 {
			return nil, fmt.Errorf("-syntax does not accept expression arguments")
		}
		opts.mode = modeSyntax
		return opts, nil
	}

	if len(remaining) > 0 {
		opts.expression = strings.TrimSpace(strings.Join(remaining, " "))
		if opts.expression == "" {
			return nil, fmt.Errorf("expression must not be empty")
		}
	}
	return opts, nil
}

// separateNegativeExpression inserts "--" before the first argument that
// looks like an expression starting with a minus sign, so "-3+5" is not
// taken for a flag.
func separateNegativeExpression(args []string) []string {
	for i, arg := range args {
		if arg == "--" {
			return args
		}
		if len(arg) > 1 && arg[0] == '-' && (isDigit(arg[1]) || arg[1] == '(' || arg[1] == ' ') {
			out := make([]string, 0, len(args)+1)
			out = append(out, args[:i]...)
			out = append(out, "--")
			return append(out, args[i:]...)
		}
	}
	return args
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
