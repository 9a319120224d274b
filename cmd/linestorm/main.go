// Package main is the entry point for the linestorm batch editor.
//
// linestorm opens each file in an editing session, replays a YAML macro
// against it, and prints or writes back the result.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/linestorm/internal/clipboard"
	"github.com/dshills/linestorm/internal/config"
	"github.com/dshills/linestorm/internal/engine"
	"github.com/dshills/linestorm/internal/logging"
	"github.com/dshills/linestorm/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	scriptPath string
	logLevel   string
	write      bool
	files      []string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return 1
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.LogLevel()
	if opts.logLevel != "" {
		logCfg.Level = logging.ParseLevel(opts.logLevel)
	}
	log := logging.New(logCfg)

	engOpts := []engine.Option{
		engine.WithOptions(cfg.Buffer()),
		engine.WithLogger(log),
		engine.WithSaver(engine.FileSaver{}),
	}
	if cfg.Cut.Clipboard {
		engOpts = append(engOpts, engine.WithClipboard(clipboard.Best()))
	}
	eng := engine.New(engOpts...)

	var macro *script.Script
	if opts.scriptPath != "" {
		macro, err = script.Load(opts.scriptPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Signals only set flags; the runner acts on them between commands.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(signals)
	go func() {
		select {
		case <-signals:
			eng.RequestEmergencySave()
			cancel()
		case <-ctx.Done():
		}
	}()

	runner := script.NewRunner(eng, log)
	status := 0
	for _, name := range opts.files {
		if err := edit(ctx, eng, runner, macro, name, opts.write); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", name, err)
			status = 1
			if ctx.Err() != nil {
				break
			}
		}
	}

	if err := eng.SafePoint(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: emergency save: %v\n", err)
		return 1
	}
	return status
}

// edit opens name, runs the macro on it, and writes or prints the result.
func edit(ctx context.Context, eng *engine.Engine, runner *script.Runner, macro *script.Script, name string, write bool) error {
	data, err := os.ReadFile(name)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	id, err := eng.Open(name, data)
	if err != nil {
		return err
	}

	if macro != nil {
		rep, err := runner.Run(ctx, macro)
		if err != nil {
			return err
		}
		if rep.Refused > 0 {
			fmt.Fprintf(os.Stderr, "%s: %d of %d commands refused, last: %s\n", name, rep.Refused, rep.Commands, rep.Last.Status)
		}
	}

	out, err := eng.Contents(id)
	if err != nil {
		return err
	}
	if !write {
		if _, err := os.Stdout.Write(out); err != nil {
			return err
		}
		return eng.Close(id)
	}
	if err := os.WriteFile(name, out, 0o644); err != nil {
		return err
	}
	if err := eng.MarkSaved(id); err != nil {
		return err
	}
	return eng.Close(id)
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file (.toml or .yaml)")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.scriptPath, "script", "", "YAML macro to run on each file")
	flag.StringVar(&opts.scriptPath, "s", "", "YAML macro to run on each file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.write, "w", false, "Write results back instead of printing them")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "linestorm - line-oriented batch editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: linestorm [options] files...\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  linestorm -s dedent.yaml main.c       Print main.c after the macro\n")
		fmt.Fprintf(os.Stderr, "  linestorm -w -s dedent.yaml *.c       Rewrite every file in place\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("linestorm %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.logLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}

	opts.files = flag.Args()
	if len(opts.files) == 0 {
		flag.Usage()
		os.Exit(2)
	}
	return opts
}
