// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"primesieve/internal/appcore"
	"primesieve/internal/cli"
	"primesieve/internal/config"
	"primesieve/internal/engine"
	"primesieve/internal/logging"
	"primesieve/internal/menu"
	"primesieve/internal/runutil"
	"primesieve/internal/selector"
)

// RunContext parses argv, resolves config + flags, and runs the selected
// methods. It returns the process exit code.
func RunContext(parent context.Context, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts := &cli.Options{}
	cmd := cli.NewCommand("primesieve", opts)
	cmd.SetArgs(argv)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	code := appcore.ExitOK
	cmd.RunE = func(c *cobra.Command, _ []string) error {
		if err := opts.Finalize(c.Flags()); err != nil {
			return err
		}
		code = execute(c.Context(), opts, stdin, stdout, stderr)
		return nil
	}

	if err := cmd.ExecuteContext(parent); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		_, _ = fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.Name())
		return appcore.ExitUsage
	}
	return code
}

// Run is RunContext with a background context and the process stdin.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, os.Stdin, stdout, stderr)
}

func execute(ctx context.Context, opts *cli.Options, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg := config.DefaultConfig()
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return appcore.ExitUsage
		}
		cfg = loaded
	}
	opts.ApplyTo(cfg)
	if err := cfg.Validate(); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return appcore.ExitUsage
	}
	memLimit, _ := cfg.MemoryLimitBytes() // checked by Validate

	if opts.WriteConfig != "" {
		if err := cfg.Save(opts.WriteConfig); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return appcore.ExitRuntime
		}
		_, _ = fmt.Fprintf(stderr, "config written to %s\n", opts.WriteConfig)
		return appcore.ExitOK
	}

	logger, err := logging.New(cfg.Logging, opts.Verbose, stderr)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return appcore.ExitUsage
	}
	logger, _ = logging.WithRun(logger)
	defer func() { _ = logger.Sync() }()

	var (
		method engine.Method
		bound  uint64
		ask    appcore.AskFunc
	)
	if opts.Interactive {
		// Keep stdout a clean JSON stream.
		promptOut := stdout
		if cfg.Output == "json" {
			promptOut = stderr
		}
		p := menu.New(stdin, promptOut)
		if method, err = p.Method(); err == nil {
			bound, err = p.Bound()
		}
		ask = p.ConfirmList
	} else {
		method, bound, err = selection(opts, cfg)
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		if errors.Is(err, selector.ErrInvalidSelector) || errors.Is(err, engine.ErrInvalidBound) {
			return appcore.ExitUsage
		}
		return appcore.ExitRuntime
	}

	threads := runutil.EffectiveThreads(cfg.Threads)
	logger.Debug("run configured",
		zap.Stringer("method", method),
		zap.Uint64("bound", bound),
		zap.Int("threads", threads),
		zap.String("output", cfg.Output),
		zap.Uint64("memory_limit", memLimit),
	)

	return appcore.Run(ctx, stdout, stderr, appcore.Options{
		Method:        method,
		Bound:         bound,
		Threads:       threads,
		MemoryLimit:   memLimit,
		Output:        cfg.Output,
		List:          cfg.List,
		ListThreshold: cfg.ListThreshold,
		Logger:        logger,
	}, ask)
}

// selection resolves method and bound from flags and config. --preset wins
// over a bound from the config file.
func selection(opts *cli.Options, cfg *config.Config) (engine.Method, uint64, error) {
	method, err := selector.ParseMethod(cfg.Method)
	if err != nil {
		return 0, 0, err
	}
	switch {
	case opts.Changed("preset"):
		bound, err := selector.PresetBound(opts.Preset)
		return method, bound, err
	case cfg.Bound != "":
		bound, err := selector.ParseBound(cfg.Bound)
		return method, bound, err
	}
	return 0, 0, fmt.Errorf("%w: provide --bound, --preset, a config bound, or --interactive", selector.ErrInvalidSelector)
}
