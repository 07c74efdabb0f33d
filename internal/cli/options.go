// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"primesieve/internal/config"
	"primesieve/internal/runutil"
	"primesieve/internal/version"
	"primesieve/internal/writers"
)

// Options holds all CLI flags.
type Options struct {
	// Selection
	Method string
	Bound  string
	Preset int

	// Performance
	Threads     int
	MemoryLimit string

	// Output
	Output string
	List   string

	ConfigPath  string
	WriteConfig string
	Interactive bool
	Verbose     bool

	// changed records flags set explicitly on the command line.
	changed map[string]bool
}

// NewCommand returns the root command with every flag bound to opts.
// The caller sets RunE.
func NewCommand(name string, opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name + " [flags]",
		Short: "List all primes up to a bound with trial division or a (parallel) sieve",
		Long: name + ` computes every prime up to an inclusive upper bound and reports
the count and the elapsed time.

Methods:
  1, trial     classic primality test (6k±1 trial division)
  2, sieve     Sieve of Eratosthenes
  3, parallel  multithreaded Sieve of Eratosthenes
  4, all       run all three and cross-check the results

Bound presets: 1 = 1,000; 2 = 100,000,000; 3 = 1,000,000,000; 4 = 4,000,000,000`,
		Example: `  ` + name + ` --bound 1000
  ` + name + ` --method all --preset 2 --threads 8
  ` + name + ` -m sieve -n 1_000_000 --output json
  ` + name + ` --interactive`,
		Version:       version.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate(name + " version {{.Version}}\n")

	def := config.DefaultConfig()
	f := cmd.Flags()
	f.SortFlags = false

	// Selection
	f.StringVarP(&opts.Method, "method", "m", def.Method, "method: 1-4 or trial | sieve | parallel | all")
	f.StringVarP(&opts.Bound, "bound", "n", "", "inclusive upper bound (digit separators _ and , allowed)")
	f.IntVarP(&opts.Preset, "preset", "p", 0, "bound preset 1-4 (see above)")

	// Performance
	f.IntVarP(&opts.Threads, "threads", "t", def.Threads, "parallel sieve workers (0 = all CPUs)")
	f.StringVar(&opts.MemoryLimit, "memory-limit", "", "refuse sieve arenas larger than this (e.g. 4GiB)")

	// Output
	f.StringVarP(&opts.Output, "output", "o", def.Output, "output format: "+strings.Join(writers.Formats(), " | "))
	f.StringVar(&opts.List, "list", def.List, "print the prime list: auto | always | never")

	f.StringVarP(&opts.ConfigPath, "config", "c", "", "YAML config file")
	f.StringVar(&opts.WriteConfig, "write-config", "", "write the effective config to this YAML file and exit")
	f.BoolVarP(&opts.Interactive, "interactive", "i", false, "prompt for method and bound")
	f.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

// Finalize records which flags were set and validates flag values.
func (o *Options) Finalize(fs *pflag.FlagSet) error {
	o.changed = map[string]bool{}
	fs.Visit(func(f *pflag.Flag) { o.changed[f.Name] = true })

	switch {
	case o.changed["bound"] && o.changed["preset"]:
		return errors.New("--bound conflicts with --preset")
	case o.Interactive && (o.changed["bound"] || o.changed["preset"] || o.changed["method"]):
		return errors.New("--interactive conflicts with --method/--bound/--preset")
	}
	if o.changed["preset"] && (o.Preset < 1 || o.Preset > 4) {
		return fmt.Errorf("--preset must be 1-4, got %d", o.Preset)
	}
	if o.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	if formats := writers.Formats(); !slices.Contains(formats, o.Output) {
		return fmt.Errorf("invalid --output %q (want %s)", o.Output, strings.Join(formats, " | "))
	}
	return runutil.ValidateListMode(o.List)
}

// Changed reports whether flag name was set on the command line.
func (o *Options) Changed(name string) bool { return o.changed[name] }

// ApplyTo overrides cfg with every flag set on the command line. Unset
// flags leave the file (or default) values alone.
func (o *Options) ApplyTo(cfg *config.Config) {
	if o.changed["method"] {
		cfg.Method = o.Method
	}
	if o.changed["bound"] {
		cfg.Bound = o.Bound
	}
	if o.changed["threads"] {
		cfg.Threads = o.Threads
	}
	if o.changed["memory-limit"] {
		cfg.MemoryLimit = o.MemoryLimit
	}
	if o.changed["output"] {
		cfg.Output = o.Output
	}
	if o.changed["list"] {
		cfg.List = o.List
	}
}
