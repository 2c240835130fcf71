// Package cli implements the typemeta command: it loads Go packages with the
// static analyzer and prints shapes and enum metadata derived from them.
package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"typemeta/enummeta"
	"typemeta/internal/analyze"
	"typemeta/internal/config"
	"typemeta/internal/diagnostic"
	"typemeta/internal/logging"
	"typemeta/meta"
	"typemeta/shape"
	"typemeta/typecache"
)

// RootOptions holds global flags and the state built from them before a
// subcommand runs.
type RootOptions struct {
	ConfigPath string
	Verbose    bool
	NoColor    bool

	cfg      *config.Config
	logger   *zap.Logger
	cache    *typecache.Cache
	resolver *shape.Resolver
	engine   *enummeta.Engine
}

// NewRootCommand creates the root command of the typemeta CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:          "typemeta",
		Short:        "Inspect the shapes and enum metadata of Go types",
		Long:         "typemeta loads Go packages and reports the resolved attributes of structs and interface contracts and the members of enumerated types.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ./typemeta.yaml)")
	flags.String("format", "text", "output format (text|yaml|json)")
	flags.String("log-level", "info", "log level (debug|info|warn|error)")
	flags.String("dir", "", "directory package patterns are resolved in")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	flags.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")

	cmd.AddCommand(NewShapeCommand(opts))
	cmd.AddCommand(NewEnumCommand(opts))
	cmd.AddCommand(NewDescribeCommand(opts))
	cmd.AddCommand(NewParseCommand(opts))
	cmd.AddCommand(NewInspectCommand(opts))

	return cmd
}

func (o *RootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigPath, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, o.Verbose)
	if err != nil {
		return err
	}

	o.cfg = cfg
	o.logger = logger
	o.cache = typecache.New(typecache.WithLogger(logger))
	o.resolver = shape.NewResolver(o.cache, shape.WithLogger(logger))
	o.engine = enummeta.NewEngine(o.cache, enummeta.WithLogger(logger))

	return nil
}

// loadGraph analyzes the packages matching patterns.
func (o *RootOptions) loadGraph(ctx context.Context, patterns ...string) (*analyze.TypeGraph, error) {
	analyzer := analyze.NewAnalyzer(
		analyze.WithDir(o.cfg.Dir),
		analyze.WithLogger(o.logger),
	)

	return analyzer.LoadPackages(ctx, patterns...)
}

// loadType analyzes the package matching pattern and describes the type
// called name in it.
func (o *RootOptions) loadType(ctx context.Context, pattern, name string) (meta.Type, error) {
	graph, err := o.loadGraph(ctx, pattern)
	if err != nil {
		return nil, err
	}

	info, err := graph.FindType(name)
	if err != nil {
		return nil, err
	}

	return graph.Describe(info), nil
}

// loadEnum is loadType restricted to enumerated types.
func (o *RootOptions) loadEnum(ctx context.Context, pattern, name string) (meta.Enum, error) {
	t, err := o.loadType(ctx, pattern, name)
	if err != nil {
		return nil, err
	}

	return meta.AsEnum(t)
}

// parseOptions turns the strict and fold settings into parse options that
// collect their diagnostics into diags.
func (o *RootOptions) parseOptions(diags *diagnostic.Diagnostics) []enummeta.ParseOption {
	opts := []enummeta.ParseOption{enummeta.WithDiagnostics(diags)}
	if o.cfg.Strict {
		opts = append(opts, enummeta.Strict())
	}

	if o.cfg.Fold {
		opts = append(opts, enummeta.FoldNames())
	}

	return opts
}
