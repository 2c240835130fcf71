package cli

import (
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"typemeta/internal/analyze"
	"typemeta/meta"
)

type inspectReport struct {
	Types   []typeSummary `json:"types" yaml:"types"`
	Entries int           `json:"cache_entries" yaml:"cache_entries"`
}

type typeSummary struct {
	Type       string `json:"type" yaml:"type"`
	Kind       string `json:"kind" yaml:"kind"`
	Attributes int    `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Members    int    `json:"members,omitempty" yaml:"members,omitempty"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <package>...",
		Short: "Resolve every type of the given packages and summarize them",
		Long: `Resolve the shape of every struct and interface and the metadata views of
every enum declared in the given packages, using up to --jobs workers, and
print a summary.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			graph, err := opts.loadGraph(cmd.Context(), args...)
			if err != nil {
				return err
			}

			report, err := opts.inspect(cmd, graph)
			if err != nil {
				return err
			}

			return opts.render(cmd.OutOrStdout(), report, func(w io.Writer) {
				tbl := opts.newTable("Type", "Kind", "Attributes", "Members")
				for _, s := range report.Types {
					tbl.addRow(s.Type, s.Kind, countCell(s.Attributes, s.Kind != "enum"), countCell(s.Members, s.Kind == "enum"))
				}

				tbl.render(w)
				opts.heading(w, "%d types", len(report.Types))
			})
		},
	}

	cmd.Flags().Int("jobs", 4, "number of types resolved concurrently")

	return cmd
}

// inspect warms the cache for every described type of graph concurrently.
func (o *RootOptions) inspect(cmd *cobra.Command, graph *analyze.TypeGraph) (inspectReport, error) {
	var types []meta.Type

	for _, id := range graph.TypeIDs() {
		t := graph.Describe(graph.GetType(id))
		if t.Kind() != meta.KindOther {
			types = append(types, t)
		}
	}

	summaries := make([]typeSummary, len(types))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(o.cfg.Jobs)

	for i, t := range types {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			summary, err := o.warm(t)
			if err != nil {
				return err
			}

			summaries[i] = summary

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return inspectReport{}, err
	}

	o.logger.Debug("warmed type cache",
		zap.Int("types", len(types)),
		zap.Int("entries", o.cache.Len()))

	return inspectReport{Types: summaries, Entries: o.cache.Len()}, nil
}

// warm computes and caches every view of t.
func (o *RootOptions) warm(t meta.Type) (typeSummary, error) {
	summary := typeSummary{Type: t.ID().String(), Kind: shapeKindLabel(t.Kind())}

	enum, err := meta.AsEnum(t)
	if err != nil {
		summary.Attributes = len(o.resolver.Resolve(t))

		return summary, nil
	}

	if _, err := o.engine.DescriptionList(enum); err != nil {
		return summary, err
	}

	if _, err := o.engine.ValueDescriptions(enum); err != nil {
		return summary, err
	}

	if _, err := o.engine.DescriptionOptions(enum); err != nil {
		return summary, err
	}

	options, err := o.engine.Options(enum)
	if err != nil {
		return summary, err
	}

	summary.Members = len(options)

	return summary, nil
}

func countCell(n int, applies bool) string {
	if !applies {
		return ""
	}

	return strconv.Itoa(n)
}
