package cli

import (
	"github.com/spf13/cobra"

	"typemeta/internal/diagnostic"
)

// NewParseCommand creates the parse command.
func NewParseCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <package> <type> <text>",
		Short: "Parse a delimited list of enum members",
		Long: `Parse text into a value of an enumerated type.

Flags types split the text on the delimiter and combine every token that
names a member, by name, description or numeric value. Other types resolve
the whole text as one token. Unknown tokens are dropped with a warning on
stderr unless --strict is given, in which case they fail the parse. Both
come with suggestions.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			enum, err := opts.loadEnum(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			var diags diagnostic.Diagnostics

			value, err := opts.engine.ParseDelimited(enum, args[2], opts.cfg.Delimiter, opts.parseOptions(&diags)...)
			if err != nil {
				return err
			}

			opts.notes(cmd.ErrOrStderr(), diags)

			report, err := opts.valueReport(enum, args[2], value)
			if err != nil {
				return err
			}

			return opts.render(cmd.OutOrStdout(), report, report.text(opts))
		},
	}

	cmd.Flags().String("delimiter", ",", "delimiter between member tokens")
	cmd.Flags().String("separator", ", ", "separator between rendered flag members")
	cmd.Flags().Bool("strict", false, "fail on tokens that name no member")
	cmd.Flags().Bool("fold", false, "match member names ignoring case and word separators")

	return cmd
}
