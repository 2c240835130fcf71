package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"typemeta/internal/diagnostic"
	"typemeta/meta"
)

type valueReport struct {
	Type        string `json:"type" yaml:"type"`
	Input       string `json:"input" yaml:"input"`
	Value       string `json:"value" yaml:"value"`
	Bits        uint64 `json:"bits" yaml:"bits"`
	Names       string `json:"names" yaml:"names"`
	Description string `json:"description" yaml:"description"`
}

// NewDescribeCommand creates the describe command.
func NewDescribeCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe <package> <type> <value>",
		Short: "Render an enum value with member names and descriptions",
		Long: `Render an enum value with member names and descriptions.

The value is a numeric literal (decimal, 0x, 0o or 0b) or, failing that, a
delimited list of members as accepted by the parse command. Flags values are
split into their single-bit members and joined with the separator.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			enum, err := opts.loadEnum(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			var diags diagnostic.Diagnostics

			value, err := opts.engine.ParseUnderlying(enum, args[2])
			if err != nil {
				value, err = opts.engine.ParseDelimited(enum, args[2], opts.cfg.Delimiter, opts.parseOptions(&diags)...)
				if err != nil {
					return err
				}
			}

			opts.notes(cmd.ErrOrStderr(), diags)

			report, err := opts.valueReport(enum, args[2], value)
			if err != nil {
				return err
			}

			return opts.render(cmd.OutOrStdout(), report, report.text(opts))
		},
	}

	cmd.Flags().String("separator", ", ", "separator between rendered flag members")
	cmd.Flags().String("delimiter", ",", "delimiter between member tokens")

	return cmd
}

func (o *RootOptions) valueReport(enum meta.Enum, input string, value any) (valueReport, error) {
	bits, err := o.engine.Normalize(enum, value)
	if err != nil {
		return valueReport{}, err
	}

	names, err := o.engine.Name(enum, value, o.cfg.Separator)
	if err != nil {
		return valueReport{}, err
	}

	description, err := o.engine.Describe(enum, value, o.cfg.Separator)
	if err != nil {
		return valueReport{}, err
	}

	return valueReport{
		Type:        enum.ID().String(),
		Input:       input,
		Value:       fmt.Sprint(value),
		Bits:        bits,
		Names:       names,
		Description: description,
	}, nil
}

func (r valueReport) text(o *RootOptions) func(io.Writer) {
	return func(w io.Writer) {
		o.keyValues(w, [][2]string{
			{"Type", r.Type},
			{"Input", r.Input},
			{"Value", r.Value},
			{"Names", r.Names},
			{"Description", r.Description},
		})
	}
}
