package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"typemeta/enummeta"
	"typemeta/meta"
)

type enumReport struct {
	Type       string         `json:"type" yaml:"type"`
	Underlying string         `json:"underlying" yaml:"underlying"`
	Flags      bool           `json:"flags" yaml:"flags"`
	Members    []memberReport `json:"members" yaml:"members"`
}

type memberReport struct {
	Name        string `json:"name" yaml:"name"`
	Value       string `json:"value" yaml:"value"`
	Bits        uint64 `json:"bits" yaml:"bits"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Canonical   bool   `json:"canonical,omitempty" yaml:"canonical,omitempty"`
}

// NewEnumCommand creates the enum command.
func NewEnumCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "enum <package> <type>",
		Short: "List the members of an enumerated type",
		Long: `List the members of an enumerated type in declaration order with their
values, normalized bit patterns and descriptions. For flags types, members
that stand for a single bit are marked canonical.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			enum, err := opts.loadEnum(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			report, err := buildEnumReport(opts.engine, enum)
			if err != nil {
				return err
			}

			return opts.render(cmd.OutOrStdout(), report, func(w io.Writer) {
				if report.Flags {
					opts.heading(w, "%s (%s, flags)", report.Type, report.Underlying)
				} else {
					opts.heading(w, "%s (%s)", report.Type, report.Underlying)
				}

				headers := []string{"Name", "Value", "Bits", "Description"}
				if report.Flags {
					headers = append(headers, "Canonical")
				}

				tbl := opts.newTable(headers...)
				for _, m := range report.Members {
					canonical := ""
					if m.Canonical {
						canonical = "yes"
					}

					tbl.addRow(m.Name, m.Value, strconv.FormatUint(m.Bits, 10), m.Description, canonical)
				}

				tbl.render(w)
			})
		},
	}
}

func buildEnumReport(engine *enummeta.Engine, enum meta.Enum) (enumReport, error) {
	report := enumReport{
		Type:       enum.ID().String(),
		Underlying: kindLabel(enum.Underlying()),
		Flags:      enum.IsFlags(),
	}

	canonical := map[string]bool{}

	if enum.IsFlags() {
		var all uint64

		for _, m := range enum.Members() {
			bits, err := engine.Normalize(enum, m.Value)
			if err != nil {
				return report, err
			}

			all |= bits
		}

		flags, err := engine.UniqueFlags(enum, enum.FromBits(all))
		if err != nil {
			return report, err
		}

		for m := range flags {
			canonical[m.Name] = true
		}
	}

	for _, m := range enum.Members() {
		bits, err := engine.Normalize(enum, m.Value)
		if err != nil {
			return report, err
		}

		report.Members = append(report.Members, memberReport{
			Name:        m.Name,
			Value:       fmt.Sprint(enum.FromBits(bits)),
			Bits:        bits,
			Description: m.Description,
			Canonical:   canonical[m.Name],
		})
	}

	return report, nil
}
