package cli

import (
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"typemeta/meta"
)

type shapeReport struct {
	Type       string            `json:"type" yaml:"type"`
	Kind       string            `json:"kind" yaml:"kind"`
	Attributes []attributeReport `json:"attributes" yaml:"attributes"`
}

type attributeReport struct {
	Ordinal int    `json:"ordinal" yaml:"ordinal"`
	Name    string `json:"name" yaml:"name"`
	Type    string `json:"type" yaml:"type"`
	Kind    string `json:"kind" yaml:"kind"`
	Owner   string `json:"owner" yaml:"owner"`
	Getter  bool   `json:"getter,omitempty" yaml:"getter,omitempty"`
}

// NewShapeCommand creates the shape command.
func NewShapeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shape <package> <type>",
		Short: "Print the resolved attributes of a struct or interface",
		Long: `Print the attributes of a type in resolution order.

Structs list their visible exported fields, promoted fields included.
Interfaces list their getters followed by those inherited from embedded
interfaces, breadth first, each attribute once.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := opts.loadType(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			report := shapeReport{
				Type:       t.ID().String(),
				Kind:       shapeKindLabel(t.Kind()),
				Attributes: []attributeReport{},
			}

			for _, a := range opts.resolver.Resolve(t) {
				report.Attributes = append(report.Attributes, attributeOf(a))
			}

			return opts.render(cmd.OutOrStdout(), report, func(w io.Writer) {
				opts.heading(w, "%s (%s)", report.Type, report.Kind)

				tbl := opts.newTable("#", "Name", "Type", "Kind", "Owner")
				for _, a := range report.Attributes {
					tbl.addRow(strconv.Itoa(a.Ordinal), a.Name, a.Type, a.Kind, a.Owner)
				}

				tbl.render(w)
			})
		},
	}
}

func attributeOf(a meta.Attribute) attributeReport {
	return attributeReport{
		Ordinal: a.Ordinal,
		Name:    a.Name,
		Type:    a.Type,
		Kind:    kindLabel(a.Kind),
		Owner:   a.Owner.Name,
		Getter:  a.Getter,
	}
}
