package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"typemeta/internal/diagnostic"
	"typemeta/meta"
	"typemeta/primitive"
)

// render writes report as JSON or YAML, or calls text for the text format.
func (o *RootOptions) render(w io.Writer, report any, text func(io.Writer)) error {
	switch o.cfg.Format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(report)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		return errors.Join(enc.Encode(report), enc.Close())
	default:
		text(w)

		return nil
	}
}

// heading prints a bold title line.
func (o *RootOptions) heading(w io.Writer, format string, args ...any) {
	c := color.New(color.Bold)
	if o.NoColor {
		c.DisableColor()
	}

	c.Fprintf(w, format+"\n", args...)
}

// notes prints parse warnings, and infos when verbose, one per line.
func (o *RootOptions) notes(w io.Writer, diags diagnostic.Diagnostics) {
	warn := color.New(color.FgYellow)
	if o.NoColor {
		warn.DisableColor()
	}

	for _, d := range diags.Warnings {
		warn.Fprint(w, "warning: ")
		fmt.Fprintln(w, d.String())
	}

	if !o.Verbose {
		return
	}

	for _, d := range diags.Infos {
		fmt.Fprintln(w, "info: "+d.String())
	}
}

// table renders aligned columns under a highlighted header.
type table struct {
	headers []string
	rows    [][]string
	noColor bool
}

func (o *RootOptions) newTable(headers ...string) *table {
	return &table{headers: headers, noColor: o.NoColor}
}

func (t *table) addRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) render(w io.Writer) {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = utf8.RuneCountInString(h)
	}

	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], utf8.RuneCountInString(cell))
			}
		}
	}

	header := color.New(color.Bold, color.FgCyan)
	rule := color.New(color.FgHiBlack)

	if t.noColor {
		header.DisableColor()
		rule.DisableColor()
	}

	rules := make([]string, len(widths))
	for i, width := range widths {
		rules[i] = strings.Repeat("─", width)
	}

	writeLine(w, header, t.headers, widths)
	writeLine(w, rule, rules, widths)

	for _, row := range t.rows {
		writeLine(w, nil, row, widths)
	}
}

// writeLine joins cells padded to widths, dropping trailing blanks.
func writeLine(w io.Writer, c *color.Color, cells []string, widths []int) {
	var b strings.Builder

	for i, cell := range cells {
		if i >= len(widths) {
			break
		}

		if i > 0 {
			b.WriteString("  ")
		}

		b.WriteString(padRight(cell, widths[i]))
	}

	text := strings.TrimRight(b.String(), " ")
	if c != nil {
		text = c.Sprint(text)
	}

	fmt.Fprintln(w, text)
}

func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}

	return s + strings.Repeat(" ", width-n)
}

// keyValues renders labelled values, one per line, with aligned values.
func (o *RootOptions) keyValues(w io.Writer, pairs [][2]string) {
	width := 0
	for _, p := range pairs {
		width = max(width, utf8.RuneCountInString(p[0]))
	}

	key := color.New(color.Bold)
	if o.NoColor {
		key.DisableColor()
	}

	for _, p := range pairs {
		fmt.Fprintln(w, strings.TrimRight(key.Sprint(padRight(p[0], width))+"  "+p[1], " "))
	}
}

// kindLabel is the short lowercase name of an attribute's primitive kind.
func kindLabel(k primitive.KindEnum) string {
	switch k {
	case 0:
		return "-"
	case primitive.KindPrimitiveEnum:
		return "enum"
	default:
		return strings.ToLower(strings.TrimPrefix(k.String(), "Kind"))
	}
}

// shapeKindLabel names a meta.Kind.
func shapeKindLabel(k meta.Kind) string {
	return strings.ToLower(strings.TrimPrefix(k.String(), "Kind"))
}
