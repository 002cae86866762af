package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/umldraw/pkg/pipeline"
	"github.com/matzehuels/umldraw/pkg/uml"
)

// inspectCommand creates the inspect command, which prints the extracted
// model instead of rendering it.
func (c *CLI) inspectCommand() *cobra.Command {
	var docs bool

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print the classes extracted from a Python file",
		Long: `Inspect prints every class found in a Python file with its base classes,
attributes, methods and relations, before any relation is resolved.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return c.runInspect(cmd.Context(), args[0], docs)
		},
	}

	cmd.Flags().BoolVar(&docs, "doc", false, "show method docstrings")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, docs bool) error {
	opts := pipeline.Options{Source: input, Docs: docs}
	m, err := c.newRunner().Extract(ctx, opts)
	if err != nil {
		return err
	}
	fmt.Fprint(c.Out, formatModel(m))
	return nil
}

// formatModel renders the report for every class in model order.
func formatModel(m *uml.Model) string {
	var b strings.Builder
	for _, cl := range m.Classes {
		writeClass(&b, cl)
	}
	fmt.Fprintln(&b, StyleDim.Render(fmt.Sprintf("%s · %s",
		plural(len(m.Classes), "class", "classes"),
		plural(m.RelationCount(), "relation", "relations"))))
	return b.String()
}

func writeClass(b *strings.Builder, cl *uml.Class) {
	fmt.Fprintln(b, StyleLabel.Render("Class:")+" "+StyleTitle.Render(cl.Name))
	if len(cl.Bases) > 0 {
		fmt.Fprintln(b, "  "+StyleLabel.Render("Inherits from:")+" "+strings.Join(cl.Bases, ", "))
	}

	fmt.Fprintln(b, "  "+StyleLabel.Render("Variables:"))
	for _, a := range cl.Attributes.All() {
		typ := a.Primary
		if a.Secondary != "" {
			typ += ", " + a.Secondary
		}
		fmt.Fprintf(b, "    %s: %s\n", a.Name, StyleValue.Render(typ))
	}

	fmt.Fprintln(b, "  "+StyleLabel.Render("Methods:"))
	for _, fn := range cl.Methods {
		line := "    " + fn.Label()
		if fn.Async {
			line = "    async " + fn.Label()
		}
		if fn.Doc != "" {
			line += dimLines(" - " + fn.Doc)
		}
		fmt.Fprintln(b, line)
	}

	fmt.Fprintln(b, "  "+StyleLabel.Render("Relations:"))
	for _, r := range cl.Relations {
		fmt.Fprintln(b, "    "+r.String())
	}
}

// dimLines styles each line of s on its own so multi-line text is not padded
// to a common block width.
func dimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = StyleDim.Render(l)
	}
	return strings.Join(lines, "\n")
}
