// Package presentation renders blueprints for the CLI.
package presentation

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"github.com/aretw0/fable/internal/loader"
)

// Markdown builds a markdown summary of a blueprint: contract first, then
// the step tree with nested stories indented.
func Markdown(bp *loader.Blueprint) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", bp.Name)

	if bp.Contract.Len() > 0 {
		b.WriteString("## Contract\n\n")
		for _, name := range bp.Contract.Names() {
			fmt.Fprintf(&b, "- `%s`\n", name)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Steps\n\n")
	writeSteps(&b, bp.Steps, 0)
	return b.String()
}

func writeSteps(b *strings.Builder, steps []loader.Step, depth int) {
	indent := strings.Repeat("  ", depth)
	for i, stp := range steps {
		if len(stp.Steps) > 0 {
			fmt.Fprintf(b, "%s%d. **%s** (story)\n", indent, i+1, stp.Name)
			writeSteps(b, stp.Steps, depth+1)
			continue
		}
		fmt.Fprintf(b, "%s%d. %s\n", indent, i+1, stp.Name)
	}
}

// Render renders the blueprint summary with glamour for terminal display.
func Render(bp *loader.Blueprint) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return "", err
	}
	return r.Render(Markdown(bp))
}

// OK returns msg styled as a success line.
func OK(msg string) string {
	p := termenv.ColorProfile()
	return termenv.String("✔ " + msg).Foreground(p.Color("2")).String()
}

// Fail returns msg styled as a failure line.
func Fail(msg string) string {
	p := termenv.ColorProfile()
	return termenv.String("✘ " + msg).Foreground(p.Color("1")).String()
}
