package report

import (
	"fmt"

	"github.com/dekarrin/rosed"
	"github.com/tnwae/nuventure/internal/verbs"
)

// HelpLine returns the single line of help for the verb called name, or an
// empty string if def has no help text.
func HelpLine(name string, def *verbs.Definition) string {
	if def == nil || def.Cheat() {
		return ""
	}
	return fmt.Sprintf("%-15s%s", name, def.Help)
}

// HelpListing returns one help line per word the player can type, in table
// order, skipping definitions without help text.
func HelpListing(t *verbs.Table) []string {
	var lines []string
	for _, def := range t.Definitions() {
		for _, k := range def.Keys() {
			if line := HelpLine(k, def); line != "" {
				lines = append(lines, line)
			}
		}
	}
	return lines
}

// HelpTable renders the help of every definition of t with help text as a
// two-column table wrapped to width.
func HelpTable(t *verbs.Table, width int) string {
	var rows [][2]string
	for _, def := range t.Definitions() {
		if def.Cheat() {
			continue
		}
		for _, k := range def.Keys() {
			rows = append(rows, [2]string{k, def.Help})
		}
	}

	return rosed.Edit("").
		WithOptions(rosed.Options{ParagraphSeparator: "\n"}).
		InsertDefinitionsTable(0, rows, width).
		String()
}
