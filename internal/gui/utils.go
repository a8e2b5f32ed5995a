package gui

import "strings"

var tclEscaper = strings.NewReplacer(
	`\`, `\\`,
	`{`, `\{`,
	`}`, `\}`,
)

// escapeTclString makes s safe for embedding inside a braced Tcl word.
func escapeTclString(s string) string {
	return tclEscaper.Replace(s)
}

// tclList renders items as a Tcl list literal.
func tclList(items ...string) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString("{")
		b.WriteString(escapeTclString(item))
		b.WriteString("}")
	}
	return b.String()
}
