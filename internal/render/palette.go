// Package render turns query results and DDL statements into styled terminal
// output.
package render

import "github.com/charmbracelet/lipgloss"

// Palette holds the lipgloss styles used for terminal output. Every rendered
// element references a style here so the whole look can be swapped by name.
type Palette struct {
	Name string

	// SQL syntax highlighting
	SQLKeyword  lipgloss.Style
	SQLString   lipgloss.Style
	SQLNumber   lipgloss.Style
	SQLComment  lipgloss.Style
	SQLOperator lipgloss.Style
	SQLFunction lipgloss.Style
	SQLType     lipgloss.Style

	// Result tables
	Header lipgloss.Style
	Cell   lipgloss.Style
	Null   lipgloss.Style
	Border lipgloss.Style

	// General
	ErrorText   lipgloss.Style
	SuccessText lipgloss.Style
	MutedText   lipgloss.Style
}

func newDefaultPalette() *Palette {
	return &Palette{
		Name: "default",

		SQLKeyword: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#569CD6")),
		SQLString: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CE9178")),
		SQLNumber: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#B5CEA8")),
		SQLComment: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#6A9955")),
		SQLOperator: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D4D4D4")),
		SQLFunction: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#DCDCAA")),
		SQLType: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4EC9B0")),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#569CD6")),
		Cell: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D4D4D4")),
		Null: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#808080")),
		Border: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3C3C3C")),

		ErrorText: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F44747")),
		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6A9955")),
		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#808080")),
	}
}

func newLightPalette() *Palette {
	return &Palette{
		Name: "light",

		SQLKeyword: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0000FF")),
		SQLString: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A31515")),
		SQLNumber: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#098658")),
		SQLComment: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#008000")),
		SQLOperator: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1E1E1E")),
		SQLFunction: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#795E26")),
		SQLType: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#267F99")),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0451A5")),
		Cell: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1E1E1E")),
		Null: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#A0A0A0")),
		Border: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D4D4D4")),

		ErrorText: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#E51400")),
		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#16825D")),
		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A0A0A0")),
	}
}

func newMonokaiPalette() *Palette {
	return &Palette{
		Name: "monokai",

		SQLKeyword: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F92672")),
		SQLString: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E6DB74")),
		SQLNumber: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AE81FF")),
		SQLComment: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#75715E")),
		SQLOperator: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F92672")),
		SQLFunction: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6E22E")),
		SQLType: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#66D9EF")).
			Italic(true),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A6E22E")),
		Cell: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8F8F2")),
		Null: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#75715E")),
		Border: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#49483E")),

		ErrorText: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F92672")),
		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6E22E")),
		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#75715E")),
	}
}

// Palettes maps palette names to their definitions.
var Palettes = map[string]*Palette{
	"default": newDefaultPalette(),
	"light":   newLightPalette(),
	"monokai": newMonokaiPalette(),
}

// Get returns the palette identified by name, falling back to default.
func Get(name string) *Palette {
	if p, ok := Palettes[name]; ok {
		return p
	}
	return Palettes["default"]
}
