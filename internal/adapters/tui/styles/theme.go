package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// Nucleotide colors
	Adenine  = lipgloss.Color("#22C55E")
	Cytosine = lipgloss.Color("#3B82F6")
	Guanine  = lipgloss.Color("#EAB308")
	Thymine  = lipgloss.Color("#EF4444")

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Strand row styles
	Scaffold = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary)

	Staple = lipgloss.NewStyle()

	RowSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	Swatch = "■ "

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(White).
			Padding(0, 1)

	StatusKey = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Padding(0, 1).
			MarginRight(1)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Search
	SearchMatch = lipgloss.NewStyle().
			Background(Warning).
			Foreground(Black)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// StrandColor returns the display color of a staple color tag. Negative
// colors (untagged strands) render muted.
func StrandColor(c int) lipgloss.Color {
	if c < 0 {
		return Muted
	}
	return lipgloss.Color(fmt.Sprintf("#%06x", c&0xffffff))
}

// NucleotideStyle returns the style of one sequence letter
func NucleotideStyle(letter rune) lipgloss.Style {
	switch letter {
	case 'A':
		return lipgloss.NewStyle().Foreground(Adenine)
	case 'C':
		return lipgloss.NewStyle().Foreground(Cytosine)
	case 'G':
		return lipgloss.NewStyle().Foreground(Guanine)
	case 'T':
		return lipgloss.NewStyle().Foreground(Thymine)
	default:
		return MutedText
	}
}
