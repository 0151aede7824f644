package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"nanodesign/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	width  int
	height int
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToListMsg{}
			}
		}
	}

	return m, nil
}

// helpSections group the bindings of the list and detail views
var helpSections = []struct {
	title    string
	bindings []key.Binding
}{
	{"Strand list", []key.Binding{
		StrandsKeys.Up, StrandsKeys.Down, StrandsKeys.PageUp, StrandsKeys.PageDown,
		StrandsKeys.Enter, StrandsKeys.Role, StrandsKeys.Search, StrandsKeys.Cancel,
	}},
	{"Strand details", []key.Binding{DetailKeys.Back}},
	{"Anywhere", []key.Binding{StrandsKeys.Copy, StrandsKeys.Open, StrandsKeys.Help, StrandsKeys.Quit}},
}

// View renders the help view from the live key bindings
func (m *HelpModel) View() string {
	v := NewViewBuilder().
		Title("nanodesign Help").
		Subtitle("DNA origami strand browser")

	for _, section := range helpSections {
		v.Line(styles.InputLabel.Render(section.title))
		for _, b := range section.bindings {
			v.Line(helpLine(b))
		}
		v.BlankLine()
	}

	v.Line(styles.InputLabel.Render("Labels"))
	v.Muted("  Locus    : helix[position], e.g. 12[84]")
	v.Muted("  Color    : caDNAno staple color as #rrggbb, - when untagged")
	v.Muted("  Sequence : N marks an unassigned base")
	v.BlankLine()

	return v.Help(HelpKeys.Close).String()
}

func helpLine(b key.Binding) string {
	h := b.Help()
	return "  " + styles.HelpKey.Render(padRight(strings.Join(b.Keys(), " / "), 24)) + styles.HelpDesc.Render(h.Desc)
}

func padRight(s string, length int) string {
	if w := lipgloss.Width(s); w < length {
		return s + strings.Repeat(" ", length-w)
	}
	return s
}

// SetSize updates the view dimensions
func (m *HelpModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
