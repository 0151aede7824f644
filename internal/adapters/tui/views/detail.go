package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"nanodesign/internal/adapters/tui/styles"
	"nanodesign/internal/application/commands"
)

// DetailKeyMap defines key bindings for the strand detail view
type DetailKeyMap struct {
	Back key.Binding
	Copy key.Binding
	Open key.Binding
	Quit key.Binding
}

var DetailKeys = DetailKeyMap{
	Back: key.NewBinding(
		key.WithKeys("esc", "h", "left", "backspace"),
		key.WithHelp("esc", "back"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy sequence"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open design"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// DetailModel shows the domains and sequence of one strand
type DetailModel struct {
	ViewState
	strand commands.StrandInfo
}

// NewDetailModel creates a new strand detail model
func NewDetailModel() *DetailModel {
	return &DetailModel{}
}

// Init initializes the detail view
func (m *DetailModel) Init() tea.Cmd {
	return nil
}

// SetStrand selects the strand to show
func (m *DetailModel) SetStrand(st commands.StrandInfo) {
	m.strand = st
	m.ClearMessage()
}

// Update handles messages for the detail view
func (m *DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case copyMsg:
		if msg.err != nil {
			m.SetMessage("Copy failed: "+msg.err.Error(), true)
		} else {
			m.SetMessage("Copied "+msg.what, false)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DetailKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, DetailKeys.Back):
			return m, func() tea.Msg { return SwitchToListMsg{} }
		case key.Matches(msg, DetailKeys.Copy):
			return m, copySequence(m.strand)
		case key.Matches(msg, DetailKeys.Open):
			return m, func() tea.Msg { return OpenEditorMsg{} }
		}
	}
	return m, nil
}

// View renders the detail view
func (m *DetailModel) View() string {
	st := m.strand
	v := NewViewBuilder().Title(fmt.Sprintf("%s %d", st.Role, st.ID))

	v.Line(RenderLabelValue("Color", RenderSwatch(st.Color)))
	v.Line(RenderLabelValue("Length", fmt.Sprintf("%d nt", st.Length)))
	v.Line(RenderLabelValue("5' end", fmt.Sprintf("%d[%d]", st.Start.Helix, st.Start.Pos)))
	v.Line(RenderLabelValue("3' end", fmt.Sprintf("%d[%d]", st.End.Helix, st.End.Pos)))
	if st.Circular {
		v.Line(RenderLabelValue("Topology", "circular"))
	}
	v.BlankLine()

	v.Line(styles.InputLabel.Render(fmt.Sprintf("Domains (%d)", len(st.Domains))))
	for i, d := range st.Domains {
		v.Line(fmt.Sprintf("  %2d  helix %-4d %4d → %-4d %4d nt", i, d.Helix, d.Start, d.End, d.Length))
	}
	v.BlankLine()

	v.Line(styles.InputLabel.Render("Sequence 5'→3'"))
	width := 60
	if m.Width > 20 {
		width = min(m.Width-16, 100)
	}
	v.Line(RenderSequence(st.Sequence, width))
	v.BlankLine()

	v.Message(m.Message, m.MessageErr)
	v.Help(DetailKeys.Back, DetailKeys.Copy, DetailKeys.Open, DetailKeys.Quit)
	return v.String()
}
