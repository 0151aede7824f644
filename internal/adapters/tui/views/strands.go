package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"nanodesign/internal/adapters/tui/styles"
	"nanodesign/internal/application"
	"nanodesign/internal/application/commands"
	"nanodesign/internal/domain"
)

// writeClipboard is replaced in tests
var writeClipboard = clipboard.WriteAll

// StrandsKeyMap defines key bindings for the strand list
type StrandsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Enter    key.Binding
	Role     key.Binding
	Copy     key.Binding
	Open     key.Binding
	Search   key.Binding
	Cancel   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var StrandsKeys = StrandsKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "prev page"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn", "next page"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter", "l", "right"),
		key.WithHelp("enter", "details"),
	),
	Role: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "all/scaffold/staple"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy sequence"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open design"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear search"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

var roleCycle = []string{"", "scaffold", "staple"}

// StrandsModel lists the strands of a structure with an inline fuzzy search
type StrandsModel struct {
	ViewState
	structure *domain.Structure
	summary   application.Summary
	strands   []commands.StrandInfo
	role      string
	searching bool
	input     textinput.Model
	pager     *Paginator
}

// NewStrandsModel creates a new strand list model
func NewStrandsModel() *StrandsModel {
	input := textinput.New()
	input.Placeholder = "label or sequence..."
	input.Prompt = "/ "
	return &StrandsModel{
		input: input,
		pager: NewPaginator(20),
	}
}

// Init initializes the strand list
func (m *StrandsModel) Init() tea.Cmd {
	return nil
}

// SetStructure replaces the listed structure
func (m *StrandsModel) SetStructure(s *domain.Structure) {
	m.structure = s
	m.summary = application.Summarize(s)
	m.pager.Reset()
	m.refresh()
}

// SetSize updates the view dimensions and the page size
func (m *StrandsModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	// title, summary, search, message and help lines
	m.pager.SetPageSize(max(height-12, 5))
}

// Strands returns the rows currently listed
func (m *StrandsModel) Strands() []commands.StrandInfo {
	return m.strands
}

// Selected returns the row under the cursor
func (m *StrandsModel) Selected() (commands.StrandInfo, bool) {
	i := m.pager.Cursor()
	if i < 0 || i >= len(m.strands) {
		return commands.StrandInfo{}, false
	}
	return m.strands[i], true
}

// refresh recomputes the rows from the role filter or the search query
func (m *StrandsModel) refresh() {
	if m.structure == nil {
		return
	}
	ctx := context.Background()

	if query := strings.TrimSpace(m.input.Value()); m.searching && len(query) >= 2 {
		results, err := commands.NewSearchStrandsCommand(m.structure, query).Execute(ctx)
		if err != nil {
			m.SetMessage(err.Error(), true)
			return
		}
		m.strands = nil
		for _, r := range results {
			if m.role == "" || r.Role == m.role {
				m.strands = append(m.strands, r.StrandInfo)
			}
		}
	} else {
		cmd := commands.NewListStrandsCommand(m.structure)
		cmd.Role = m.role
		strands, err := cmd.Execute(ctx)
		if err != nil {
			m.SetMessage(err.Error(), true)
			return
		}
		m.strands = strands
	}
	m.pager.SetTotal(len(m.strands))
}

// Update handles messages for the strand list
func (m *StrandsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		if m.searching {
			return m.updateSearch(msg)
		}
		m.ClearMessage()

		switch {
		case key.Matches(msg, StrandsKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, StrandsKeys.Up):
			m.pager.CursorUp()
			return m, nil

		case key.Matches(msg, StrandsKeys.Down):
			m.pager.CursorDown()
			return m, nil

		case key.Matches(msg, StrandsKeys.PageUp):
			m.pager.PrevPage()
			return m, nil

		case key.Matches(msg, StrandsKeys.PageDown):
			m.pager.NextPage()
			return m, nil

		case key.Matches(msg, StrandsKeys.Role):
			m.cycleRole()
			return m, nil

		case key.Matches(msg, StrandsKeys.Search):
			m.searching = true
			m.input.SetValue("")
			return m, m.input.Focus()

		case key.Matches(msg, StrandsKeys.Cancel):
			m.input.SetValue("")
			m.refresh()
			return m, nil

		case key.Matches(msg, StrandsKeys.Enter):
			if st, ok := m.Selected(); ok {
				return m, func() tea.Msg { return SwitchToDetailMsg{Strand: st} }
			}
			return m, nil

		case key.Matches(msg, StrandsKeys.Copy):
			if st, ok := m.Selected(); ok {
				return m, copySequence(st)
			}
			return m, nil

		case key.Matches(msg, StrandsKeys.Open):
			return m, func() tea.Msg { return OpenEditorMsg{} }

		case key.Matches(msg, StrandsKeys.Help):
			return m, func() tea.Msg { return SwitchToHelpMsg{} }
		}
	}

	return m, nil
}

// updateSearch routes keys to the search input; navigation keys still move
// the cursor so a result can be picked without leaving the input
func (m *StrandsModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.input.Blur()
		m.input.SetValue("")
		m.refresh()
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.input.Blur()
		if st, ok := m.Selected(); ok {
			return m, func() tea.Msg { return SwitchToDetailMsg{Strand: st} }
		}
		return m, nil
	case tea.KeyUp:
		m.pager.CursorUp()
		return m, nil
	case tea.KeyDown:
		m.pager.CursorDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.pager.SetCursor(0)
	m.refresh()
	return m, cmd
}

func (m *StrandsModel) cycleRole() {
	for i, r := range roleCycle {
		if r == m.role {
			m.role = roleCycle[(i+1)%len(roleCycle)]
			break
		}
	}
	m.pager.SetCursor(0)
	m.refresh()
}

func copySequence(st commands.StrandInfo) tea.Cmd {
	return func() tea.Msg {
		err := writeClipboard(st.Sequence)
		return copyMsg{what: fmt.Sprintf("%d nt of %s %d", st.Length, st.Role, st.ID), err: err}
	}
}

// View renders the strand list
func (m *StrandsModel) View() string {
	if m.structure == nil {
		return styles.App.Render("Loading...")
	}

	v := NewViewBuilder().Title("nanodesign · " + m.summary.Name)
	v.Muted(fmt.Sprintf("%s lattice · %d helices · %d bases · %d scaffolds · %d staples%s",
		m.summary.Lattice, m.summary.Helices, m.summary.Bases, m.summary.Scaffolds, m.summary.Staples,
		modifiedNote(m.summary.Modified)))
	v.BlankLine()

	if m.searching || m.input.Value() != "" {
		v.Line(m.input.View())
	}
	filter := "all strands"
	if m.role != "" {
		filter = m.role + "s only"
	}
	v.Muted(fmt.Sprintf("%s · %d shown · page %s", filter, len(m.strands), m.pager.View()))

	start, end := m.pager.VisibleRange()
	for i := start; i < end; i++ {
		v.Line(m.renderRow(m.strands[i], i == m.pager.Cursor()))
	}
	if len(m.strands) == 0 {
		v.Muted("No strands.")
	}

	v.BlankLine()
	v.Message(m.Message, m.MessageErr)
	v.Help(StrandsKeys.Enter, StrandsKeys.Search, StrandsKeys.Role, StrandsKeys.Copy, StrandsKeys.Open, StrandsKeys.Help, StrandsKeys.Quit)
	return v.String()
}

func (m *StrandsModel) renderRow(st commands.StrandInfo, selected bool) string {
	shape := ""
	if st.Circular {
		shape = " circular"
	}
	text := fmt.Sprintf("%-8s %4d  %4d nt  %2d domains  %d[%d] → %d[%d]%s",
		st.Role, st.ID, st.Length, len(st.Domains),
		st.Start.Helix, st.Start.Pos, st.End.Helix, st.End.Pos, shape)

	if selected {
		return RenderSwatch(st.Color) + " " + styles.RowSelected.Render(text)
	}
	style := styles.Staple
	if st.Role == "scaffold" {
		style = styles.Scaffold
	}
	return RenderSwatch(st.Color) + " " + style.Render(text)
}

func modifiedNote(modified bool) string {
	if modified {
		return " · insertions/deletions applied"
	}
	return ""
}
