package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"nanodesign/internal/adapters/tui/styles"
	"nanodesign/internal/adapters/tui/views"
	"nanodesign/internal/domain"
	"nanodesign/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewList ViewState = iota
	ViewDetail
	ViewHelp
)

// Loader builds the structure the app browses
type Loader func(ctx context.Context) (*domain.Structure, error)

// App is the main TUI application model
type App struct {
	load       Loader
	designPath string
	editor     ports.EditorOpener

	state   ViewState
	strands *views.StrandsModel
	detail  *views.DetailModel
	help    *views.HelpModel
	err     error

	width  int
	height int
}

// NewApp creates a new TUI application browsing the structure built by load.
// designPath is the file opened by the editor key; ed may be nil.
func NewApp(load Loader, designPath string, ed ports.EditorOpener) *App {
	return &App{
		load:       load,
		designPath: designPath,
		editor:     ed,
		state:      ViewList,
		strands:    views.NewStrandsModel(),
		detail:     views.NewDetailModel(),
		help:       views.NewHelpModel(),
	}
}

type structureLoadedMsg struct {
	structure *domain.Structure
}

type loadErrMsg struct {
	err error
}

type editorFinishedMsg struct{ err error }

// Init starts building the structure
func (a *App) Init() tea.Cmd {
	return a.reload
}

func (a *App) reload() tea.Msg {
	s, err := a.load(context.Background())
	if err != nil {
		return loadErrMsg{err}
	}
	return structureLoadedMsg{s}
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.strands.SetSize(msg.Width, msg.Height)
		a.detail.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case structureLoadedMsg:
		a.err = nil
		a.strands.SetStructure(msg.structure)
		return a, nil

	case loadErrMsg:
		a.err = msg.err
		return a, nil

	// View switching messages
	case views.SwitchToDetailMsg:
		a.state = ViewDetail
		a.detail.SetStrand(msg.Strand)
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToListMsg:
		a.state = ViewList
		return a, nil

	case views.OpenEditorMsg:
		return a, a.openEditor()

	case editorFinishedMsg:
		if msg.err != nil {
			a.strands.SetMessage(msg.err.Error(), true)
			a.detail.SetMessage(msg.err.Error(), true)
			return a, nil
		}
		// the design may have been edited
		a.state = ViewList
		return a, a.reload
	}

	if a.err != nil {
		if k, ok := msg.(tea.KeyMsg); ok && (k.String() == "q" || k.String() == "ctrl+c") {
			return a, tea.Quit
		}
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewList:
		_, cmd = a.strands.Update(msg)
	case ViewDetail:
		_, cmd = a.detail.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

func (a *App) openEditor() tea.Cmd {
	if a.editor == nil || a.designPath == "" {
		return nil
	}

	cmd, err := a.editor.Command(a.designPath)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	if a.err != nil {
		return styles.App.Render(styles.ErrorMsg.Render(a.err.Error()) + "\n\n" + styles.MutedText.Render("press q to quit"))
	}
	switch a.state {
	case ViewDetail:
		return a.detail.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.strands.View()
	}
}
