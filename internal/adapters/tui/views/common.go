package views

import "nanodesign/internal/application/commands"

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// Messages for view switching
type SwitchToDetailMsg struct {
	Strand commands.StrandInfo
}

type SwitchToHelpMsg struct{}

type SwitchToListMsg struct{}

// OpenEditorMsg asks the app to open the design file in $EDITOR
type OpenEditorMsg struct{}

// copyMsg reports the outcome of a clipboard copy
type copyMsg struct {
	what string
	err  error
}
