package ports

import "os/exec"

// EditorOpener opens files in the user's editor
type EditorOpener interface {
	// OpenFile opens path and waits for the editor to exit
	OpenFile(path string) error

	// Command returns the editor process for path without starting it, for
	// handing the terminal over with bubbletea's ExecProcess
	Command(path string) (*exec.Cmd, error)
}
