package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"nanodesign/internal/ports"
)

// fallbacks are tried in order when neither $VISUAL nor $EDITOR is set
var fallbacks = []string{"nvim", "vim", "vi", "nano"}

// Opener implements ports.EditorOpener
type Opener struct {
	lookPath func(string) (string, error)
	getenv   func(string) string
}

// Ensure Opener implements EditorOpener
var _ ports.EditorOpener = (*Opener)(nil)

// NewOpener creates a new editor opener
func NewOpener() *Opener {
	return &Opener{lookPath: exec.LookPath, getenv: os.Getenv}
}

// OpenFile opens a file in the user's preferred editor and waits for it to exit
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd attached to the terminal for opening path, for
// use with bubbletea's ExecProcess. Editor variables may carry arguments,
// e.g. EDITOR="code --wait".
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	argv := o.editorArgs()
	if len(argv) == 0 {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

// editorArgs returns the editor command line: $VISUAL, then $EDITOR, then
// the first fallback found on PATH
func (o *Opener) editorArgs() []string {
	for _, name := range []string{"VISUAL", "EDITOR"} {
		if argv := strings.Fields(o.getenv(name)); len(argv) > 0 {
			return argv
		}
	}
	for _, editor := range fallbacks {
		if path, err := o.lookPath(editor); err == nil {
			return []string{path}
		}
	}
	return nil
}
