package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// fallbacks are tried in order when no editor is configured
var fallbacks = []string{"nvim", "vim", "vi", "nano"}

// Opener implements ports.EditorOpener
type Opener struct {
	// Editor overrides $VISUAL and $EDITOR. It may carry arguments, e.g. "code --wait".
	Editor   string
	lookPath func(string) (string, error)
}

// NewOpener creates an opener using the given editor command, or the
// environment when it is empty
func NewOpener(editor string) *Opener {
	return &Opener{Editor: editor, lookPath: exec.LookPath}
}

// OpenFile opens a migration in the editor and waits for it to exit
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}
	return nil
}

// Command returns an exec.Cmd for opening a file in the editor
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	argv := strings.Fields(o.resolve())
	if len(argv) == 0 {
		return nil, fmt.Errorf("no editor found: set $EDITOR or editor in the config file")
	}

	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

func (o *Opener) resolve() string {
	for _, candidate := range []string{o.Editor, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	for _, editor := range fallbacks {
		if path, err := o.lookPath(editor); err == nil {
			return path
		}
	}
	return ""
}
