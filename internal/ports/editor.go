package ports

import "os/exec"

// EditorOpener opens generated files in an external editor
type EditorOpener interface {
	// OpenFile opens the file and waits for the editor to exit
	OpenFile(path string) error

	// Command returns the editor process without starting it
	Command(path string) (*exec.Cmd, error)
}

// Clipboard receives generated content
type Clipboard interface {
	Copy(content string) error
}
