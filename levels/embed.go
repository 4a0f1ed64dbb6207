package levels

import (
	"embed"
	"fmt"
	"io/fs"
)

// LevelsFS holds the built-in projects shipped with the binary.
//
//go:embed *.ldtk
var LevelsFS embed.FS

// Builtin lists the embedded project names in directory order.
func Builtin() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names
}

// LoadProjectFromFS reads and parses a project from fsys.
func LoadProjectFromFS(fsys fs.FS, name string) (*Project, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return Parse(data)
}
