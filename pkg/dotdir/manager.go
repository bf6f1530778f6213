// Package dotdir manages the .marquee/ and ~/.marquee directories, where the
// config file and, by default, the movie catalog live.
package dotdir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// dirName is the name of the marquee directory.
	dirName = ".marquee"
)

// ErrNotFound is returned by Find when no candidate file exists.
var ErrNotFound = errors.New("file not found in any marquee directory")

type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// Target returns the absolute path to a .marquee/ directory, creating it if
// needed. Order of precedence:
//  1. Provided override
//  2. Local ./.marquee/ dir
//  3. Home ~/.marquee/ dir
func (m *Manager) Target(overrideDir string) (string, error) {
	var dir string

	switch {
	case overrideDir != "":
		dir = overrideDir

	case m.localDirExists():
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		dir = filepath.Join(cwd, dirName)

	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, dirName)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating marquee directory %s: %w", dir, err)
	}

	return filepath.Abs(dir)
}

// Find returns the first existing file named name, looking in the working
// directory, then ./.marquee/, then ~/.marquee/.
func (m *Manager) Find(name string) (string, error) {
	candidates := []string{
		name,
		filepath.Join(dirName, name),
	}

	home, err := os.UserHomeDir()
	if err == nil {
		candidates = append(candidates, filepath.Join(home, dirName, name))
	}

	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return filepath.Abs(candidate)
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

// localDirExists checks whether a .marquee/ directory exists in the current
// working directory.
func (m *Manager) localDirExists() bool {
	cwd, err := os.Getwd()
	if err != nil {
		return false
	}

	info, err := os.Stat(filepath.Join(cwd, dirName))
	return err == nil && info.IsDir()
}
