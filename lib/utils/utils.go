package utils

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

func IIf[T any](test bool, ifTrue, ifFalse T) T {
	if test {
		return ifTrue
	} else {
		return ifFalse
	}
}

// PathAbs expands a leading ~/ and makes the path absolute. Relative paths are
// resolved against base when it is not empty, otherwise against the working dir.
func PathAbs(base string, path string) (string, error) {
	if path == "~" || strings.HasPrefix(filepath.ToSlash(path), "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}

		path = filepath.Join(home, strings.TrimPrefix(path[1:], string(filepath.Separator)))
	}

	if base != "" && !filepath.IsAbs(path) {
		path = filepath.Join(base, path)
	}

	path, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return path, nil
}

// PathCanonical returns the absolute path with symbolic links resolved. Paths
// that do not exist are returned cleaned but unresolved.
func PathCanonical(base string, path string) (string, error) {
	path, err := PathAbs(base, path)
	if err != nil {
		return "", err
	}

	resolved, err := filepath.EvalSymlinks(path)
	switch {
	case err == nil:
		return resolved, nil
	case errors.Is(err, os.ErrNotExist):
		return path, nil
	default:
		return "", err
	}
}

func FileExists(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return true, nil

	} else if errors.Is(err, os.ErrNotExist) {
		return false, nil

	} else {
		return false, err
	}
}

func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ReadLines reads a config style file: one entry per line, trimmed, with blank
// lines and lines starting with # ignored.
func ReadLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var result []string

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		result = append(result, line)
	}

	if err = scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "error reading %v", path)
	}

	return result, nil
}

func WriteLines(path string, lines []string) error {
	err := os.MkdirAll(filepath.Dir(path), 0o700)
	if err != nil {
		return err
	}

	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return os.WriteFile(path, []byte(sb.String()), 0o600)
}
