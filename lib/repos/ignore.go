package repos

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"

	"github.com/pescuma/dailyloc/lib/utils"
)

// IgnoreSet holds canonical absolute paths under which discovery must not go.
// Entries with glob characters are kept as doublestar patterns instead.
type IgnoreSet struct {
	prefixes []string
	globs    []string
}

func NewIgnoreSet(entries []string, root string) (*IgnoreSet, error) {
	result := &IgnoreSet{}

	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if strings.ContainsAny(entry, "*?[{") {
			pattern, err := utils.PathAbs(root, entry)
			if err != nil {
				return nil, err
			}

			pattern = filepath.ToSlash(pattern)
			if !doublestar.ValidatePattern(pattern) {
				return nil, errors.Errorf("invalid ignore glob: %v", entry)
			}

			result.globs = append(result.globs, pattern)
			continue
		}

		path, err := utils.PathCanonical(root, entry)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid ignore path: %v", entry)
		}

		result.prefixes = append(result.prefixes, path)
	}

	return result, nil
}

func (s *IgnoreSet) Len() int {
	return len(s.prefixes) + len(s.globs)
}

// Ignored expects path to already be canonical.
func (s *IgnoreSet) Ignored(path string) bool {
	if s == nil {
		return false
	}

	path = filepath.Clean(path)

	for _, prefix := range s.prefixes {
		if path == prefix {
			return true
		}

		if !strings.HasSuffix(prefix, string(filepath.Separator)) {
			prefix += string(filepath.Separator)
		}

		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	slashPath := filepath.ToSlash(path)
	for _, glob := range s.globs {
		if m, err := doublestar.Match(glob, slashPath); err == nil && m {
			return true
		}
	}

	return false
}
