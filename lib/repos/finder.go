package repos

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-set/v2"
	"github.com/pkg/errors"

	"github.com/pescuma/dailyloc/lib/utils"
)

const metadataDir = ".git"

type Finder struct {
	Ignore *IgnoreSet

	// Visit, when set, is called for every directory the walk enters.
	Visit func(dir string)
}

// IsRepository returns true when dir directly contains a .git directory.
func IsRepository(dir string) bool {
	return utils.DirExists(filepath.Join(dir, metadataDir))
}

// Find walks the roots depth first and returns the sorted, deduplicated list of
// canonical repository paths.
func (f *Finder) Find(roots []string) ([]string, error) {
	found := set.New[string](100)

	for _, root := range roots {
		root, err := utils.PathCanonical("", root)
		if err != nil {
			return nil, err
		}

		err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
			switch {
			case err != nil && entry != nil && entry.IsDir() && path != root:
				return filepath.SkipDir

			case err != nil:
				return nil

			case !entry.IsDir():
				return nil

			case f.Ignore.Ignored(path):
				return filepath.SkipDir

			case path != root && strings.HasPrefix(entry.Name(), "."):
				return filepath.SkipDir
			}

			if f.Visit != nil {
				f.Visit(path)
			}

			if IsRepository(path) {
				found.Insert(path)
			}

			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "error searching for repositories in %v", root)
		}
	}

	result := found.Slice()
	sort.Strings(result)
	return result, nil
}

func WriteList(path string, repos []string) error {
	return utils.WriteLines(path, repos)
}

func ReadList(path string) ([]string, error) {
	lines, err := utils.ReadLines(path)
	if err != nil {
		return nil, err
	}

	found := set.New[string](len(lines))
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		dir, err := utils.PathAbs("", line)
		if err != nil {
			return nil, err
		}

		if found.Insert(dir) {
			result = append(result, dir)
		}
	}

	return result, nil
}
