package gitstats

import (
	"strconv"
	"strings"

	"github.com/pescuma/dailyloc/lib/model"
)

// NumstatLine is one file entry of git log --numstat.
type NumstatLine struct {
	Added   int
	Deleted int
	Path    string
}

// ParseNumstatLine returns false for anything that isn't a numeric numstat
// entry, including binary files (-\t-\tpath).
func ParseNumstatLine(line string) (NumstatLine, bool) {
	fields := strings.SplitN(line, "\t", 3)
	if len(fields) < 2 {
		return NumstatLine{}, false
	}

	added, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil || added < 0 {
		return NumstatLine{}, false
	}

	deleted, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil || deleted < 0 {
		return NumstatLine{}, false
	}

	result := NumstatLine{
		Added:   added,
		Deleted: deleted,
	}
	if len(fields) == 3 {
		result.Path = fields[2]
	}

	return result, true
}

// SumNumstat adds all numeric entries of the output. Commits are not counted.
func SumNumstat(output string) model.Stats {
	result := model.Stats{}

	for _, line := range strings.Split(output, "\n") {
		l, ok := ParseNumstatLine(line)
		if !ok {
			continue
		}

		result.Additions += l.Added
		result.Deletions += l.Deleted
	}

	return result
}
