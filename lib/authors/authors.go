// Package authors combines author identities into a single case-insensitive pattern.
package authors

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// matchNothing can't match any text, both as RE2 and as POSIX ERE.
const matchNothing = "a^"

type Matcher struct {
	identities []string
	pattern    string
	re         *regexp.Regexp
}

func New(identities []string) (*Matcher, error) {
	identities = lo.Uniq(lo.FilterMap(identities, func(i string, _ int) (string, bool) {
		i = strings.TrimSpace(i)
		return i, i != ""
	}))

	pattern := matchNothing
	if len(identities) > 0 {
		pattern = strings.Join(lo.Map(identities, func(i string, _ int) string {
			return regexp.QuoteMeta(i)
		}), "|")
	}

	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid author pattern %v", pattern)
	}

	return &Matcher{
		identities: identities,
		pattern:    pattern,
		re:         re,
	}, nil
}

// Pattern is meant for git --author with --extended-regexp --regexp-ignore-case.
func (m *Matcher) Pattern() string {
	return m.pattern
}

func (m *Matcher) Identities() []string {
	return append([]string(nil), m.identities...)
}

func (m *Matcher) Empty() bool {
	return len(m.identities) == 0
}

func (m *Matcher) Matches(author string) bool {
	return m.re.MatchString(author)
}
