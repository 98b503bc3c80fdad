package model

// Stats are line and commit counts for a set of commits.
type Stats struct {
	Additions int
	Deletions int
	Commits   int
}

func (s *Stats) Add(other Stats) {
	s.Additions += other.Additions
	s.Deletions += other.Deletions
	s.Commits += other.Commits
}

func (s Stats) Net() int {
	return s.Additions - s.Deletions
}

func (s Stats) IsEmpty() bool {
	return s.Additions == 0 && s.Deletions == 0 && s.Commits == 0
}
