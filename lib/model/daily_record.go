package model

import (
	"time"
)

// DailyRecord is the total for one calendar day across all repositories.
type DailyRecord struct {
	Day       time.Time
	Additions int
	Deletions int
	Commits   int
	UpdatedAt time.Time
}

func NewDailyRecord(day time.Time, stats Stats, updatedAt time.Time) *DailyRecord {
	return &DailyRecord{
		Day:       DayOf(day),
		Additions: stats.Additions,
		Deletions: stats.Deletions,
		Commits:   stats.Commits,
		UpdatedAt: updatedAt.UTC(),
	}
}

func (r *DailyRecord) Net() int {
	return r.Additions - r.Deletions
}

func (r *DailyRecord) Stats() Stats {
	return Stats{
		Additions: r.Additions,
		Deletions: r.Deletions,
		Commits:   r.Commits,
	}
}

func (r *DailyRecord) DayText() string {
	return FormatDay(r.Day)
}
