package orm

import (
	"time"

	"github.com/pescuma/dailyloc/lib/model"
)

type sqlDailyLoc struct {
	Date      string `gorm:"primaryKey;type:text"`
	Additions int    `gorm:"not null"`
	Deletions int    `gorm:"not null"`
	Commits   int    `gorm:"not null;default:0"`
	Net       int    `gorm:"not null"`
	UpdatedAt string `gorm:"type:text;not null;autoUpdateTime:false"`
}

func (s *sqlDailyLoc) TableName() string {
	return "daily_loc"
}

func newSqlDailyLoc(r *model.DailyRecord) *sqlDailyLoc {
	return &sqlDailyLoc{
		Date:      r.DayText(),
		Additions: r.Additions,
		Deletions: r.Deletions,
		Commits:   r.Commits,
		Net:       r.Net(),
		UpdatedAt: r.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func (s *sqlDailyLoc) ToModel() (*model.DailyRecord, error) {
	day, err := model.ParseDay(s.Date)
	if err != nil {
		return nil, err
	}

	result := &model.DailyRecord{
		Day:       day,
		Additions: s.Additions,
		Deletions: s.Deletions,
		Commits:   s.Commits,
	}

	// Only used for auditing, so rows written by other tools don't break loading
	if updatedAt, err := time.Parse(time.RFC3339Nano, s.UpdatedAt); err == nil {
		result.UpdatedAt = updatedAt
	}

	return result, nil
}
