package storages

import (
	"time"

	"github.com/pescuma/dailyloc/lib/model"
)

type Storage interface {
	// LoadLastDay returns the most recent stored day, or nil when there are no records.
	LoadLastDay() (*time.Time, error)

	// LoadDailyRecords returns the records between from and to (inclusive, both optional) ordered by day.
	LoadDailyRecords(from, to *time.Time) ([]*model.DailyRecord, error)

	// WriteDailyRecord replaces any existing record for the same day, in its own transaction.
	WriteDailyRecord(record *model.DailyRecord) error

	// DeleteDailyRecordsFrom removes the records for day and every day after it.
	DeleteDailyRecordsFrom(day time.Time) (int64, error)

	Close() error
}

type Factory = func(path string) (Storage, error)
