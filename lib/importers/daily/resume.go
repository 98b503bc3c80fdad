package daily

import (
	"time"

	"github.com/pkg/errors"

	"github.com/pescuma/dailyloc/lib/model"
	"github.com/pescuma/dailyloc/lib/storages"
)

// ResumeDay returns the first day that still needs to be processed: the day
// after the last stored one or, when nothing is stored yet, the start date.
// startDate is only called in the second case.
func ResumeDay(storage storages.Storage, startDate func() (time.Time, error)) (time.Time, error) {
	last, err := storage.LoadLastDay()
	if err != nil {
		return time.Time{}, errors.Wrap(err, "error loading last processed day")
	}

	if last != nil {
		return model.NextDay(*last), nil
	}

	if startDate == nil {
		return time.Time{}, errors.New("no days processed yet and no start date configured")
	}

	start, err := startDate()
	if err != nil {
		return time.Time{}, errors.Wrap(err, "no days processed yet and start date could not be loaded")
	}

	return model.DayOf(start), nil
}
