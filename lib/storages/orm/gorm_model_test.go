package orm

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pescuma/dailyloc/lib/model"
)

func TestNewSqlDailyLoc(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.Local)
	updated := time.Date(2024, 1, 3, 10, 30, 0, 0, time.FixedZone("BRT", -3*60*60))

	s := newSqlDailyLoc(model.NewDailyRecord(day, model.Stats{Additions: 3, Deletions: 7, Commits: 2}, updated))

	assert.True(t, reflect.DeepEqual(&sqlDailyLoc{
		Date:      "2024-01-02",
		Additions: 3,
		Deletions: 7,
		Commits:   2,
		Net:       -4,
		UpdatedAt: "2024-01-03T13:30:00Z",
	}, s))
}

func TestSqlDailyLocToModel(t *testing.T) {
	t.Parallel()

	r, err := (&sqlDailyLoc{
		Date:      "2024-01-02",
		Additions: 3,
		Deletions: 7,
		Net:       -4,
		UpdatedAt: "2024-01-03T13:30:00Z",
	}).ToModel()
	require.NoError(t, err)

	assert.Equal(t, "2024-01-02", r.DayText())
	assert.Equal(t, -4, r.Net())
	assert.Equal(t, 0, r.Commits)
	assert.True(t, r.UpdatedAt.Equal(time.Date(2024, 1, 3, 13, 30, 0, 0, time.UTC)))
}

func TestSqlDailyLocToModelIgnoresInvalidUpdatedAt(t *testing.T) {
	t.Parallel()

	r, err := (&sqlDailyLoc{Date: "2024-01-02", UpdatedAt: "2024-01-03 13:30:00.123456"}).ToModel()
	require.NoError(t, err)

	assert.True(t, r.UpdatedAt.IsZero())
}

func TestSqlDailyLocToModelInvalidDate(t *testing.T) {
	t.Parallel()

	_, err := (&sqlDailyLoc{Date: "02/01/2024"}).ToModel()
	assert.Error(t, err)
}
