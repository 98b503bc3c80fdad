package model

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	t.Parallel()

	day, err := ParseDay("2024-01-05")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), day)
	assert.Equal(t, "2024-01-05", FormatDay(day))
}

func TestParseDayInvalid(t *testing.T) {
	t.Parallel()

	_, err := ParseDay("05/01/2024")

	assert.Error(t, err)
}

func TestNextDayCrossesMonthAndYear(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2024-02-01", FormatDay(NextDay(time.Date(2024, 1, 31, 15, 0, 0, 0, time.Local))))
	assert.Equal(t, "2025-01-01", FormatDay(NextDay(time.Date(2024, 12, 31, 0, 0, 0, 0, time.Local))))
	assert.Equal(t, "2024-02-29", FormatDay(NextDay(time.Date(2024, 2, 28, 0, 0, 0, 0, time.Local))))
}

func TestDayOfUsesTheCalendarDayOfItsLocation(t *testing.T) {
	t.Parallel()

	tokyo := time.FixedZone("JST", 9*60*60)

	assert.Equal(t, "2024-01-02", FormatDay(DayOf(time.Date(2024, 1, 2, 1, 0, 0, 0, tokyo))))
	assert.Equal(t, time.UTC, DayOf(time.Date(2024, 1, 2, 1, 0, 0, 0, tokyo)).Location())
}

// 2018-11-04 started at 01:00 in Sao Paulo: local midnight of that day does not exist.
func TestNextDayAcrossDSTGapAtMidnight(t *testing.T) {
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	previous := time.Local
	time.Local = saoPaulo
	defer func() { time.Local = previous }()

	var days []string
	d := DayOf(time.Date(2018, 11, 3, 0, 0, 0, 0, time.Local))
	for i := 0; i < 3; i++ {
		days = append(days, FormatDay(d))
		d = NextDay(d)
	}

	assert.Equal(t, []string{"2018-11-03", "2018-11-04", "2018-11-05"}, days)

	gap := time.Date(2018, 11, 4, 12, 0, 0, 0, time.Local)
	assert.Equal(t, "2018-11-04", FormatDay(DayOf(gap)))
	assert.Equal(t, "2018-11-05", FormatDay(NextDay(DayOf(gap))))
}

func TestDailyRecordNet(t *testing.T) {
	t.Parallel()

	r := NewDailyRecord(time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local), Stats{Additions: 3, Deletions: 10, Commits: 1}, time.Now())

	assert.Equal(t, -7, r.Net())
	assert.Equal(t, "2024-01-01", r.DayText())
	assert.Equal(t, time.UTC, r.UpdatedAt.Location())
}

func TestStatsAdd(t *testing.T) {
	t.Parallel()

	s := Stats{}
	s.Add(Stats{Additions: 1, Deletions: 2, Commits: 3})
	s.Add(Stats{Additions: 10, Deletions: 20})

	assert.Equal(t, Stats{Additions: 11, Deletions: 22, Commits: 3}, s)
	assert.Equal(t, -11, s.Net())
	assert.False(t, s.IsEmpty())
	assert.True(t, Stats{}.IsEmpty())
}
