package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athlemics/athlemics/internal/models"
)

var recurTmpl = Template{
	Title: "Morning swim",
	Start: "06:30",
	End:   "07:30",
	Type:  models.TypeTrain,
}

func TestExpandNone(t *testing.T) {
	base := time.Date(2026, time.September, 5, 15, 0, 0, 0, time.Local)
	out := Expand(recurTmpl, models.RepeatNone, base)

	require.Len(t, out, 1)
	b := out[0]
	assert.NotEmpty(t, b.ID)
	assert.Empty(t, b.RepeatID)
	assert.Equal(t, "2026-09-05", b.Date)
	assert.Equal(t, "Morning swim", b.Title)
	assert.Equal(t, "06:30", b.Start)
	assert.Equal(t, "07:30", b.End)
	assert.Equal(t, models.TypeTrain, b.Type)
	assert.False(t, b.Completed)
}

func TestExpandEveryDay(t *testing.T) {
	base := time.Date(2026, time.September, 5, 0, 0, 0, 0, time.Local)
	out := Expand(recurTmpl, models.RepeatEveryDay, base)

	require.Len(t, out, 30)
	for i, b := range out {
		want := FormatDateKey(base.AddDate(0, 0, i))
		assert.Equal(t, want, b.Date)
	}
}

func TestExpandWeekdays(t *testing.T) {
	// 2026-09-07 is a Monday; the 30-day window ends 2026-10-06 and
	// contains 22 weekdays.
	base := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.Local)
	out := Expand(recurTmpl, models.RepeatWeekdays, base)

	require.Len(t, out, 22)
	assert.Equal(t, "2026-09-07", out[0].Date)
	last := out[len(out)-1].Date
	assert.LessOrEqual(t, last, "2026-10-06")

	for _, b := range out {
		day, err := ParseDateKey(b.Date)
		require.NoError(t, err)
		wd := day.Weekday()
		assert.NotEqual(t, time.Saturday, wd, "date %s", b.Date)
		assert.NotEqual(t, time.Sunday, wd, "date %s", b.Date)
	}
}

func TestExpandWeekdaysFromSaturday(t *testing.T) {
	// A weekend base is not itself an occurrence; the first one is the
	// following Monday.
	base := time.Date(2026, time.September, 5, 0, 0, 0, 0, time.Local)
	require.Equal(t, time.Saturday, base.Weekday())

	out := Expand(recurTmpl, models.RepeatWeekdays, base)
	require.NotEmpty(t, out)
	assert.Equal(t, "2026-09-07", out[0].Date)
}

func TestExpandWeekly(t *testing.T) {
	base := time.Date(2026, time.September, 5, 0, 0, 0, 0, time.Local)
	out := Expand(recurTmpl, models.RepeatWeekly, base)

	require.Len(t, out, 8)
	for i, b := range out {
		want := FormatDateKey(base.AddDate(0, 0, 7*i))
		assert.Equal(t, want, b.Date)
	}
}

func TestExpandMonthly(t *testing.T) {
	base := time.Date(2026, time.September, 15, 0, 0, 0, 0, time.Local)
	out := Expand(recurTmpl, models.RepeatMonthly, base)

	require.Len(t, out, 6)
	for i, b := range out {
		want := FormatDateKey(base.AddDate(0, i, 0))
		assert.Equal(t, want, b.Date)
	}
}

func TestExpandMonthlyOn31stSkipsShortMonths(t *testing.T) {
	// Months without a 31st contribute no occurrence; the series still
	// reaches its full count on months that have one.
	base := time.Date(2026, time.January, 31, 0, 0, 0, 0, time.Local)
	out := Expand(recurTmpl, models.RepeatMonthly, base)

	require.Len(t, out, 6)
	for _, b := range out {
		day, err := ParseDateKey(b.Date)
		require.NoError(t, err)
		assert.Equal(t, 31, day.Day(), "date %s", b.Date)
	}
	assert.Equal(t, "2026-01-31", out[0].Date)
	assert.Equal(t, "2026-03-31", out[1].Date)
}

func TestExpandYearly(t *testing.T) {
	base := time.Date(2026, time.September, 5, 0, 0, 0, 0, time.Local)
	out := Expand(recurTmpl, models.RepeatYearly, base)

	require.Len(t, out, 3)
	assert.Equal(t, "2026-09-05", out[0].Date)
	assert.Equal(t, "2027-09-05", out[1].Date)
	assert.Equal(t, "2028-09-05", out[2].Date)
}

func TestExpandSharesRepeatID(t *testing.T) {
	base := time.Date(2026, time.September, 5, 0, 0, 0, 0, time.Local)
	out := Expand(recurTmpl, models.RepeatWeekly, base)

	require.NotEmpty(t, out)
	repeatID := out[0].RepeatID
	assert.NotEmpty(t, repeatID)

	ids := map[string]bool{}
	for _, b := range out {
		assert.Equal(t, repeatID, b.RepeatID)
		assert.False(t, ids[b.ID], "duplicate block id %s", b.ID)
		ids[b.ID] = true
	}
}

func TestExpandSeriesGetDistinctRepeatIDs(t *testing.T) {
	base := time.Date(2026, time.September, 5, 0, 0, 0, 0, time.Local)
	first := Expand(recurTmpl, models.RepeatWeekly, base)
	second := Expand(recurTmpl, models.RepeatWeekly, base)
	assert.NotEqual(t, first[0].RepeatID, second[0].RepeatID)
}
