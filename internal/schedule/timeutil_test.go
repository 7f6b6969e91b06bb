package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinutes(t *testing.T) {
	assert.Equal(t, 0, ToMinutes("00:00"))
	assert.Equal(t, 570, ToMinutes("09:30"))
	assert.Equal(t, 1439, ToMinutes("23:59"))
}

func TestToMinutesMalformed(t *testing.T) {
	for _, in := range []string{"", "nope", "9", "24:00", "12:60", "-1:30", "12:-5"} {
		assert.Equal(t, 0, ToMinutes(in), "input %q", in)
	}
}

func TestFromMinutes(t *testing.T) {
	assert.Equal(t, "00:00", FromMinutes(0))
	assert.Equal(t, "09:05", FromMinutes(545))
	assert.Equal(t, "23:59", FromMinutes(1439))
	assert.Equal(t, "00:00", FromMinutes(-10))
}

func TestFromMinutesRoundTrip(t *testing.T) {
	for _, m := range []int{0, 1, 59, 60, 719, 720, 1439} {
		assert.Equal(t, m, ToMinutes(FromMinutes(m)))
	}
}

func TestValidClock(t *testing.T) {
	assert.True(t, ValidClock("00:00"))
	assert.True(t, ValidClock("23:59"))
	assert.True(t, ValidClock("9:30"))
	assert.False(t, ValidClock(""))
	assert.False(t, ValidClock("24:00"))
	assert.False(t, ValidClock("12:60"))
	assert.False(t, ValidClock("noon"))
}

func TestFormatDateKeyUsesLocalComponents(t *testing.T) {
	d := time.Date(2026, time.September, 5, 23, 45, 0, 0, time.Local)
	assert.Equal(t, "2026-09-05", FormatDateKey(d))

	// Single digit month and day get zero padded.
	d = time.Date(2026, time.January, 2, 0, 0, 0, 0, time.Local)
	assert.Equal(t, "2026-01-02", FormatDateKey(d))
}

func TestParseDateKey(t *testing.T) {
	d, err := ParseDateKey("2026-09-05")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, time.September, d.Month())
	assert.Equal(t, 5, d.Day())
	assert.Equal(t, time.Local, d.Location())

	_, err = ParseDateKey("not-a-date")
	assert.Error(t, err)
}

func TestDateKeyRoundTrip(t *testing.T) {
	d, err := ParseDateKey("2026-02-28")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-28", FormatDateKey(d))
}

func TestBlockTime(t *testing.T) {
	at, err := BlockTime("2026-09-05", "14:30")
	require.NoError(t, err)
	assert.Equal(t, 14, at.Hour())
	assert.Equal(t, 30, at.Minute())
	assert.Equal(t, "2026-09-05", FormatDateKey(at))

	_, err = BlockTime("bogus", "14:30")
	assert.Error(t, err)
}
