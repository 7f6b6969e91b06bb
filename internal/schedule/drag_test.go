package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athlemics/athlemics/internal/models"
)

// pixels converts a minute distance into the vertical pixel travel that
// produces it, so tests can speak in minutes.
func pixels(minutes float64) float64 {
	return minutes * PixelsPerMinute
}

func dragStore(t *testing.T, start, end string) (*Store, string) {
	t.Helper()
	s, err := Open(context.Background(), nil, "", zerolog.Nop())
	require.NoError(t, err)
	created := s.Add(
		Template{Title: "Physio", Start: start, End: end, Type: models.TypeTrain},
		models.RepeatNone,
		time.Date(2026, time.September, 5, 0, 0, 0, 0, time.Local),
	)
	require.Len(t, created, 1)
	return s, created[0].ID
}

func TestPixelsPerMinuteRatio(t *testing.T) {
	// One rendered hour is HourHeight plus HourGap pixels tall.
	assert.InDelta(t, float64(HourHeight+HourGap)/60, PixelsPerMinute, 1e-9)
}

func TestDraggerIdleByDefault(t *testing.T) {
	s, _ := dragStore(t, "09:00", "10:00")
	d := NewDragger(s)
	assert.False(t, d.Dragging())
	assert.Empty(t, d.BlockID())
	assert.Empty(t, d.End())
}

func TestBeginUnknownBlock(t *testing.T) {
	s, _ := dragStore(t, "09:00", "10:00")
	d := NewDragger(s)
	assert.False(t, d.Begin("missing", 100))
	assert.False(t, d.Dragging())
}

func TestBeginDoesNotMutate(t *testing.T) {
	s, id := dragStore(t, "09:00", "10:00")
	d := NewDragger(s)

	require.True(t, d.Begin(id, 100))
	assert.True(t, d.Dragging())
	assert.Equal(t, id, d.BlockID())

	b, _ := s.Block(id)
	assert.Equal(t, "09:00", b.Start)
	assert.Equal(t, "10:00", b.End)
}

func TestMoveSnapsToQuarterHour(t *testing.T) {
	cases := []struct {
		travelMinutes float64
		wantStart     string
		wantEnd       string
	}{
		{0, "09:00", "10:00"},
		{7, "09:00", "10:00"},   // rounds down to zero
		{8, "09:15", "10:15"},   // rounds up to one snap
		{15, "09:15", "10:15"},
		{22, "09:15", "10:15"},  // 22/15 rounds to 1
		{23, "09:30", "10:30"},  // 23/15 rounds to 2
		{7.5, "09:15", "10:15"}, // exact half rounds to the later slot
		{-7.5, "09:00", "10:00"},
		{-15, "08:45", "09:45"},
		{60, "10:00", "11:00"},
	}
	for _, tc := range cases {
		s, id := dragStore(t, "09:00", "10:00")
		d := NewDragger(s)
		require.True(t, d.Begin(id, 0))

		d.Move(pixels(tc.travelMinutes))

		b, _ := s.Block(id)
		assert.Equal(t, tc.wantStart, b.Start, "travel %v min", tc.travelMinutes)
		assert.Equal(t, tc.wantEnd, b.End, "travel %v min", tc.travelMinutes)
	}
}

func TestMoveClampsAtMidnight(t *testing.T) {
	s, id := dragStore(t, "00:30", "01:30")
	d := NewDragger(s)
	require.True(t, d.Begin(id, 0))

	d.Move(pixels(-120))

	b, _ := s.Block(id)
	assert.Equal(t, "00:00", b.Start)
	assert.Equal(t, "00:30", b.End, "duration shrinks when start clamps")
}

func TestMoveEnforcesMinimumDuration(t *testing.T) {
	s, id := dragStore(t, "00:00", "00:30")
	d := NewDragger(s)
	require.True(t, d.Begin(id, 0))

	// Dragging far above the top clamps start to 00:00 and would push the
	// end negative; the minimum duration floor kicks in.
	d.Move(pixels(-60))

	b, _ := s.Block(id)
	assert.Equal(t, "00:00", b.Start)
	assert.Equal(t, FromMinutes(MinDuration), b.End)
}

func TestMovePreviewsOverwriteEachOther(t *testing.T) {
	s, id := dragStore(t, "09:00", "10:00")
	d := NewDragger(s)
	require.True(t, d.Begin(id, 0))

	d.Move(pixels(30))
	d.Move(pixels(60))
	d.Move(pixels(15))

	// Each move recomputes from the original position, not the previous
	// preview, so jitter never accumulates.
	b, _ := s.Block(id)
	assert.Equal(t, "09:15", b.Start)
	assert.Equal(t, "10:15", b.End)
}

func TestMoveWhileIdleIsNoOp(t *testing.T) {
	s, id := dragStore(t, "09:00", "10:00")
	d := NewDragger(s)

	d.Move(pixels(60))

	b, _ := s.Block(id)
	assert.Equal(t, "09:00", b.Start)
}

func TestEndKeepsLastPreview(t *testing.T) {
	s, id := dragStore(t, "09:00", "10:00")
	d := NewDragger(s)
	require.True(t, d.Begin(id, 0))
	d.Move(pixels(30))

	ended := d.End()
	assert.Equal(t, id, ended)
	assert.False(t, d.Dragging())
	assert.Empty(t, d.BlockID())

	b, _ := s.Block(id)
	assert.Equal(t, "09:30", b.Start)
	assert.Equal(t, "10:30", b.End)
}

func TestDragAgainAfterEnd(t *testing.T) {
	s, id := dragStore(t, "09:00", "10:00")
	d := NewDragger(s)

	require.True(t, d.Begin(id, 0))
	d.Move(pixels(15))
	d.End()

	// A second drag captures the moved position as its new origin.
	require.True(t, d.Begin(id, 0))
	d.Move(pixels(15))
	d.End()

	b, _ := s.Block(id)
	assert.Equal(t, "09:30", b.Start)
	assert.Equal(t, "10:30", b.End)
}
