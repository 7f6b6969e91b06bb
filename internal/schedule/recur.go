package schedule

import (
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"github.com/athlemics/athlemics/internal/models"
)

// Template carries the user-entered fields of a new or edited block,
// before ids and dates are assigned.
type Template struct {
	Title string
	Desc  string
	Start string // "HH:MM"
	End   string // "HH:MM"
	Type  models.BlockType
}

// Recurrence horizons. These are fixed, not user-configurable: repeating
// blocks are materialised up front as independent occurrences rather than
// kept as open-ended rules.
const (
	everyDayCount  = 30
	weekdaysWindow = 30 // days
	weeklyCount    = 8
	monthlyCount   = 6
	yearlyCount    = 3
)

// Expand materialises a block template into its concrete dated occurrences
// under the given repeat policy, starting at baseDate. Every occurrence
// gets a fresh id; occurrences of a non-none policy share one RepeatID,
// which is the only thing tying them together afterwards.
func Expand(tmpl Template, policy models.RepeatPolicy, baseDate time.Time) []models.Block {
	base := time.Date(baseDate.Year(), baseDate.Month(), baseDate.Day(), 0, 0, 0, 0, time.Local)

	repeatID := ""
	if policy != models.RepeatNone {
		repeatID = uuid.NewString()
	}

	blocks := make([]models.Block, 0, everyDayCount)
	for _, day := range occurrenceDates(policy, base) {
		blocks = append(blocks, models.Block{
			ID:       uuid.NewString(),
			Title:    tmpl.Title,
			Desc:     tmpl.Desc,
			Start:    tmpl.Start,
			End:      tmpl.End,
			Type:     tmpl.Type,
			Date:     FormatDateKey(day),
			RepeatID: repeatID,
		})
	}
	return blocks
}

func occurrenceDates(policy models.RepeatPolicy, base time.Time) []time.Time {
	var opt rrule.ROption
	switch policy {
	case models.RepeatEveryDay:
		opt = rrule.ROption{Freq: rrule.DAILY, Count: everyDayCount, Dtstart: base}
	case models.RepeatWeekdays:
		opt = rrule.ROption{
			Freq:      rrule.DAILY,
			Dtstart:   base,
			Until:     base.AddDate(0, 0, weekdaysWindow-1),
			Byweekday: []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR},
		}
	case models.RepeatWeekly:
		opt = rrule.ROption{Freq: rrule.WEEKLY, Count: weeklyCount, Dtstart: base}
	case models.RepeatMonthly:
		opt = rrule.ROption{Freq: rrule.MONTHLY, Count: monthlyCount, Dtstart: base}
	case models.RepeatYearly:
		opt = rrule.ROption{Freq: rrule.YEARLY, Count: yearlyCount, Dtstart: base}
	default:
		return []time.Time{base}
	}

	r, err := rrule.NewRRule(opt)
	if err != nil {
		// The options above are built from constants; an error here means
		// a programming mistake, and a single occurrence is the safe
		// degradation.
		return []time.Time{base}
	}
	return r.All()
}
