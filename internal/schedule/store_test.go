package schedule

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athlemics/athlemics/internal/models"
	"github.com/athlemics/athlemics/internal/storage"
)

// fakeBackend records Save calls and serves a canned document.
type fakeBackend struct {
	mu    sync.Mutex
	doc   *storage.Document
	saves map[string]any
}

func newFakeBackend(doc *storage.Document) *fakeBackend {
	return &fakeBackend{doc: doc, saves: map[string]any{}}
}

func (f *fakeBackend) Load(ctx context.Context, profileID string) (*storage.Document, error) {
	if f.doc == nil {
		return nil, storage.ErrNotFound
	}
	return f.doc, nil
}

func (f *fakeBackend) Save(ctx context.Context, profileID, field string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves[field] = value
	return nil
}

func (f *fakeBackend) Close() error { return nil }

func (f *fakeBackend) saved(field string) (any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.saves[field]
	return v, ok
}

func memoryStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), nil, "", zerolog.Nop())
	require.NoError(t, err)
	return s
}

func tmplFor(title string) Template {
	return Template{Title: title, Start: "09:00", End: "10:00", Type: models.TypeStudy}
}

func baseDay() time.Time {
	return time.Date(2026, time.September, 5, 0, 0, 0, 0, time.Local)
}

func TestOpenLoadsDocument(t *testing.T) {
	doc := &storage.Document{
		Blocks:  []models.Block{{ID: "b1", Title: "Anatomy", Start: "09:00", End: "10:00", Date: "2026-09-05"}},
		Goals:   []models.Goal{{ID: "g1", Title: "Qualify for nationals"}},
		Profile: models.Profile{Name: "Maria"},
	}
	backend := newFakeBackend(doc)

	s, err := Open(context.Background(), backend, "maria", zerolog.Nop())
	require.NoError(t, err)

	got, ok := s.Block("b1")
	require.True(t, ok)
	assert.Equal(t, "Anatomy", got.Title)
	assert.Equal(t, "Maria", s.Profile().Name)
	assert.Len(t, s.Goals(false), 1)
}

func TestOpenSeedsMissingDocument(t *testing.T) {
	backend := newFakeBackend(nil)

	s, err := Open(context.Background(), backend, "maria", zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, s.ByDate("2026-09-05"))

	_, ok := backend.saved(storage.FieldProfile)
	assert.True(t, ok, "missing document should be seeded")
}

func TestAddSingleBlock(t *testing.T) {
	s := memoryStore(t)
	created := s.Add(tmplFor("Physio"), models.RepeatNone, baseDay())

	require.Len(t, created, 1)
	day := s.ByDate("2026-09-05")
	require.Len(t, day, 1)
	assert.Equal(t, "Physio", day[0].Title)
}

func TestAddRejectsInvalidTemplate(t *testing.T) {
	s := memoryStore(t)
	s.Add(tmplFor("seed"), models.RepeatNone, baseDay())

	cases := []Template{
		{Title: "", Start: "09:00", End: "10:00"},
		{Title: "x", Start: "", End: "10:00"},
		{Title: "x", Start: "09:00", End: ""},
		{Title: "x", Start: "10:00", End: "09:00"},
		{Title: "x", Start: "09:00", End: "09:00"},
	}
	for _, tmpl := range cases {
		assert.Nil(t, s.Add(tmpl, models.RepeatNone, baseDay()), "template %+v", tmpl)
	}
	assert.Len(t, s.ByDate("2026-09-05"), 1, "rejected adds must not change state")
}

func TestUpdateSingleInstanceOnly(t *testing.T) {
	s := memoryStore(t)
	created := s.Add(tmplFor("Team practice"), models.RepeatWeekly, baseDay())
	require.Len(t, created, 8)

	s.Update(created[0].ID, Template{Title: "Solo practice", Start: "08:00", End: "09:00", Type: models.TypeTrain})

	first, ok := s.Block(created[0].ID)
	require.True(t, ok)
	assert.Equal(t, "Solo practice", first.Title)
	assert.Equal(t, "08:00", first.Start)
	assert.Equal(t, created[0].RepeatID, first.RepeatID, "repeat link survives an edit")

	second, ok := s.Block(created[1].ID)
	require.True(t, ok)
	assert.Equal(t, "Team practice", second.Title, "edits never cascade through the series")
}

func TestUpdateInvalidTemplateIsNoOp(t *testing.T) {
	s := memoryStore(t)
	created := s.Add(tmplFor("Physio"), models.RepeatNone, baseDay())

	s.Update(created[0].ID, Template{Title: "", Start: "08:00", End: "09:00"})

	got, _ := s.Block(created[0].ID)
	assert.Equal(t, "Physio", got.Title)
}

func TestToggleCompleted(t *testing.T) {
	s := memoryStore(t)
	created := s.Add(tmplFor("Physio"), models.RepeatNone, baseDay())
	id := created[0].ID

	s.ToggleCompleted(id)
	got, _ := s.Block(id)
	assert.True(t, got.Completed)

	s.ToggleCompleted(id)
	got, _ = s.Block(id)
	assert.False(t, got.Completed)
}

func TestRemoveSingle(t *testing.T) {
	s := memoryStore(t)
	created := s.Add(tmplFor("Team practice"), models.RepeatWeekly, baseDay())

	s.Remove(created[0].ID)

	_, ok := s.Block(created[0].ID)
	assert.False(t, ok)
	_, ok = s.Block(created[1].ID)
	assert.True(t, ok, "other occurrences stay")
}

func TestRemoveAllInSeries(t *testing.T) {
	s := memoryStore(t)
	series := s.Add(tmplFor("Team practice"), models.RepeatWeekly, baseDay())
	other := s.Add(tmplFor("Physio"), models.RepeatNone, baseDay())

	s.RemoveAllInSeries(series[0].RepeatID)

	for _, b := range series {
		_, ok := s.Block(b.ID)
		assert.False(t, ok)
	}
	_, ok := s.Block(other[0].ID)
	assert.True(t, ok, "unrelated block survives")
}

func TestRemoveAllInSeriesEmptyIDIsNoOp(t *testing.T) {
	s := memoryStore(t)
	s.Add(tmplFor("Physio"), models.RepeatNone, baseDay())

	// Non-repeating blocks have an empty RepeatID; an empty argument must
	// not match them all.
	s.RemoveAllInSeries("")

	assert.Len(t, s.ByDate("2026-09-05"), 1)
}

func TestRemoveFromDateForwardSeries(t *testing.T) {
	s := memoryStore(t)
	series := s.Add(tmplFor("Team practice"), models.RepeatWeekly, baseDay())
	require.Len(t, series, 8)

	// Cut from the third occurrence: the first two stay.
	s.RemoveFromDateForward(series[2])

	for i, b := range series {
		_, ok := s.Block(b.ID)
		assert.Equal(t, i < 2, ok, "occurrence %d", i)
	}
}

func TestRemoveFromDateForwardTitleFallback(t *testing.T) {
	s := memoryStore(t)
	early := s.Add(tmplFor("Physio"), models.RepeatNone, baseDay())
	mid := s.Add(tmplFor("Physio"), models.RepeatNone, baseDay().AddDate(0, 0, 3))
	late := s.Add(tmplFor("Physio"), models.RepeatNone, baseDay().AddDate(0, 0, 7))
	other := s.Add(tmplFor("Stretching"), models.RepeatNone, baseDay().AddDate(0, 0, 7))

	s.RemoveFromDateForward(mid[0])

	_, ok := s.Block(early[0].ID)
	assert.True(t, ok, "earlier same-title block stays")
	_, ok = s.Block(mid[0].ID)
	assert.False(t, ok)
	_, ok = s.Block(late[0].ID)
	assert.False(t, ok, "later same-title block goes")
	_, ok = s.Block(other[0].ID)
	assert.True(t, ok, "different title is untouched")
}

func TestRemoveFromDateForwardSeriesIgnoresTitle(t *testing.T) {
	s := memoryStore(t)
	series := s.Add(tmplFor("Practice"), models.RepeatWeekly, baseDay())
	sameTitle := s.Add(tmplFor("Practice"), models.RepeatNone, baseDay().AddDate(0, 0, 2))

	s.RemoveFromDateForward(series[0])

	_, ok := s.Block(sameTitle[0].ID)
	assert.True(t, ok, "repeat id match must not fall back to title")
}

func TestFindByPrefix(t *testing.T) {
	s := memoryStore(t)
	created := s.Add(tmplFor("Physio"), models.RepeatNone, baseDay())
	id := created[0].ID

	got, ok := s.FindByPrefix(id[:8])
	require.True(t, ok)
	assert.Equal(t, id, got.ID)

	_, ok = s.FindByPrefix("")
	assert.False(t, ok)

	s.Add(tmplFor("Other"), models.RepeatNone, baseDay())
	_, ok = s.FindByPrefix(id)
	assert.True(t, ok, "full id always resolves")

	_, ok = s.FindByPrefix("definitely-not-an-id")
	assert.False(t, ok)
}

func TestByDateSorted(t *testing.T) {
	s := memoryStore(t)
	s.Add(Template{Title: "Late", Start: "15:00", End: "16:00", Type: models.TypeStudy}, models.RepeatNone, baseDay())
	s.Add(Template{Title: "Early", Start: "08:00", End: "09:00", Type: models.TypeStudy}, models.RepeatNone, baseDay())
	s.Add(Template{Title: "Elsewhere", Start: "08:00", End: "09:00", Type: models.TypeStudy}, models.RepeatNone, baseDay().AddDate(0, 0, 1))

	day := s.ByDate("2026-09-05")
	require.Len(t, day, 2)
	assert.Equal(t, "Early", day[0].Title)
	assert.Equal(t, "Late", day[1].Title)
}

func TestUpcoming(t *testing.T) {
	s := memoryStore(t)
	s.Add(Template{Title: "Past", Start: "08:00", End: "09:00", Type: models.TypeStudy}, models.RepeatNone, baseDay().AddDate(0, 0, -1))
	s.Add(Template{Title: "Soon", Start: "10:00", End: "11:00", Type: models.TypeStudy}, models.RepeatNone, baseDay())
	s.Add(Template{Title: "Later", Start: "09:00", End: "10:00", Type: models.TypeStudy}, models.RepeatNone, baseDay().AddDate(0, 0, 2))
	s.Add(Template{Title: "Latest", Start: "09:00", End: "10:00", Type: models.TypeStudy}, models.RepeatNone, baseDay().AddDate(0, 0, 5))

	from := baseDay().Add(9 * time.Hour)
	got := s.Upcoming(from, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "Soon", got[0].Title)
	assert.Equal(t, "Later", got[1].Title)

	all := s.Upcoming(from, 0)
	assert.Len(t, all, 3, "zero limit returns everything")
}

func TestTasksToday(t *testing.T) {
	s := memoryStore(t)
	now := baseDay().Add(12 * time.Hour) // noon

	s.Add(Template{Title: "Morning task", Start: "09:00", End: "09:30", Type: models.TypeTask}, models.RepeatNone, baseDay())
	s.Add(Template{Title: "Afternoon task", Start: "14:00", End: "14:30", Type: models.TypeTask}, models.RepeatNone, baseDay())
	s.Add(Template{Title: "Standup", Start: "16:00", End: "16:15", Type: models.TypeMeeting}, models.RepeatNone, baseDay())
	s.Add(Template{Title: "Lecture", Start: "15:00", End: "16:00", Type: models.TypeClass}, models.RepeatNone, baseDay())
	s.Add(Template{Title: "Tomorrow task", Start: "14:00", End: "14:30", Type: models.TypeTask}, models.RepeatNone, baseDay().AddDate(0, 0, 1))

	got := s.TasksToday(now)
	require.Len(t, got, 2)
	assert.Equal(t, "Afternoon task", got[0].Title)
	assert.Equal(t, "Standup", got[1].Title)
}

func TestGoalLifecycle(t *testing.T) {
	s := memoryStore(t)

	assert.Nil(t, s.AddGoal("", "no title"))

	goal := s.AddGoal("Qualify for nationals", "sub 2:05")
	require.NotNil(t, goal)
	assert.False(t, goal.Done())

	open := s.Goals(false)
	require.Len(t, open, 1)
	assert.Empty(t, s.Goals(true))

	s.ToggleGoalCompleted(goal.ID)
	assert.Empty(t, s.Goals(false))
	require.Len(t, s.Goals(true), 1)
	assert.True(t, s.Goals(true)[0].Done())

	s.ToggleGoalCompleted(goal.ID)
	assert.Len(t, s.Goals(false), 1)

	s.UpdateGoal(goal.ID, "Qualify for nationals", "sub 2:03")
	assert.Equal(t, "sub 2:03", s.Goals(false)[0].Description)

	s.RemoveGoal(goal.ID)
	assert.Empty(t, s.Goals(false))
}

func TestHealthRecordUpsert(t *testing.T) {
	s := memoryStore(t)

	_, ok := s.HealthRecord("2026-09-05")
	assert.False(t, ok)

	s.SetHealthRecord(models.HealthRecord{Date: "2026-09-05", Sleep: 7.5, Energy: 8, Soreness: 3})
	rec, ok := s.HealthRecord("2026-09-05")
	require.True(t, ok)
	assert.Equal(t, 7.5, rec.Sleep)

	s.SetHealthRecord(models.HealthRecord{Date: "2026-09-05", Sleep: 6, Energy: 5, Soreness: 6})
	rec, ok = s.HealthRecord("2026-09-05")
	require.True(t, ok)
	assert.Equal(t, 6.0, rec.Sleep, "same date replaces, not appends")

	// Dateless records are dropped.
	s.SetHealthRecord(models.HealthRecord{Sleep: 8})
	_, ok = s.HealthRecord("")
	assert.False(t, ok)
}

func TestPersistenceFlush(t *testing.T) {
	backend := newFakeBackend(&storage.Document{})

	s, err := Open(context.Background(), backend, "maria", zerolog.Nop())
	require.NoError(t, err)

	s.Add(tmplFor("Physio"), models.RepeatNone, baseDay())
	s.Flush()

	v, ok := backend.saved(storage.FieldBlocks)
	require.True(t, ok)
	blocks, ok := v.([]models.Block)
	require.True(t, ok)
	require.Len(t, blocks, 1)
	assert.Equal(t, "Physio", blocks[0].Title)
}

// gatedBackend blocks its first Save until the test releases it, standing
// in for a slow write on a contended backend.
type gatedBackend struct {
	*fakeBackend
	gate chan struct{}
	once sync.Once
}

func (g *gatedBackend) Save(ctx context.Context, profileID, field string, value any) error {
	g.once.Do(func() { <-g.gate })
	return g.fakeBackend.Save(ctx, profileID, field, value)
}

func TestSlowSaveNeverOvertakesLaterSnapshot(t *testing.T) {
	backend := &gatedBackend{
		fakeBackend: newFakeBackend(&storage.Document{}),
		gate:        make(chan struct{}),
	}

	s, err := Open(context.Background(), backend, "maria", zerolog.Nop())
	require.NoError(t, err)

	// The first save stalls while a second mutation lands behind it.
	s.Add(tmplFor("A"), models.RepeatNone, baseDay())
	s.Add(tmplFor("B"), models.RepeatNone, baseDay())
	close(backend.gate)
	s.Flush()

	v, ok := backend.saved(storage.FieldBlocks)
	require.True(t, ok)
	blocks, ok := v.([]models.Block)
	require.True(t, ok)
	require.Len(t, blocks, 2, "backend must end up with the latest snapshot")

	titles := map[string]bool{}
	for _, b := range blocks {
		titles[b.Title] = true
	}
	assert.True(t, titles["A"])
	assert.True(t, titles["B"])
}

func TestMemoryOnlyStoreNeverPersists(t *testing.T) {
	backend := newFakeBackend(&storage.Document{})

	// Empty profile id disables storage even with a backend wired.
	s, err := Open(context.Background(), backend, "", zerolog.Nop())
	require.NoError(t, err)

	s.Add(tmplFor("Physio"), models.RepeatNone, baseDay())
	s.Flush()

	_, ok := backend.saved(storage.FieldBlocks)
	assert.False(t, ok)
}
