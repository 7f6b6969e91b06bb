package schedule

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/athlemics/athlemics/internal/models"
	"github.com/athlemics/athlemics/internal/storage"
)

// Store is the authoritative in-memory collection of blocks, goals and
// wellness data for the signed-in profile. Every mutation updates memory
// synchronously, then queues the touched document field for the backend
// without blocking: reads always see the latest in-memory state
// regardless of outstanding persistence I/O, and a failed write is logged
// but never surfaced — the next successful write carries the latest state.
//
// All other components observe derived views (ByDate, Upcoming, ...)
// recomputed from the current collection; nothing holds an independent
// authoritative copy.
type Store struct {
	mu        sync.Mutex
	backend   storage.Backend
	profileID string
	log       zerolog.Logger

	blocks  []models.Block
	goals   []models.Goal
	profile models.Profile
	health  []models.HealthRecord

	// Pending snapshots per document field, drained by a single worker
	// goroutine so saves never race each other: a newer snapshot replaces
	// a queued older one, and an in-flight save can never land after one
	// taken later.
	saveMu  sync.Mutex
	wg      sync.WaitGroup
	pending map[string]any
	saving  bool
}

// Open loads the profile's document and returns a ready store. A missing
// document initialises empty collections and seeds an empty document in
// the backend. An empty profileID yields a memory-only store: without a
// signed-in identity no storage operation runs at all.
func Open(ctx context.Context, backend storage.Backend, profileID string, log zerolog.Logger) (*Store, error) {
	s := &Store{backend: backend, profileID: profileID, log: log}
	if backend == nil || profileID == "" {
		return s, nil
	}

	doc, err := backend.Load(ctx, profileID)
	if errors.Is(err, storage.ErrNotFound) {
		if saveErr := backend.Save(ctx, profileID, storage.FieldProfile, models.Profile{}); saveErr != nil {
			log.Warn().Err(saveErr).Msg("could not seed empty document")
		}
		return s, nil
	}
	if err != nil {
		return nil, err
	}

	s.blocks = doc.Blocks
	s.goals = doc.Goals
	s.profile = doc.Profile
	s.health = doc.HealthRecords
	return s, nil
}

// ---------------------------------------------------------------------------
// Block operations

// Add expands the template under the repeat policy and appends every
// resulting occurrence. An empty title, start or end, or a non-positive
// duration, silently rejects the whole operation: prior state stays
// untouched and nil is returned.
func (s *Store) Add(tmpl Template, policy models.RepeatPolicy, baseDate time.Time) []models.Block {
	if !validTemplate(tmpl) {
		return nil
	}

	created := Expand(tmpl, policy, baseDate)

	s.mu.Lock()
	s.blocks = append(s.blocks, created...)
	s.mu.Unlock()

	s.persistBlocks()
	return created
}

// Update replaces the mutable fields of the single matching block. Other
// blocks are never touched, even when they share a RepeatID: edits are
// always single-instance. An unknown id, like an invalid template, is a
// silent no-op.
func (s *Store) Update(id string, tmpl Template) {
	if !validTemplate(tmpl) {
		return
	}

	s.mu.Lock()
	found := false
	for i := range s.blocks {
		if s.blocks[i].ID == id {
			s.blocks[i].Title = tmpl.Title
			s.blocks[i].Desc = tmpl.Desc
			s.blocks[i].Start = tmpl.Start
			s.blocks[i].End = tmpl.End
			s.blocks[i].Type = tmpl.Type
			found = true
			break
		}
	}
	s.mu.Unlock()

	if found {
		s.persistBlocks()
	}
}

// Reschedule moves one block to a new start/end, keeping everything else.
// Used by the drag controller for its live preview; each call overwrites
// the previous preview, there is no separate commit step.
func (s *Store) Reschedule(id, start, end string) {
	s.mu.Lock()
	found := false
	for i := range s.blocks {
		if s.blocks[i].ID == id {
			s.blocks[i].Start = start
			s.blocks[i].End = end
			found = true
			break
		}
	}
	s.mu.Unlock()

	if found {
		s.persistBlocks()
	}
}

// ToggleCompleted flips one block's completed flag.
func (s *Store) ToggleCompleted(id string) {
	s.mu.Lock()
	found := false
	for i := range s.blocks {
		if s.blocks[i].ID == id {
			s.blocks[i].Completed = !s.blocks[i].Completed
			found = true
			break
		}
	}
	s.mu.Unlock()

	if found {
		s.persistBlocks()
	}
}

// Remove deletes exactly one block.
func (s *Store) Remove(id string) {
	s.removeWhere(func(b models.Block) bool { return b.ID == id })
}

// RemoveAllInSeries deletes every block sharing the repeat id, past and
// future occurrences alike.
func (s *Store) RemoveAllInSeries(repeatID string) {
	if repeatID == "" {
		return
	}
	s.removeWhere(func(b models.Block) bool { return b.RepeatID == repeatID })
}

// RemoveFromDateForward deletes every block dated on or after the given
// block's date that belongs to the same series. For a block without a
// repeat id the title is the fallback grouping key — a deliberate
// heuristic so non-repeating blocks can still be bulk-removed "from here
// on", even though it can catch unrelated blocks that merely share a
// title.
func (s *Store) RemoveFromDateForward(block models.Block) {
	s.removeWhere(func(b models.Block) bool {
		if b.Date < block.Date {
			return false
		}
		if block.RepeatID != "" {
			return b.RepeatID == block.RepeatID
		}
		return b.Title == block.Title
	})
}

func (s *Store) removeWhere(match func(models.Block) bool) {
	s.mu.Lock()
	kept := s.blocks[:0]
	removed := 0
	for _, b := range s.blocks {
		if match(b) {
			removed++
			continue
		}
		kept = append(kept, b)
	}
	s.blocks = kept
	s.mu.Unlock()

	if removed > 0 {
		s.persistBlocks()
	}
}

// Block returns one block by id.
func (s *Store) Block(id string) (models.Block, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.blocks {
		if b.ID == id {
			return b, true
		}
	}
	return models.Block{}, false
}

// FindByPrefix resolves a block by id prefix, for CLI ergonomics. Returns
// false when the prefix is empty or ambiguous.
func (s *Store) FindByPrefix(prefix string) (models.Block, bool) {
	if prefix == "" {
		return models.Block{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var hit models.Block
	count := 0
	for _, b := range s.blocks {
		if len(b.ID) >= len(prefix) && b.ID[:len(prefix)] == prefix {
			hit = b
			count++
		}
	}
	if count != 1 {
		return models.Block{}, false
	}
	return hit, true
}

// ByDate returns the blocks on one day, sorted ascending by start time.
func (s *Store) ByDate(dateKey string) []models.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Block
	for _, b := range s.blocks {
		if b.Date == dateKey {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return ToMinutes(out[i].Start) < ToMinutes(out[j].Start)
	})
	return out
}

// Upcoming returns up to limit blocks whose (date, start) timestamp is at
// or after from, soonest first.
func (s *Store) Upcoming(from time.Time, limit int) []models.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	type timed struct {
		at    time.Time
		block models.Block
	}
	var candidates []timed
	for _, b := range s.blocks {
		at, err := BlockTime(b.Date, b.Start)
		if err != nil {
			continue
		}
		if !at.Before(from) {
			candidates = append(candidates, timed{at: at, block: b})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].at.Before(candidates[j].at)
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]models.Block, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.block)
	}
	return out
}

// TasksToday returns today's remaining tasks and meetings: blocks dated
// now's day, of type task or meeting, starting at or after the current
// minute, sorted ascending.
func (s *Store) TasksToday(now time.Time) []models.Block {
	today := FormatDateKey(now)
	nowMinutes := now.Hour()*60 + now.Minute()

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Block
	for _, b := range s.blocks {
		if b.Date != today {
			continue
		}
		if b.Type != models.TypeTask && b.Type != models.TypeMeeting {
			continue
		}
		if ToMinutes(b.Start) < nowMinutes {
			continue
		}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return ToMinutes(out[i].Start) < ToMinutes(out[j].Start)
	})
	return out
}

// ---------------------------------------------------------------------------
// Goal operations

// AddGoal creates a goal. An empty title is a silent no-op.
func (s *Store) AddGoal(title, description string) *models.Goal {
	if title == "" {
		return nil
	}
	goal := models.Goal{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		CreatedAt:   time.Now(),
	}

	s.mu.Lock()
	s.goals = append(s.goals, goal)
	s.mu.Unlock()

	s.persistGoals()
	return &goal
}

// UpdateGoal replaces a goal's title and description.
func (s *Store) UpdateGoal(id, title, description string) {
	if title == "" {
		return
	}
	s.mu.Lock()
	found := false
	for i := range s.goals {
		if s.goals[i].ID == id {
			s.goals[i].Title = title
			s.goals[i].Description = description
			found = true
			break
		}
	}
	s.mu.Unlock()

	if found {
		s.persistGoals()
	}
}

// ToggleGoalCompleted marks a goal complete now, or clears completion.
func (s *Store) ToggleGoalCompleted(id string) {
	s.mu.Lock()
	found := false
	for i := range s.goals {
		if s.goals[i].ID == id {
			if s.goals[i].CompletedAt != nil {
				s.goals[i].CompletedAt = nil
			} else {
				now := time.Now()
				s.goals[i].CompletedAt = &now
			}
			found = true
			break
		}
	}
	s.mu.Unlock()

	if found {
		s.persistGoals()
	}
}

// RemoveGoal deletes one goal.
func (s *Store) RemoveGoal(id string) {
	s.mu.Lock()
	kept := s.goals[:0]
	removed := 0
	for _, g := range s.goals {
		if g.ID == id {
			removed++
			continue
		}
		kept = append(kept, g)
	}
	s.goals = kept
	s.mu.Unlock()

	if removed > 0 {
		s.persistGoals()
	}
}

// Goals returns goals filtered by completion state.
func (s *Store) Goals(completed bool) []models.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Goal
	for _, g := range s.goals {
		if g.Done() == completed {
			out = append(out, g)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Profile and health operations

// Profile returns the stored account details.
func (s *Store) Profile() models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// SetProfile replaces the account details.
func (s *Store) SetProfile(p models.Profile) {
	s.mu.Lock()
	s.profile = p
	s.mu.Unlock()
	s.persist(storage.FieldProfile, p)
}

// HealthRecord returns the wellness entry for one day.
func (s *Store) HealthRecord(dateKey string) (models.HealthRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.health {
		if r.Date == dateKey {
			return r, true
		}
	}
	return models.HealthRecord{}, false
}

// SetHealthRecord inserts or replaces the entry for the record's date.
func (s *Store) SetHealthRecord(rec models.HealthRecord) {
	if rec.Date == "" {
		return
	}
	s.mu.Lock()
	replaced := false
	for i := range s.health {
		if s.health[i].Date == rec.Date {
			s.health[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		s.health = append(s.health, rec)
	}
	records := make([]models.HealthRecord, len(s.health))
	copy(records, s.health)
	s.mu.Unlock()

	s.persist(storage.FieldHealthRecords, records)
}

// ---------------------------------------------------------------------------
// Persistence

func (s *Store) persistBlocks() {
	s.mu.Lock()
	blocks := make([]models.Block, len(s.blocks))
	copy(blocks, s.blocks)
	s.mu.Unlock()
	s.persist(storage.FieldBlocks, blocks)
}

func (s *Store) persistGoals() {
	s.mu.Lock()
	goals := make([]models.Goal, len(s.goals))
	copy(goals, s.goals)
	s.mu.Unlock()
	s.persist(storage.FieldGoals, goals)
}

// persist queues one field's snapshot for the backend without blocking
// the caller. Rapid mutations of the same field coalesce: only the latest
// queued snapshot is written. Failures are logged and not retried;
// in-memory state remains the source of truth for the session.
func (s *Store) persist(field string, value any) {
	if s.backend == nil || s.profileID == "" {
		return
	}
	s.saveMu.Lock()
	if s.pending == nil {
		s.pending = make(map[string]any)
	}
	s.pending[field] = value
	if !s.saving {
		s.saving = true
		s.wg.Add(1)
		go s.drainSaves()
	}
	s.saveMu.Unlock()
}

// drainSaves writes queued snapshots one at a time until the queue is
// empty. A slow save simply delays the next one; it can never be
// overtaken by it.
func (s *Store) drainSaves() {
	defer s.wg.Done()
	for {
		s.saveMu.Lock()
		var field string
		var value any
		found := false
		for f, v := range s.pending {
			field, value, found = f, v, true
			break
		}
		if !found {
			s.saving = false
			s.saveMu.Unlock()
			return
		}
		delete(s.pending, field)
		s.saveMu.Unlock()

		if err := s.backend.Save(context.Background(), s.profileID, field, value); err != nil {
			s.log.Warn().Err(err).Str("field", field).Msg("persist failed")
		}
	}
}

// Flush waits until the save queue has drained. One-shot CLI commands
// call it before exiting; during an interactive session nothing waits on
// it.
func (s *Store) Flush() {
	s.wg.Wait()
}

func validTemplate(tmpl Template) bool {
	if tmpl.Title == "" || tmpl.Start == "" || tmpl.End == "" {
		return false
	}
	return ToMinutes(tmpl.End) > ToMinutes(tmpl.Start)
}
