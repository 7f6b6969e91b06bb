package schedule

import "math"

// Timeline layout constants. The vertical-to-time ratio must stay fixed so
// dragging N pixels always maps to the same number of minutes regardless
// of which day is displayed.
const (
	HourHeight = 32
	HourGap    = 8

	// SnapMinutes is the granularity drag repositioning rounds to.
	SnapMinutes = 15

	// MinDuration keeps a dragged block from collapsing to nothing.
	MinDuration = 5
)

// PixelsPerMinute converts vertical pointer distance into minutes.
const PixelsPerMinute = float64(HourHeight+HourGap) / 60

// Dragger translates pointer movement into a time-snapped block move. It
// is a two-state machine: idle, or dragging one block captured at
// pointer-down. While dragging, every Move writes a live preview through
// the store; End releases the pointer and the last preview simply stands —
// there is no separate commit step and no cancel gesture.
type Dragger struct {
	store *Store

	active    bool
	blockID   string
	startY    float64
	origStart int
	origEnd   int
}

// NewDragger returns an idle dragger bound to the store.
func NewDragger(store *Store) *Dragger {
	return &Dragger{store: store}
}

// Dragging reports whether a drag is in progress.
func (d *Dragger) Dragging() bool { return d.active }

// BlockID returns the id of the block being dragged, or "".
func (d *Dragger) BlockID() string {
	if !d.active {
		return ""
	}
	return d.blockID
}

// Begin starts a drag on pointer-down over a block, capturing its current
// times and the pointer's vertical position. Nothing is mutated on press
// alone. Returns false if the block does not exist.
func (d *Dragger) Begin(blockID string, pointerY float64) bool {
	block, ok := d.store.Block(blockID)
	if !ok {
		return false
	}
	d.active = true
	d.blockID = blockID
	d.startY = pointerY
	d.origStart = ToMinutes(block.Start)
	d.origEnd = ToMinutes(block.End)
	return true
}

// Move recomputes the block's position from the pointer's travel, snapped
// to SnapMinutes, and writes it through as a live preview. Each call
// overwrites the previous preview.
func (d *Dragger) Move(pointerY float64) {
	if !d.active {
		return
	}

	// Half-up rounding: a travel of exactly half a snap step resolves to
	// the later slot, never away from zero.
	snapSteps := (pointerY - d.startY) / PixelsPerMinute / SnapMinutes
	deltaMinutes := int(math.Floor(snapSteps+0.5)) * SnapMinutes

	newStart := d.origStart + deltaMinutes
	if newStart < 0 {
		newStart = 0
	}
	newEnd := d.origEnd + deltaMinutes
	if newEnd < newStart+MinDuration {
		newEnd = newStart + MinDuration
	}

	d.store.Reschedule(d.blockID, FromMinutes(newStart), FromMinutes(newEnd))
}

// End finishes the drag on pointer-up, anywhere. The last computed
// position is already applied; End only returns the machine to idle.
// Returns the id of the block that was dragged, or "" if idle.
func (d *Dragger) End() string {
	if !d.active {
		return ""
	}
	id := d.blockID
	d.active = false
	d.blockID = ""
	return id
}
