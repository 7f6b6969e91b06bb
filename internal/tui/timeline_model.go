package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/athlemics/athlemics/internal/models"
	"github.com/athlemics/athlemics/internal/schedule"
)

// Timeline grid geometry: two rows per hour, so one row is 30 minutes.
// Mouse rows are converted into the drag controller's pixel space through
// schedule.PixelsPerMinute so a row of travel always means the same
// number of minutes.
const (
	rowsPerHour   = 2
	minutesPerRow = 60 / rowsPerHour
	gridRows      = 24 * rowsPerHour
	railWidth     = 7 // "HH:00  "
	gridTop       = 2 // header + blank line above the grid
)

// timelineMode is what the timeline is currently showing.
type timelineMode int

const (
	modeDay timelineMode = iota
	modeForm
	modeDelete
)

// minuteTickMsg refreshes the current-time rule.
type minuteTickMsg struct{}

// TimelineModel is the interactive day view: an hour rail, the day's
// blocks laid out side by side per their overlap columns, a current-time
// rule, and mouse drag to reschedule.
type TimelineModel struct {
	store   *schedule.Store
	dragger *schedule.Dragger

	date time.Time // selected day, local midnight
	now  time.Time

	width  int
	height int
	scroll int // first visible grid row

	selected int // index into the day's sorted blocks

	mode         timelineMode
	form         BlockFormModel
	editID       string
	deleteTarget models.Block

	statusMsg string
}

// NewTimelineModel creates a timeline showing the given day.
func NewTimelineModel(store *schedule.Store, date time.Time) TimelineModel {
	now := time.Now()
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.Local)
	m := TimelineModel{
		store:   store,
		dragger: schedule.NewDragger(store),
		date:    day,
		now:     now,
	}
	m.scroll = m.centerScroll()
	return m
}

// Init starts the minute ticker.
func (m TimelineModel) Init() tea.Cmd {
	return tea.Tick(time.Minute, func(time.Time) tea.Msg {
		return minuteTickMsg{}
	})
}

// Update handles messages.
func (m TimelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case minuteTickMsg:
		m.now = time.Now()
		return m, tea.Tick(time.Minute, func(time.Time) tea.Msg {
			return minuteTickMsg{}
		})

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.mode == modeForm {
			var cmd tea.Cmd
			m.form, cmd = m.form.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeDelete:
			return m.updateDeleteChoice(msg)
		default:
			return m.updateDay(msg)
		}

	case tea.MouseMsg:
		if m.mode == modeDay {
			return m.updateMouse(msg)
		}
	}

	if m.mode == modeForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m TimelineModel) updateDay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit

	case "left", "h":
		m.date = m.date.AddDate(0, 0, -1)
		m.selected = 0
		m.statusMsg = ""
		return m, nil

	case "right", "l":
		m.date = m.date.AddDate(0, 0, 1)
		m.selected = 0
		m.statusMsg = ""
		return m, nil

	case "t":
		now := time.Now()
		m.date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
		m.scroll = m.centerScroll()
		m.selected = 0
		return m, nil

	case "down", "j":
		blocks := m.dayBlocks()
		if m.selected < len(blocks)-1 {
			m.selected++
			m.scrollTo(blocks[m.selected])
		}
		return m, nil

	case "up", "k":
		if m.selected > 0 {
			m.selected--
			if blocks := m.dayBlocks(); m.selected < len(blocks) {
				m.scrollTo(blocks[m.selected])
			}
		}
		return m, nil

	case "pgdown", "J":
		m.scroll = clampScroll(m.scroll+m.visibleRows()/2, m.visibleRows())
		return m, nil

	case "pgup", "K":
		m.scroll = clampScroll(m.scroll-m.visibleRows()/2, m.visibleRows())
		return m, nil

	case "a":
		m.form = NewBlockFormModel(nil, false)
		m.editID = ""
		m.mode = modeForm
		return m, nil

	case "e":
		if block, ok := m.selectedBlock(); ok {
			m.form = NewBlockFormModel(&FormResult{
				Template: schedule.Template{
					Title: block.Title,
					Desc:  block.Desc,
					Start: block.Start,
					End:   block.End,
					Type:  block.Type,
				},
			}, true)
			m.editID = block.ID
			m.mode = modeForm
		}
		return m, nil

	case " ", "x":
		if block, ok := m.selectedBlock(); ok {
			m.store.ToggleCompleted(block.ID)
		}
		return m, nil

	case "d":
		if block, ok := m.selectedBlock(); ok {
			m.deleteTarget = block
			m.mode = modeDelete
		}
		return m, nil
	}
	return m, nil
}

func (m TimelineModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)

	if m.form.Cancelled() {
		m.mode = modeDay
		m.statusMsg = ""
		return m, cmd
	}
	if m.form.Done() {
		res := m.form.Result()
		if m.editID != "" {
			m.store.Update(m.editID, res.Template)
			m.statusMsg = "Updated \"" + res.Template.Title + "\""
		} else {
			created := m.store.Add(res.Template, res.Repeat, m.date)
			m.statusMsg = fmt.Sprintf("Added %d block(s)", len(created))
		}
		m.mode = modeDay
	}
	return m, cmd
}

func (m TimelineModel) updateDeleteChoice(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "1":
		m.store.Remove(m.deleteTarget.ID)
		m.statusMsg = "Removed block"
		m.mode = modeDay
	case "2":
		if m.deleteTarget.RepeatID != "" {
			m.store.RemoveAllInSeries(m.deleteTarget.RepeatID)
			m.statusMsg = "Removed whole series"
			m.mode = modeDay
		}
	case "3":
		m.store.RemoveFromDateForward(m.deleteTarget)
		m.statusMsg = "Removed from this date on"
		m.mode = modeDay
	case "esc", "q":
		m.mode = modeDay
	}
	if m.mode == modeDay {
		m.selected = 0
	}
	return m, nil
}

func (m TimelineModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scroll = clampScroll(m.scroll-1, m.visibleRows())
		return m, nil
	case tea.MouseButtonWheelDown:
		m.scroll = clampScroll(m.scroll+1, m.visibleRows())
		return m, nil
	}

	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease {
		return m, nil
	}

	row := msg.Y - gridTop + m.scroll
	pointerY := float64(row*minutesPerRow) * schedule.PixelsPerMinute

	switch msg.Action {
	case tea.MouseActionPress:
		if row < 0 || row >= gridRows {
			return m, nil
		}
		if block, idx, ok := m.blockAt(row, msg.X-railWidth); ok {
			m.selected = idx
			m.dragger.Begin(block.ID, pointerY)
		}

	case tea.MouseActionMotion:
		m.dragger.Move(pointerY)

	case tea.MouseActionRelease:
		// Releasing anywhere finalises the last preview; there is no
		// cancel gesture.
		m.dragger.End()
	}
	return m, nil
}

// ---------------------------------------------------------------------------
// Derived views

func (m TimelineModel) dateKey() string {
	return schedule.FormatDateKey(m.date)
}

func (m TimelineModel) dayBlocks() []models.Block {
	return m.store.ByDate(m.dateKey())
}

func (m TimelineModel) selectedBlock() (models.Block, bool) {
	blocks := m.dayBlocks()
	if len(blocks) == 0 || m.selected >= len(blocks) {
		return models.Block{}, false
	}
	return blocks[m.selected], true
}

// blockAt finds the positioned block covering a grid row and column.
func (m TimelineModel) blockAt(row, x int) (models.Block, int, bool) {
	if x < 0 {
		return models.Block{}, 0, false
	}
	width := m.gridWidth()
	rowStart := row * minutesPerRow
	rowEnd := rowStart + minutesPerRow

	sorted := m.dayBlocks()
	for _, p := range schedule.GroupOverlapping(sorted) {
		start := schedule.ToMinutes(p.Start)
		end := schedule.ToMinutes(p.End)
		if start >= rowEnd || end <= rowStart {
			continue
		}
		left := p.OverlapIndex * width / p.OverlapCount
		segWidth := width / p.OverlapCount
		if x >= left && x < left+segWidth {
			for i, b := range sorted {
				if b.ID == p.ID {
					return p.Block, i, true
				}
			}
		}
	}
	return models.Block{}, 0, false
}

func (m TimelineModel) visibleRows() int {
	rows := m.height - gridTop - 2 // help + status at the bottom
	if rows < 6 {
		rows = 6
	}
	if rows > gridRows {
		rows = gridRows
	}
	return rows
}

func (m TimelineModel) gridWidth() int {
	w := m.width - railWidth
	if w < 20 {
		w = 20
	}
	return w
}

func (m TimelineModel) centerScroll() int {
	nowRow := (m.now.Hour()*60 + m.now.Minute()) / minutesPerRow
	return clampScroll(nowRow-m.visibleRows()/2, m.visibleRows())
}

func (m *TimelineModel) scrollTo(block models.Block) {
	row := schedule.ToMinutes(block.Start) / minutesPerRow
	if row < m.scroll {
		m.scroll = clampScroll(row, m.visibleRows())
	} else if row >= m.scroll+m.visibleRows() {
		m.scroll = clampScroll(row-m.visibleRows()+1, m.visibleRows())
	}
}

func clampScroll(scroll, visible int) int {
	max := gridRows - visible
	if scroll > max {
		scroll = max
	}
	if scroll < 0 {
		scroll = 0
	}
	return scroll
}

// ---------------------------------------------------------------------------
// View

// View renders the timeline.
func (m TimelineModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.mode == modeForm {
		return m.form.View()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	blocks := m.dayBlocks()
	positioned := schedule.GroupOverlapping(blocks)
	selectedID := ""
	if block, ok := m.selectedBlock(); ok {
		selectedID = block.ID
	}

	isToday := m.dateKey() == schedule.FormatDateKey(m.now)
	nowRow := (m.now.Hour()*60 + m.now.Minute()) / minutesPerRow

	for row := m.scroll; row < m.scroll+m.visibleRows() && row < gridRows; row++ {
		b.WriteString(m.renderRail(row, isToday && row == nowRow))
		b.WriteString(m.renderRow(row, positioned, selectedID))
		b.WriteString("\n")
	}

	if m.mode == modeDelete {
		b.WriteString(m.renderDeleteChoice())
	} else {
		b.WriteString(m.renderStatus(len(blocks)))
	}
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m TimelineModel) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentBright)).
		Render("Day " + m.date.Format("Mon 02 Jan 2006"))
	if m.dateKey() == schedule.FormatDateKey(m.now) {
		today := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Render("  (today)")
		return title + today
	}
	return title
}

func (m TimelineModel) renderRail(row int, isNow bool) string {
	label := "       "
	if row%rowsPerHour == 0 {
		label = fmt.Sprintf("%02d:00  ", row/rowsPerHour)
	}
	if isNow {
		clock := schedule.FromMinutes(m.now.Hour()*60 + m.now.Minute())
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorNowRule)).Bold(true).
			Render(clock + " ▶")
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText)).Render(label)
}

// renderRow paints one 30-minute row: the segments of every block
// covering it, side by side per the overlap columns. Blocks covering the
// same row always belong to the same group, so their segments never
// collide.
func (m TimelineModel) renderRow(row int, positioned []schedule.Positioned, selectedID string) string {
	width := m.gridWidth()
	rowStart := row * minutesPerRow
	rowEnd := rowStart + minutesPerRow

	type segment struct {
		left, width int
		text        string
		style       lipgloss.Style
	}
	var segments []segment

	for _, p := range positioned {
		start := schedule.ToMinutes(p.Start)
		end := schedule.ToMinutes(p.End)
		if start >= rowEnd || end <= rowStart {
			continue
		}

		left := p.OverlapIndex * width / p.OverlapCount
		segWidth := width / p.OverlapCount
		if segWidth < 1 {
			segWidth = 1
		}

		text := ""
		if start >= rowStart {
			// First row of the block carries its label.
			text = fmt.Sprintf(" %s-%s %s", p.Start, p.End, p.Title)
			if p.Completed {
				text = " ✓" + text[1:]
			}
		}
		text = padOrTrim(text, segWidth)

		style := TypeStyle(p.Type)
		if p.ID == selectedID {
			style = style.Bold(true).Underline(true)
		}
		if p.Completed {
			style = style.Faint(true)
		}
		segments = append(segments, segment{left: left, width: segWidth, text: text, style: style})
	}

	if len(segments) == 0 {
		return ""
	}

	var b strings.Builder
	cursor := 0
	for _, seg := range segments {
		if seg.left > cursor {
			b.WriteString(strings.Repeat(" ", seg.left-cursor))
			cursor = seg.left
		}
		b.WriteString(seg.style.Render(seg.text))
		cursor += seg.width
	}
	return b.String()
}

func (m TimelineModel) renderStatus(count int) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	if m.statusMsg != "" {
		return style.Foreground(lipgloss.Color(ColorSuccess)).Render(m.statusMsg)
	}
	if count == 0 {
		return style.Render("No blocks for this day")
	}
	return style.Render(fmt.Sprintf("%d block(s)", count))
}

func (m TimelineModel) renderDeleteChoice() string {
	warn := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning)).Bold(true)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))

	series := "2 whole series"
	if m.deleteTarget.RepeatID == "" {
		series = dim.Render("2 whole series")
	}
	return warn.Render("Delete \""+m.deleteTarget.Title+"\"? ") +
		"1 only this · " + series + " · 3 from this date on · esc cancel"
}

func (m TimelineModel) renderHelp() string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).Render(
		"←/→ day · t today · ↑/↓ select · a add · e edit · space done · d delete · drag to move · q quit")
}

func padOrTrim(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}
