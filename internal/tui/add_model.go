package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/athlemics/athlemics/internal/models"
	"github.com/athlemics/athlemics/internal/schedule"
)

// Form fields in focus order
const (
	fieldTitle = iota
	fieldDesc
	fieldStart
	fieldEnd
	fieldType
	fieldRepeat
	fieldCount
)

// FormResult is what a completed block form hands back to its caller.
type FormResult struct {
	Template schedule.Template
	Repeat   models.RepeatPolicy
}

// BlockFormModel is the add/edit block form. In edit mode the repeat
// selector is hidden: edits apply to a single instance only, never to the
// rest of a series.
type BlockFormModel struct {
	inputs    []textinput.Model
	typeIdx   int
	repeatIdx int
	focus     int
	editMode  bool

	width  int
	height int

	completed     bool
	cancelled     bool
	validationErr string
}

// NewBlockFormModel creates the form, optionally prefilled.
func NewBlockFormModel(prefill *FormResult, editMode bool) BlockFormModel {
	inputs := make([]textinput.Model, 4)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 40
		inputs[i].TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		inputs[i].PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
		inputs[i].Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	}

	inputs[fieldTitle].Placeholder = "Block title (required)"
	inputs[fieldTitle].CharLimit = 120
	inputs[fieldTitle].Focus()

	inputs[fieldDesc].Placeholder = "Description (optional)"
	inputs[fieldDesc].CharLimit = 300

	inputs[fieldStart].Placeholder = "Start, e.g. 09:00"
	inputs[fieldStart].CharLimit = 5

	inputs[fieldEnd].Placeholder = "End, e.g. 10:30"
	inputs[fieldEnd].CharLimit = 5

	m := BlockFormModel{
		inputs:   inputs,
		editMode: editMode,
	}

	if prefill != nil {
		m.inputs[fieldTitle].SetValue(prefill.Template.Title)
		m.inputs[fieldDesc].SetValue(prefill.Template.Desc)
		m.inputs[fieldStart].SetValue(prefill.Template.Start)
		m.inputs[fieldEnd].SetValue(prefill.Template.End)
		for i, t := range models.BlockTypes {
			if t == prefill.Template.Type {
				m.typeIdx = i
			}
		}
		for i, p := range models.RepeatPolicies {
			if p == prefill.Repeat {
				m.repeatIdx = i
			}
		}
	}

	return m
}

// Done reports whether the form was submitted.
func (m BlockFormModel) Done() bool { return m.completed }

// Cancelled reports whether the form was dismissed.
func (m BlockFormModel) Cancelled() bool { return m.cancelled }

// Result returns the submitted form values.
func (m BlockFormModel) Result() FormResult {
	return FormResult{
		Template: schedule.Template{
			Title: strings.TrimSpace(m.inputs[fieldTitle].Value()),
			Desc:  strings.TrimSpace(m.inputs[fieldDesc].Value()),
			Start: strings.TrimSpace(m.inputs[fieldStart].Value()),
			End:   strings.TrimSpace(m.inputs[fieldEnd].Value()),
			Type:  models.BlockTypes[m.typeIdx],
		},
		Repeat: models.RepeatPolicies[m.repeatIdx],
	}
}

func (m BlockFormModel) lastField() int {
	if m.editMode {
		return fieldType
	}
	return fieldRepeat
}

// Update handles messages. The form never quits the program itself; its
// owner checks Done/Cancelled after each update.
func (m BlockFormModel) Update(msg tea.Msg) (BlockFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			m.cancelled = true
			return m, nil

		case "up", "shift+tab":
			return m.moveFocus(-1), nil

		case "down", "tab":
			return m.moveFocus(1), nil

		case "left", "right":
			delta := 1
			if msg.String() == "left" {
				delta = -1
			}
			switch m.focus {
			case fieldType:
				m.typeIdx = wrap(m.typeIdx+delta, len(models.BlockTypes))
				return m, nil
			case fieldRepeat:
				m.repeatIdx = wrap(m.repeatIdx+delta, len(models.RepeatPolicies))
				return m, nil
			}

		case "enter":
			if m.focus < m.lastField() {
				return m.moveFocus(1), nil
			}
			return m.submit(), nil

		case "ctrl+s":
			return m.submit(), nil
		}
	}

	// Route everything else to the focused text input
	if m.focus < len(m.inputs) {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m BlockFormModel) moveFocus(delta int) BlockFormModel {
	m.inputs[clampIndex(m.focus, len(m.inputs))].Blur()
	m.focus = wrap(m.focus+delta, m.lastField()+1)
	if m.focus < len(m.inputs) {
		m.inputs[m.focus].Focus()
	}
	m.validationErr = ""
	return m
}

func (m BlockFormModel) submit() BlockFormModel {
	res := m.Result()
	switch {
	case res.Template.Title == "":
		m.validationErr = "Title is required"
	case res.Template.Start == "" || !schedule.ValidClock(res.Template.Start):
		m.validationErr = "Start must be HH:MM"
	case res.Template.End == "" || !schedule.ValidClock(res.Template.End):
		m.validationErr = "End must be HH:MM"
	case schedule.ToMinutes(res.Template.End) <= schedule.ToMinutes(res.Template.Start):
		m.validationErr = "End must be after start"
	default:
		m.completed = true
	}
	return m
}

// View renders the form card.
func (m BlockFormModel) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Width(12)
	focusedLabel := labelStyle.Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
	selectStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))

	var b strings.Builder

	title := "Add block"
	if m.editMode {
		title = "Edit block"
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentBright)).Render(title))
	b.WriteString("\n\n")

	writeField := func(field int, label, body string) {
		style := labelStyle
		if m.focus == field {
			style = focusedLabel
		}
		b.WriteString(style.Render(label))
		b.WriteString(body)
		b.WriteString("\n")
	}

	writeField(fieldTitle, "Title", m.inputs[fieldTitle].View())
	writeField(fieldDesc, "Description", m.inputs[fieldDesc].View())
	writeField(fieldStart, "Start", m.inputs[fieldStart].View())
	writeField(fieldEnd, "End", m.inputs[fieldEnd].View())
	writeField(fieldType, "Type", selectStyle.Render(m.renderSelect(TypeLabel(models.BlockTypes[m.typeIdx]), m.focus == fieldType)))
	if !m.editMode {
		writeField(fieldRepeat, "Repeat", selectStyle.Render(m.renderSelect(RepeatLabel(models.RepeatPolicies[m.repeatIdx]), m.focus == fieldRepeat)))
	}

	if m.validationErr != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render("✗ " + m.validationErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).Render(
		"↑/↓ move · ←/→ change · enter save · esc cancel"))

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Padding(1, 2).
		Render(b.String())

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
	}
	return card
}

func (m BlockFormModel) renderSelect(value string, focused bool) string {
	if focused {
		return fmt.Sprintf("‹ %s ›", value)
	}
	return fmt.Sprintf("  %s", value)
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

func clampIndex(i, n int) int {
	if i >= n {
		return n - 1
	}
	return i
}
