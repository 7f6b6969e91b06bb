package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/athlemics/athlemics/internal/schedule"
)

// RunTimeline starts the interactive day timeline for the given date.
func RunTimeline(store *schedule.Store, date time.Time) error {
	model := NewTimelineModel(store, date)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// formRunner hosts a BlockFormModel as a standalone program.
type formRunner struct {
	form BlockFormModel
}

func (r formRunner) Init() tea.Cmd { return nil }

func (r formRunner) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	r.form, cmd = r.form.Update(msg)
	if r.form.Done() || r.form.Cancelled() {
		return r, tea.Quit
	}
	return r, cmd
}

func (r formRunner) View() string { return r.form.View() }

// RunBlockForm runs the add/edit form on its own and returns the result,
// or ok=false when the user cancelled.
func RunBlockForm(prefill *FormResult, editMode bool) (FormResult, bool, error) {
	runner := formRunner{form: NewBlockFormModel(prefill, editMode)}

	p := tea.NewProgram(runner, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return FormResult{}, false, err
	}

	if r, ok := finalModel.(formRunner); ok && r.form.Done() {
		return r.form.Result(), true, nil
	}
	return FormResult{}, false, nil
}
