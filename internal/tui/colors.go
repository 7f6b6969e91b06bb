package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/athlemics/athlemics/internal/models"
)

// Color constants for the athlemics TUI theme
const (
	// Base Colors
	ColorAppBackground  = ""        // Use terminal default background
	ColorCardBackground = "#10192E" // Dark navy
	ColorBorder         = "#32405F" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Primary text (field labels, user input, titles)
	ColorSecondaryText = "#AFBACD" // Secondary text
	ColorDisabledText  = "#67708A" // Disabled/muted text
	ColorPlaceholder   = "#AFBACD"
	ColorHelpText      = "240" // Dark grey for help text

	// Accent Colors (Blue theme)
	ColorAccentMain   = "#2563EB" // Accent elements, active borders
	ColorAccentBright = "#60A5FA" // Hover, highlights, selection

	// State Colors
	ColorError   = "#EF4444" // Validation errors
	ColorSuccess = "#22C55E" // Success, confirmations
	ColorWarning = "#F59E0B" // Warnings
	ColorNowRule = "#EF4444" // Current-time rule on the timeline
)

// typeMeta is the presentation metadata for one block type.
type typeMeta struct {
	Label      string
	Background string
	Foreground string
}

// blockTypeMeta maps each block type to its display label and colors.
// Rendering dispatches through this table instead of comparing type
// strings in the view code.
var blockTypeMeta = map[models.BlockType]typeMeta{
	models.TypeStudy:   {Label: "Study", Background: "#64748B", Foreground: "#FFFFFF"},
	models.TypeTrain:   {Label: "Train", Background: "#FDE047", Foreground: "#1C1917"},
	models.TypeClass:   {Label: "Class", Background: "#A16207", Foreground: "#FFFFFF"},
	models.TypeTask:    {Label: "Task", Background: "#0284C7", Foreground: "#FFFFFF"},
	models.TypeMeeting: {Label: "Meeting", Background: "#86EFAC", Foreground: "#14532D"},
}

// TypeLabel returns the display label for a block type.
func TypeLabel(t models.BlockType) string {
	if meta, ok := blockTypeMeta[t]; ok {
		return meta.Label
	}
	return string(t)
}

// TypeStyle returns the lipgloss style used to paint a block of this type.
func TypeStyle(t models.BlockType) lipgloss.Style {
	meta, ok := blockTypeMeta[t]
	if !ok {
		meta = blockTypeMeta[models.TypeStudy]
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(meta.Background)).
		Foreground(lipgloss.Color(meta.Foreground))
}

// repeatLabels maps repeat policies to their form labels.
var repeatLabels = map[models.RepeatPolicy]string{
	models.RepeatNone:     "Don't repeat",
	models.RepeatEveryDay: "Every day",
	models.RepeatWeekdays: "Weekdays (Mon-Fri)",
	models.RepeatWeekly:   "Every week",
	models.RepeatMonthly:  "Every month",
	models.RepeatYearly:   "Every year",
}

// RepeatLabel returns the display label for a repeat policy.
func RepeatLabel(p models.RepeatPolicy) string {
	if label, ok := repeatLabels[p]; ok {
		return label
	}
	return string(p)
}
