package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/athlemics/athlemics/internal/models"
)

// ParsedBlock represents a block parsed from quick-add syntax
type ParsedBlock struct {
	Title  string
	Desc   string
	Start  string
	End    string
	Type   models.BlockType
	Repeat models.RepeatPolicy
	Date   *time.Time
	Errors []string
}

// ParseBlock extracts block fields from a quick-add line
// Syntax: "Block title @type 09:00-10:30 *weekly on:2026-09-15"
func ParseBlock(input string) ParsedBlock {
	result := ParsedBlock{
		Type:   models.TypeStudy,
		Repeat: models.RepeatNone,
		Errors: []string{},
	}

	// Extract the time range (HH:MM-HH:MM)
	rangeRegex := regexp.MustCompile(`\b(\d{1,2}:\d{2})-(\d{1,2}:\d{2})\b`)
	rangeMatches := rangeRegex.FindStringSubmatch(input)
	if len(rangeMatches) == 3 {
		result.Start = padClock(rangeMatches[1])
		result.End = padClock(rangeMatches[2])
		input = rangeRegex.ReplaceAllString(input, "")
	} else {
		result.Errors = append(result.Errors, "Missing time range. Use: HH:MM-HH:MM")
	}

	// Extract the type (@study, @train, @class, @task, @meeting)
	typeRegex := regexp.MustCompile(`@([a-zA-Z]+)`)
	typeMatches := typeRegex.FindStringSubmatch(input)
	if len(typeMatches) > 1 {
		blockType := models.BlockType(strings.ToLower(typeMatches[1]))
		if blockType.Valid() {
			result.Type = blockType
		} else {
			result.Errors = append(result.Errors, "Invalid type '"+typeMatches[1]+"'. Use: study, train, class, task, or meeting")
		}
		input = typeRegex.ReplaceAllString(input, "")
	}

	// Extract the repeat policy (*every_day, *weekdays, *weekly, *monthly, *yearly)
	repeatRegex := regexp.MustCompile(`\*([a-zA-Z_]+)`)
	repeatMatches := repeatRegex.FindStringSubmatch(input)
	if len(repeatMatches) > 1 {
		policy := models.RepeatPolicy(strings.ToLower(repeatMatches[1]))
		if policy.Valid() {
			result.Repeat = policy
		} else {
			result.Errors = append(result.Errors, "Invalid repeat '"+repeatMatches[1]+"'. Use: every_day, weekdays, weekly, monthly, or yearly")
		}
		input = repeatRegex.ReplaceAllString(input, "")
	}

	// Extract the date (on:today, on:tomorrow, on:YYYY-MM-DD, on:dd/mm/yyyy)
	dateRegex := regexp.MustCompile(`on:([^\s]+)`)
	dateMatches := dateRegex.FindStringSubmatch(input)
	if len(dateMatches) > 1 {
		date, err := ParseDate(dateMatches[1])
		if err != nil {
			result.Errors = append(result.Errors, "Invalid date '"+dateMatches[1]+"': "+err.Error())
		} else {
			result.Date = date
		}
		input = dateRegex.ReplaceAllString(input, "")
	}

	// Clean up the title (remove extra spaces)
	result.Title = strings.Join(strings.Fields(input), " ")
	if result.Title == "" {
		result.Errors = append(result.Errors, "Missing block title")
	}

	return result
}

// padClock normalizes "9:00" to "09:00"
func padClock(clock string) string {
	if len(clock) == 4 {
		return "0" + clock
	}
	return clock
}
