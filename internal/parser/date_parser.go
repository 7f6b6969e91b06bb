package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParseDate parses the date formats accepted by the CLI
// Supported formats:
// - today / tomorrow
// - YYYY-MM-DD (e.g., "2026-09-15")
// - dd/mm/yyyy (e.g., "15/09/2026")
// - +X days (e.g., "+3days")
func ParseDate(input string) (*time.Time, error) {
	if input == "" {
		return nil, nil
	}

	input = strings.ToLower(strings.TrimSpace(input))
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	switch input {
	case "today":
		return &today, nil
	case "tomorrow":
		date := today.AddDate(0, 0, 1)
		return &date, nil
	}

	// Try YYYY-MM-DD
	if date, err := time.ParseInLocation("2006-01-02", input, time.Local); err == nil {
		return &date, nil
	}

	// Try dd/mm/yyyy
	if date, err := parseSlashDate(input); err == nil {
		return date, nil
	}

	// Try +X days
	if date, err := parseRelativeDays(input, today); err == nil {
		return date, nil
	}

	return nil, fmt.Errorf("invalid date format. Use: today, tomorrow, YYYY-MM-DD, dd/mm/yyyy, or +Xdays")
}

// parseSlashDate parses dd/mm/yyyy format
func parseSlashDate(input string) (*time.Time, error) {
	dateRegex := regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	matches := dateRegex.FindStringSubmatch(input)

	if len(matches) != 4 {
		return nil, fmt.Errorf("invalid date format")
	}

	day, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	year, _ := strconv.Atoi(matches[3])

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)

	// Check the components survived (handles 31/02 and friends)
	if date.Day() != day || date.Month() != time.Month(month) || date.Year() != year {
		return nil, fmt.Errorf("invalid date")
	}

	return &date, nil
}

// parseRelativeDays parses "+Xdays" / "+X days"
func parseRelativeDays(input string, today time.Time) (*time.Time, error) {
	relativeRegex := regexp.MustCompile(`^\+(\d+)\s*(day|days)$`)
	matches := relativeRegex.FindStringSubmatch(input)

	if len(matches) != 3 {
		return nil, fmt.Errorf("invalid relative date format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return nil, fmt.Errorf("invalid number")
	}
	if amount < 1 || amount > 365 {
		return nil, fmt.Errorf("days must be between 1 and 365")
	}

	date := today.AddDate(0, 0, amount)
	return &date, nil
}
