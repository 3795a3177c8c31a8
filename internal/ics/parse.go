package ics

import (
	"strings"

	"github.com/jmurrell/mgc-calendar/internal/models"
)

const (
	beginEvent    = "BEGIN:VEVENT"
	endEvent      = "END:VEVENT"
	BeginCalendar = "BEGIN:VCALENDAR"
	endCalendar   = "END:VCALENDAR"
)

// Parse scans a calendar document for event blocks and converts each valid
// block into a create input. A block needs at least a summary and a start
// date; anything else is dropped silently. A document with zero valid
// blocks yields an empty slice, never an error.
func Parse(text string) []models.CreateEventInput {
	events := []models.CreateEventInput{}

	blocks := strings.Split(unfold(text), beginEvent)
	for i := 1; i < len(blocks); i++ {
		block := blocks[i]
		end := strings.Index(block, endEvent)
		if end == -1 {
			continue
		}

		event := parseBlock(block[:end])
		if event.Title == "" || event.StartDate == "" {
			continue
		}
		if event.EndDate == "" {
			event.EndDate = event.StartDate
		}
		events = append(events, event)
	}

	return events
}

func parseBlock(block string) models.CreateEventInput {
	var event models.CreateEventInput

	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimRight(line, "\r")
		colon := strings.Index(line, ":")
		if colon == -1 {
			continue
		}

		// Parameters after ';' (VALUE=DATE, TZID=...) are irrelevant here.
		key := strings.SplitN(line[:colon], ";", 2)[0]
		value := strings.TrimSpace(line[colon+1:])

		switch key {
		case "SUMMARY":
			event.Title = value
		case "DESCRIPTION":
			event.Description = strings.ReplaceAll(value, `\n`, "\n")
		case "LOCATION":
			event.Location = value
		case "DTSTART":
			date, clock, allDay := splitDateTimeValue(value)
			event.StartDate = date
			event.StartTime = clock
			if allDay {
				event.AllDay = true
			}
		case "DTEND":
			date, clock, _ := splitDateTimeValue(value)
			event.EndDate = date
			event.EndTime = clock
		}
	}

	return event
}

// splitDateTimeValue classifies an instant value by literal length after
// stripping UTC markers: 8 characters is a pure date (all-day), 15 or more
// is date+time, anything else is unparseable and yields empty fields.
func splitDateTimeValue(value string) (date, clock string, allDay bool) {
	cleaned := strings.TrimSuffix(value, "Z")
	if i := strings.Index(cleaned, "T"); i >= 0 {
		if j := strings.LastIndex(cleaned[i:], "Z"); j >= 0 {
			cleaned = cleaned[:i] + cleaned[i+j+1:]
		}
	}

	switch {
	case len(cleaned) == 8:
		return cleaned[0:4] + "-" + cleaned[4:6] + "-" + cleaned[6:8], "", true
	case len(cleaned) >= 15:
		date = cleaned[0:4] + "-" + cleaned[4:6] + "-" + cleaned[6:8]
		clock = cleaned[9:11] + ":" + cleaned[11:13]
		return date, clock, false
	default:
		return "", "", false
	}
}

// unfold joins folded continuation lines (RFC 5545 wraps content lines at 75
// octets; continuations start with a space or tab).
func unfold(text string) string {
	text = strings.ReplaceAll(text, "\r\n ", "")
	text = strings.ReplaceAll(text, "\r\n\t", "")
	text = strings.ReplaceAll(text, "\n ", "")
	return strings.ReplaceAll(text, "\n\t", "")
}
