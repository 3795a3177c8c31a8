package ics

import (
	"os"
	"strings"
	"testing"

	"github.com/jmurrell/mgc-calendar/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGenerator(t *testing.T) *Generator {
	t.Helper()
	g, err := NewGenerator(t.TempDir())
	require.NoError(t, err)
	return g
}

func timedEvent() *models.Event {
	return &models.Event{
		ID:          1,
		UID:         "mgc-event-1700000000000-abc123@mgc-calendar",
		Title:       "Team sync",
		Description: "Weekly planning",
		Location:    "Room 4",
		StartDate:   "2025-01-10",
		EndDate:     "2025-01-10",
		StartTime:   "10:00",
		EndTime:     "11:00",
	}
}

func allDayEvent() *models.Event {
	return &models.Event{
		ID:        2,
		UID:       "mgc-event-1700000000001-def456@mgc-calendar",
		Title:     "Conference",
		StartDate: "2025-02-01",
		EndDate:   "2025-02-02",
		AllDay:    true,
	}
}

func TestGenerateText_TimedEvent(t *testing.T) {
	g := testGenerator(t)
	text := g.GenerateText(timedEvent(), StatusConfirmed)

	assert.Contains(t, text, "BEGIN:VCALENDAR")
	assert.Contains(t, text, "VERSION:2.0")
	assert.Contains(t, text, "UID:mgc-event-1700000000000-abc123@mgc-calendar")
	assert.Contains(t, text, "SUMMARY:Team sync")
	assert.Contains(t, text, "LOCATION:Room 4")
	assert.Contains(t, text, "STATUS:CONFIRMED")
	assert.Contains(t, text, "DTSTART:20250110T100000Z")
	assert.Contains(t, text, "DTEND:20250110T110000Z")
	assert.Contains(t, text, "END:VCALENDAR")
}

func TestGenerateText_AllDayUsesDateOnlyEncoding(t *testing.T) {
	g := testGenerator(t)
	text := g.GenerateText(allDayEvent(), StatusConfirmed)

	assert.Contains(t, text, "DTSTART;VALUE=DATE:20250201")
	assert.Contains(t, text, "DTEND;VALUE=DATE:20250202")
	assert.NotContains(t, text, "DTSTART:2025")
}

func TestGenerate_WritesAndOverwritesDocument(t *testing.T) {
	g := testGenerator(t)
	event := timedEvent()

	path, err := g.Generate(event, StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, g.PathFor(event.UID), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "STATUS:CONFIRMED")

	// A cancellation rewrites the same file; the document must survive the
	// event's deletion, carrying the cancelled marker.
	_, err = g.Generate(event, StatusCancelled)
	require.NoError(t, err)

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "STATUS:CANCELLED")
	assert.NotContains(t, string(data), "STATUS:CONFIRMED")
}

func TestRoundTrip_TimedEvent(t *testing.T) {
	g := testGenerator(t)
	event := timedEvent()
	event.Description = "line one\nline two"

	parsed := Parse(g.GenerateText(event, StatusConfirmed))
	require.Len(t, parsed, 1)

	got := parsed[0]
	assert.Equal(t, "Team sync", got.Title)
	assert.Equal(t, "2025-01-10", got.StartDate)
	assert.Equal(t, "10:00", got.StartTime)
	assert.Equal(t, "2025-01-10", got.EndDate)
	assert.Equal(t, "11:00", got.EndTime)
	assert.Equal(t, "line one\nline two", got.Description)
	assert.Equal(t, "Room 4", got.Location)
	assert.False(t, got.AllDay)
}

func TestRoundTrip_AllDayEvent(t *testing.T) {
	g := testGenerator(t)

	parsed := Parse(g.GenerateText(allDayEvent(), StatusConfirmed))
	require.Len(t, parsed, 1)

	got := parsed[0]
	assert.Equal(t, "Conference", got.Title)
	assert.Equal(t, "2025-02-01", got.StartDate)
	assert.Equal(t, "", got.StartTime)
	assert.Equal(t, "2025-02-02", got.EndDate)
	assert.True(t, got.AllDay)
}

func TestParse_DropsBlocksWithoutTitleOrStart(t *testing.T) {
	doc := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"BEGIN:VEVENT",
		"UID:no-summary@test",
		"DTSTART:20250101T100000Z",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:no-start@test",
		"SUMMARY:Has title only",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:valid@test",
		"SUMMARY:Valid",
		"DTSTART:20250101T100000Z",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\r\n")

	parsed := Parse(doc)
	require.Len(t, parsed, 1)
	assert.Equal(t, "Valid", parsed[0].Title)
	assert.Equal(t, "2025-01-01", parsed[0].EndDate)
}

func TestParse_DegenerateInstantLengthYieldsEmptyFields(t *testing.T) {
	doc := strings.Join([]string{
		"BEGIN:VEVENT",
		"SUMMARY:Broken",
		"DTSTART:2025",
		"END:VEVENT",
	}, "\r\n")

	// The start date comes out empty, so the block is dropped.
	assert.Empty(t, Parse(doc))
}

func TestParse_IgnoresUnknownKeysAndParameters(t *testing.T) {
	doc := strings.Join([]string{
		"BEGIN:VEVENT",
		"SUMMARY:Meeting",
		"X-CUSTOM:ignored",
		"SEQUENCE:3",
		"DTSTART;TZID=Europe/London:20250101T093000",
		"END:VEVENT",
	}, "\r\n")

	parsed := Parse(doc)
	require.Len(t, parsed, 1)
	assert.Equal(t, "2025-01-01", parsed[0].StartDate)
	assert.Equal(t, "09:30", parsed[0].StartTime)
}

func TestParse_EmptyOrForeignTextReturnsNoEvents(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("BEGIN:VCALENDAR\r\nVERSION:2.0\r\nEND:VCALENDAR\r\n"))
	assert.Empty(t, Parse("not a calendar at all"))
}

func TestMerge_CombinesEveryEventBlock(t *testing.T) {
	g := testGenerator(t)
	one := g.GenerateText(timedEvent(), StatusConfirmed)
	two := g.GenerateText(allDayEvent(), StatusConfirmed)

	merged := Merge([]string{one, two})

	assert.Equal(t, 1, strings.Count(merged, "BEGIN:VCALENDAR"))
	assert.Equal(t, 1, strings.Count(merged, "END:VCALENDAR"))
	assert.Equal(t, 2, strings.Count(merged, "BEGIN:VEVENT"))
	assert.Contains(t, merged, timedEvent().UID)
	assert.Contains(t, merged, allDayEvent().UID)

	parsed := Parse(merged)
	assert.Len(t, parsed, 2)
}

func TestCombined_SkipsEventsWithoutDocuments(t *testing.T) {
	g := testGenerator(t)
	written := timedEvent()
	missing := allDayEvent()

	_, err := g.Generate(written, StatusConfirmed)
	require.NoError(t, err)

	merged, err := g.Combined([]models.Event{*written, *missing})
	require.NoError(t, err)

	assert.Contains(t, merged, written.UID)
	assert.NotContains(t, merged, missing.UID)
}
