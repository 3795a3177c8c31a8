package ics

import (
	"os"
	"path/filepath"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/jmurrell/mgc-calendar/internal/models"
)

const (
	productID    = "-//MGC Calendar//EN"
	calendarName = "MGC Calendar"
)

// EventStatus is the interchange status marker on a generated event block.
type EventStatus string

const (
	StatusConfirmed EventStatus = "CONFIRMED"
	StatusCancelled EventStatus = "CANCELLED"
)

// Generator writes one interchange document per event uid into a fixed
// output directory. Documents are only ever overwritten, never renamed or
// removed: a deleted event keeps its document, rewritten as a cancellation.
type Generator struct {
	outputDir string
}

// NewGenerator ensures the output directory exists and binds to it.
func NewGenerator(outputDir string) (*Generator, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, err
	}
	return &Generator{outputDir: outputDir}, nil
}

// OutputDir returns the directory documents are written to.
func (g *Generator) OutputDir() string {
	return g.outputDir
}

// PathFor is the deterministic document path for a uid.
func (g *Generator) PathFor(uid string) string {
	return filepath.Join(g.outputDir, uid+".ics")
}

// Generate writes the event's document to <uid>.ics, overwriting any prior
// document for that uid, and returns the absolute path written.
func (g *Generator) Generate(event *models.Event, status EventStatus) (string, error) {
	path := g.PathFor(event.UID)
	if err := os.WriteFile(path, []byte(g.GenerateText(event, status)), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// GenerateText renders the single-event calendar document. An event with no
// start time, or flagged all-day, is encoded with date-only instants.
func (g *Generator) GenerateText(event *models.Event, status EventStatus) string {
	cal := ical.NewCalendar()
	cal.SetProductId(productID)
	cal.SetCalscale("GREGORIAN")
	cal.SetName(calendarName)

	ve := cal.AddEvent(event.UID)
	ve.SetDtStampTime(time.Now().UTC())
	ve.SetSummary(event.Title)
	ve.SetDescription(event.Description)
	ve.SetLocation(event.Location)

	if event.AllDay || event.StartTime == "" {
		ve.SetAllDayStartAt(combine(event.StartDate, ""))
		ve.SetAllDayEndAt(combine(event.EndDate, ""))
	} else {
		ve.SetStartAt(combine(event.StartDate, event.StartTime))
		ve.SetEndAt(combine(event.EndDate, event.EndTime))
	}

	switch status {
	case StatusCancelled:
		ve.SetStatus(ical.ObjectStatusCancelled)
	default:
		ve.SetStatus(ical.ObjectStatusConfirmed)
	}

	return cal.Serialize()
}

// combine turns stored date and clock strings into a single instant. Times
// are opaque local strings, so the instant is built in UTC: the clock digits
// written to the document are exactly the digits that were stored.
func combine(date, clock string) time.Time {
	if clock == "" {
		t, _ := time.Parse("2006-01-02", date)
		return t
	}
	t, err := time.Parse("2006-01-02T15:04", date+"T"+clock)
	if err != nil {
		t, _ = time.Parse("2006-01-02", date)
	}
	return t
}
