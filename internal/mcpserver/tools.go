package mcpserver

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/jmurrell/mgc-calendar/internal/ics"
	"github.com/jmurrell/mgc-calendar/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pkg/browser"
)

type createEventArgs struct {
	Title       string `json:"title" jsonschema:"Event title"`
	Description string `json:"description,omitempty" jsonschema:"Event description"`
	Location    string `json:"location,omitempty" jsonschema:"Event location"`
	StartDate   string `json:"startDate" jsonschema:"Start date in YYYY-MM-DD format"`
	StartTime   string `json:"startTime,omitempty" jsonschema:"Start time in HH:MM format (24-hour)"`
	EndDate     string `json:"endDate,omitempty" jsonschema:"End date in YYYY-MM-DD format (defaults to start date)"`
	EndTime     string `json:"endTime,omitempty" jsonschema:"End time in HH:MM format (24-hour)"`
	AllDay      bool   `json:"allDay,omitempty" jsonschema:"Whether this is an all-day event"`
	Content     string `json:"content,omitempty" jsonschema:"Long-form article content attached to the event"`
	Tags        string `json:"tags,omitempty" jsonschema:"Comma-separated tags"`
}

type updateEventArgs struct {
	ID          int     `json:"id" jsonschema:"Event ID"`
	Title       *string `json:"title,omitempty" jsonschema:"Event title"`
	Description *string `json:"description,omitempty" jsonschema:"Event description"`
	Location    *string `json:"location,omitempty" jsonschema:"Event location"`
	StartDate   *string `json:"startDate,omitempty" jsonschema:"Start date in YYYY-MM-DD format"`
	StartTime   *string `json:"startTime,omitempty" jsonschema:"Start time in HH:MM format (24-hour)"`
	EndDate     *string `json:"endDate,omitempty" jsonschema:"End date in YYYY-MM-DD format"`
	EndTime     *string `json:"endTime,omitempty" jsonschema:"End time in HH:MM format (24-hour)"`
	AllDay      *bool   `json:"allDay,omitempty" jsonschema:"Whether this is an all-day event"`
	Content     *string `json:"content,omitempty" jsonschema:"Long-form article content attached to the event"`
	Tags        *string `json:"tags,omitempty" jsonschema:"Comma-separated tags"`
}

type eventIDArgs struct {
	ID int `json:"id" jsonschema:"Event ID"`
}

type noArgs struct{}

func (s *Server) createEvent(ctx context.Context, req *mcp.CallToolRequest, args createEventArgs) (*mcp.CallToolResult, any, error) {
	event, err := s.store.Create(models.CreateEventInput{
		Title:       args.Title,
		Description: args.Description,
		Location:    args.Location,
		StartDate:   args.StartDate,
		StartTime:   args.StartTime,
		EndDate:     args.EndDate,
		EndTime:     args.EndTime,
		AllDay:      args.AllDay,
		Content:     args.Content,
		Tags:        args.Tags,
	})
	if err != nil {
		return nil, nil, err
	}

	icsPath, err := s.codec.Generate(event, ics.StatusConfirmed)
	if err != nil {
		return textResult("Event created with ID %d, but the ICS file could not be written: %v", event.ID, err), nil, nil
	}

	return textResult("Event created successfully!\n\nEvent ID: %d\nTitle: %s\nDate: %s%s\n\nICS file saved to: %s\n\nImport the ICS file into Google Calendar, Outlook, Apple Calendar or any other calendar application to add the event.",
		event.ID, event.Title, event.StartDate, atTime(event.StartTime), icsPath), nil, nil
}

func (s *Server) listEvents(ctx context.Context, req *mcp.CallToolRequest, args noArgs) (*mcp.CallToolResult, any, error) {
	events, err := s.store.List()
	if err != nil {
		return nil, nil, err
	}

	if len(events) == 0 {
		return textResult("No events found."), nil, nil
	}

	lines := make([]string, 0, len(events))
	for _, e := range events {
		when := e.StartDate
		if e.StartTime != "" {
			when += " " + e.StartTime
		}
		lines = append(lines, fmt.Sprintf("ID: %d | %s | %s", e.ID, e.Title, when))
	}

	return textResult("Found %d event(s):\n\n%s\n\nICS files location: %s",
		len(events), strings.Join(lines, "\n"), s.codec.OutputDir()), nil, nil
}

func (s *Server) getEvent(ctx context.Context, req *mcp.CallToolRequest, args eventIDArgs) (*mcp.CallToolResult, any, error) {
	event, err := s.store.Get(args.ID)
	if err != nil {
		return nil, nil, err
	}
	if event == nil {
		return textResult("Event with ID %d not found.", args.ID), nil, nil
	}

	return textResult("Event Details:\n\nID: %d\nTitle: %s\nDescription: %s\nLocation: %s\nStart: %s%s\nEnd: %s%s\nAll Day: %s\nTags: %s\nStatus: %s\nCreated: %s\nUpdated: %s",
		event.ID, event.Title, orNA(event.Description), orNA(event.Location),
		event.StartDate, spTime(event.StartTime), event.EndDate, spTime(event.EndTime),
		yesNo(event.AllDay), orNA(event.Tags), event.Status, event.CreatedAt, event.UpdatedAt), nil, nil
}

func (s *Server) updateEvent(ctx context.Context, req *mcp.CallToolRequest, args updateEventArgs) (*mcp.CallToolResult, any, error) {
	event, err := s.store.Update(args.ID, models.UpdateEventInput{
		Title:       args.Title,
		Description: args.Description,
		Location:    args.Location,
		StartDate:   args.StartDate,
		StartTime:   args.StartTime,
		EndDate:     args.EndDate,
		EndTime:     args.EndTime,
		AllDay:      args.AllDay,
		Content:     args.Content,
		Tags:        args.Tags,
	})
	if err != nil {
		return nil, nil, err
	}
	if event == nil {
		return textResult("Event with ID %d not found.", args.ID), nil, nil
	}

	icsPath, err := s.codec.Generate(event, ics.StatusConfirmed)
	if err != nil {
		return textResult("Event %d updated, but the ICS file could not be written: %v", event.ID, err), nil, nil
	}

	return textResult("Event updated successfully!\n\nEvent ID: %d\nTitle: %s\nDate: %s%s\n\nUpdated ICS file saved to: %s\n\nRe-import the file and your calendar app will recognize the UID and update the existing event.",
		event.ID, event.Title, event.StartDate, atTime(event.StartTime), icsPath), nil, nil
}

func (s *Server) deleteEvent(ctx context.Context, req *mcp.CallToolRequest, args eventIDArgs) (*mcp.CallToolResult, any, error) {
	event, err := s.store.Delete(args.ID)
	if err != nil {
		return nil, nil, err
	}
	if event == nil {
		return textResult("Event with ID %d not found.", args.ID), nil, nil
	}

	icsPath, err := s.codec.Generate(event, ics.StatusCancelled)
	if err != nil {
		return textResult("Event %d deleted, but the cancellation ICS could not be written: %v", args.ID, err), nil, nil
	}

	return textResult("Event deleted successfully!\n\nEvent ID: %d\nTitle: %s\n\nCancellation ICS file saved to: %s\n\nImport the file and your calendar app will recognize the UID and remove the event.",
		event.ID, event.Title, icsPath), nil, nil
}

func (s *Server) launchDashboard(ctx context.Context, req *mcp.CallToolRequest, args noArgs) (*mcp.CallToolResult, any, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to locate executable: %w", err)
	}

	cmd := exec.Command(exe, "--dashboard")
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return nil, nil, fmt.Errorf("failed to start dashboard: %w", err)
	}
	// Detach; the dashboard keeps running after this process exits.
	if err := cmd.Process.Release(); err != nil {
		return nil, nil, err
	}

	url := "http://localhost:" + s.cfg.DashboardPort
	time.AfterFunc(time.Second, func() {
		_ = browser.OpenURL(url)
	})

	return textResult("MGC Calendar Dashboard launching...\n\nDashboard URL: %s\n\nOpening in your default browser.\n\nFeatures:\n- Event list with publish tracking\n- Create, update and delete events\n- ICS download per event or for the whole calendar\n- JSON/ICS import and export", url), nil, nil
}

func atTime(t string) string {
	if t == "" {
		return ""
	}
	return " at " + t
}

func spTime(t string) string {
	if t == "" {
		return ""
	}
	return " " + t
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
