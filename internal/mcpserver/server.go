package mcpserver

import (
	"context"
	"fmt"

	"github.com/jmurrell/mgc-calendar/config"
	"github.com/jmurrell/mgc-calendar/internal/ics"
	"github.com/jmurrell/mgc-calendar/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server exposes the calendar over the Model Context Protocol on stdio.
// Every mutating tool pairs the store call with an interchange document
// write, matching what the dashboard does.
type Server struct {
	cfg   *config.Config
	store *store.Store
	codec *ics.Generator
}

// Run initializes the store, registers the tools and serves stdio until the
// client disconnects.
func Run(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	codec, err := ics.NewGenerator(cfg.ICSDir())
	if err != nil {
		return fmt.Errorf("failed to prepare ICS directory: %v", err)
	}

	s := &Server{
		cfg:   cfg,
		store: store.New(db),
		codec: codec,
	}

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "mgc-calendar",
		Version: "1.1.0",
	}, nil)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "create_event",
		Description: "Create a new calendar event. Generates an ICS file that can be imported into any calendar application.",
	}, s.createEvent)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_events",
		Description: "List all tracked calendar events",
	}, s.listEvents)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_event",
		Description: "Get details of a specific event by ID",
	}, s.getEvent)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "update_event",
		Description: "Update an existing event. Generates a new ICS file with updated information.",
	}, s.updateEvent)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "delete_event",
		Description: "Delete an event. Generates a cancellation ICS file.",
	}, s.deleteEvent)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "launch_dashboard",
		Description: "Launch the MGC Calendar web dashboard and open it in the default browser.",
	}, s.launchDashboard)

	return srv.Run(ctx, &mcp.StdioTransport{})
}

func textResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
	}
}
