package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/jmurrell/mgc-calendar/internal/mcpserver"
	"github.com/jmurrell/mgc-calendar/internal/server"
	"github.com/joho/godotenv"
)

func main() {
	// A .env file is optional for a local tool; environment variables win.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			log.Fatal("Error loading .env file")
		}
	}

	dashboard := flag.Bool("dashboard", false, "run the web dashboard instead of the MCP server")
	flag.Parse()

	if *dashboard {
		if err := server.Start(); err != nil {
			log.Fatalf("Dashboard failed to start: %v", err)
		}
		return
	}

	if err := mcpserver.Run(context.Background()); err != nil {
		log.Fatalf("MCP server failed: %v", err)
	}
}
