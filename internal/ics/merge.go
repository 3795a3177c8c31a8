package ics

import (
	"os"
	"strings"

	"github.com/jmurrell/mgc-calendar/internal/models"
)

// Merge folds every event block from each input document into one combined
// calendar container. Inputs without any event block contribute nothing.
func Merge(contents []string) string {
	var b strings.Builder
	b.WriteString(BeginCalendar + "\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:" + productID + "\r\n")
	b.WriteString("CALSCALE:GREGORIAN\r\n")

	for _, content := range contents {
		for _, block := range extractEventBlocks(content) {
			b.WriteString(block + "\r\n")
		}
	}

	b.WriteString(endCalendar + "\r\n")
	return b.String()
}

// Combined merges the on-disk documents of the given events. Events whose
// document is missing (already deleted, or imported and never regenerated)
// are skipped without error.
func (g *Generator) Combined(events []models.Event) (string, error) {
	contents := make([]string, 0, len(events))
	for _, event := range events {
		data, err := os.ReadFile(g.PathFor(event.UID))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", err
		}
		contents = append(contents, string(data))
	}
	return Merge(contents), nil
}

func extractEventBlocks(content string) []string {
	blocks := []string{}
	rest := content
	for {
		start := strings.Index(rest, beginEvent)
		if start == -1 {
			break
		}
		end := strings.Index(rest[start:], endEvent)
		if end == -1 {
			break
		}
		end += start + len(endEvent)
		blocks = append(blocks, strings.TrimRight(rest[start:end], "\r\n"))
		rest = rest[end:]
	}
	return blocks
}
