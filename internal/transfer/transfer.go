package transfer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jmurrell/mgc-calendar/internal/ics"
	"github.com/jmurrell/mgc-calendar/internal/models"
	"github.com/jmurrell/mgc-calendar/internal/store"
)

// ErrUnsupportedFormat is returned when an import payload is neither JSON
// nor a calendar document. No create is attempted in that case.
var ErrUnsupportedFormat = errors.New("unsupported import format: expected JSON or ICS")

// Porter coordinates bulk import and export between the boundary formats
// and the store.
type Porter struct {
	store *store.Store
	codec *ics.Generator
}

func NewPorter(s *store.Store, codec *ics.Generator) *Porter {
	return &Porter{store: s, codec: codec}
}

// ImportBytes sniffs the payload format and runs a batch create. The sniff
// order is fixed: a leading '{' or '[' means JSON, otherwise the presence of
// the calendar container marker means ICS, otherwise the whole import is
// rejected.
func (p *Porter) ImportBytes(raw []byte) (*store.BatchResult, error) {
	text := strings.TrimSpace(string(raw))

	var inputs []models.CreateEventInput
	switch {
	case strings.HasPrefix(text, "{"):
		var single models.CreateEventInput
		if err := json.Unmarshal([]byte(text), &single); err != nil {
			return nil, fmt.Errorf("invalid JSON payload: %w", err)
		}
		inputs = []models.CreateEventInput{single}
	case strings.HasPrefix(text, "["):
		if err := json.Unmarshal([]byte(text), &inputs); err != nil {
			return nil, fmt.Errorf("invalid JSON payload: %w", err)
		}
	case strings.Contains(text, ics.BeginCalendar):
		inputs = ics.Parse(text)
	default:
		return nil, ErrUnsupportedFormat
	}

	return p.store.ImportBatch(inputs), nil
}

// ExportJSON dumps every stored event as pretty-printed JSON.
func (p *Porter) ExportJSON() ([]byte, error) {
	events, err := p.store.ExportAll()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(events, "", "  ")
}

// ExportICS merges the already-generated per-event documents into a single
// calendar. Events whose document file is missing are omitted.
func (p *Porter) ExportICS() ([]byte, error) {
	events, err := p.store.ExportAll()
	if err != nil {
		return nil, err
	}
	combined, err := p.codec.Combined(events)
	if err != nil {
		return nil, err
	}
	return []byte(combined), nil
}
