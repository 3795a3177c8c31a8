package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmurrell/mgc-calendar/internal/models"
	"gorm.io/gorm"
)

const uidDomain = "mgc-calendar"

const timestampLayout = "2006-01-02 15:04:05"

// Store owns the event table. It is the only component that assigns ids and
// uids and stamps createdAt/updatedAt. A mutex serializes mutations so
// concurrent dashboard requests never interleave writes.
type Store struct {
	db  *gorm.DB
	mu  sync.Mutex
	now func() time.Time
}

// New wraps an already-migrated database handle. config.InitDatabase must
// have completed before the handle is passed in.
func New(db *gorm.DB) *Store {
	return &Store{
		db:  db,
		now: time.Now,
	}
}

// GenerateUID builds the stable identity token carried into the interchange
// document: current time plus randomness plus a fixed domain suffix.
func GenerateUID() string {
	random := strings.ReplaceAll(uuid.New().String(), "-", "")[:13]
	return fmt.Sprintf("mgc-event-%d-%s@%s", time.Now().UnixMilli(), random, uidDomain)
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(timestampLayout)
}

// Create validates the input, fills in defaults and persists a new event.
// The returned row carries the server-assigned id, uid and timestamps.
func (s *Store) Create(input models.CreateEventInput) (*models.Event, error) {
	if input.Title == "" {
		return nil, &ValidationError{Field: "title"}
	}
	if input.StartDate == "" {
		return nil, &ValidationError{Field: "startDate"}
	}

	endDate := input.EndDate
	if endDate == "" {
		endDate = input.StartDate
	}
	endTime := input.EndTime
	if endTime == "" {
		endTime = input.StartTime
	}
	status := input.Status
	if status == "" {
		status = models.StatusScheduled
	}

	now := s.timestamp()
	event := models.Event{
		UID:           GenerateUID(),
		Title:         input.Title,
		Description:   input.Description,
		Location:      input.Location,
		StartDate:     input.StartDate,
		EndDate:       endDate,
		StartTime:     input.StartTime,
		EndTime:       endTime,
		AllDay:        input.AllDay,
		Content:       input.Content,
		Tags:          input.Tags,
		Status:        status,
		PublishedDate: input.PublishedDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Create(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// Get looks up an event by id. A missing id is not an error: the result is
// simply nil.
func (s *Store) Get(id int) (*models.Event, error) {
	var event models.Event
	if err := s.db.Where("id = ?", id).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

// List returns every event, newest start first, ties broken by start time
// and then insertion order.
func (s *Store) List() ([]models.Event, error) {
	events := []models.Event{}
	err := s.db.Order("startDate DESC, startTime DESC, id ASC").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// Update overwrites only the fields present in the input and refreshes
// updatedAt. Returns nil without error when the id is unknown.
func (s *Store) Update(id int, input models.UpdateEventInput) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.Get(id)
	if err != nil || existing == nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Location != nil {
		updates["location"] = *input.Location
	}
	if input.StartDate != nil {
		updates["startDate"] = *input.StartDate
	}
	if input.EndDate != nil {
		updates["endDate"] = *input.EndDate
	}
	if input.StartTime != nil {
		updates["startTime"] = *input.StartTime
	}
	if input.EndTime != nil {
		updates["endTime"] = *input.EndTime
	}
	if input.AllDay != nil {
		updates["allDay"] = *input.AllDay
	}
	if input.Content != nil {
		updates["content"] = *input.Content
	}
	if input.Tags != nil {
		updates["tags"] = *input.Tags
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.PublishedDate != nil {
		updates["publishedDate"] = *input.PublishedDate
	}
	updates["updatedAt"] = s.timestamp()

	if err := s.db.Model(&models.Event{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.Get(id)
}

// Delete removes the row and returns it as it was just before removal, so
// the caller can still write a cancellation document for its uid.
func (s *Store) Delete(id int) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, err := s.Get(id)
	if err != nil || event == nil {
		return nil, err
	}

	if err := s.db.Where("id = ?", id).Delete(&models.Event{}).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// MarkPublished flips the event to published and stamps publishedDate.
// Calling it again on a published event just refreshes the timestamps.
func (s *Store) MarkPublished(id int) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, err := s.Get(id)
	if err != nil || event == nil {
		return nil, err
	}

	now := s.timestamp()
	updates := map[string]interface{}{
		"status":        models.StatusPublished,
		"publishedDate": now,
		"updatedAt":     now,
	}
	if err := s.db.Model(&models.Event{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

// ImportBatch attempts to create every input independently. One bad item
// does not abort the batch and already-created items stay created. Failures
// are labeled with the submitted title, which may be empty when the title
// itself was the missing field.
func (s *Store) ImportBatch(inputs []models.CreateEventInput) *BatchResult {
	result := &BatchResult{Errors: []string{}}
	for _, input := range inputs {
		if _, err := s.Create(input); err != nil {
			result.FailureCount++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", input.Title, err))
			continue
		}
		result.SuccessCount++
	}
	return result
}

// ExportAll is List under its boundary name: callers pair it with document
// serialization rather than querying it internally.
func (s *Store) ExportAll() ([]models.Event, error) {
	return s.List()
}
