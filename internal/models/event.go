package models

const (
	StatusScheduled = "scheduled"
	StatusPublished = "published"
)

// Event is a single calendar entry. Column names keep the original
// camelCase schema so the stored database stays compatible with the
// dashboard API field names.
type Event struct {
	ID            int     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UID           string  `gorm:"column:uid;uniqueIndex;not null" json:"uid"`
	Title         string  `gorm:"column:title;not null" json:"title"`
	Description   string  `gorm:"column:description;default:''" json:"description"`
	Location      string  `gorm:"column:location;default:''" json:"location"`
	StartDate     string  `gorm:"column:startDate;not null" json:"startDate"`
	EndDate       string  `gorm:"column:endDate;not null" json:"endDate"`
	StartTime     string  `gorm:"column:startTime;default:''" json:"startTime"`
	EndTime       string  `gorm:"column:endTime;default:''" json:"endTime"`
	AllDay        bool    `gorm:"column:allDay;default:false" json:"allDay"`
	Content       string  `gorm:"column:content;default:''" json:"content"`
	Tags          string  `gorm:"column:tags;default:''" json:"tags"`
	Status        string  `gorm:"column:status;default:scheduled" json:"status"`
	PublishedDate *string `gorm:"column:publishedDate" json:"publishedDate"`
	CreatedAt     string  `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt     string  `gorm:"column:updatedAt" json:"updatedAt"`
}

func (Event) TableName() string {
	return "events"
}

// CreateEventInput carries the caller-supplied fields for a new event.
// Title and StartDate are required; everything else defaults in the store.
type CreateEventInput struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Location      string  `json:"location"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	AllDay        bool    `json:"allDay"`
	Content       string  `json:"content"`
	Tags          string  `json:"tags"`
	Status        string  `json:"status"`
	PublishedDate *string `json:"publishedDate"`
}

// UpdateEventInput is a partial update: nil fields keep their stored value.
type UpdateEventInput struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Location      *string `json:"location"`
	StartDate     *string `json:"startDate"`
	EndDate       *string `json:"endDate"`
	StartTime     *string `json:"startTime"`
	EndTime       *string `json:"endTime"`
	AllDay        *bool   `json:"allDay"`
	Content       *string `json:"content"`
	Tags          *string `json:"tags"`
	Status        *string `json:"status"`
	PublishedDate *string `json:"publishedDate"`
}
