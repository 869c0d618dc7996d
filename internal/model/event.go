package model

import (
	"time"

	"github.com/google/uuid"
)

// EventStatus 活動狀態
type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
	EventStatusCancelled EventStatus = "cancelled"
)

// IsValid 驗證狀態是否有效
func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusDraft, EventStatusPublished, EventStatusCancelled:
		return true
	}
	return false
}

// TicketType 活動底下的票種。固定欄位結構，不接受鬆散的 map
type TicketType struct {
	ID        int     `json:"-" db:"id"`
	EventID   int     `json:"-" db:"event_id"`
	Name      string  `json:"name" db:"name"`
	Price     float64 `json:"price" db:"price"`
	Available int     `json:"available" db:"available"`
}

type Event struct {
	ID            int          `json:"-" db:"id"`
	EventID       uuid.UUID    `json:"id" db:"event_id"`
	Title         string       `json:"title" db:"title"`
	Description   string       `json:"description" db:"description"`
	OrganizerID   int          `json:"-" db:"organizer_id"`
	OrganizerName string       `json:"organizer_name" db:"organizer_name"`
	Venue         string       `json:"venue" db:"venue"`
	Date          time.Time    `json:"date" db:"date"`
	DurationHours int          `json:"duration" db:"duration_hours"`
	Category      string       `json:"category" db:"category"`
	ImageURL      string       `json:"image_url" db:"image_url"`
	Terms         string       `json:"terms" db:"terms"`
	Status        EventStatus  `json:"status" db:"status"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at" db:"updated_at"`
	TicketTypes   []TicketType `json:"ticket_types" db:"-"`
}

// FindTicketType 依名稱找票種，重複名稱取第一個
func (e *Event) FindTicketType(name string) *TicketType {
	for i := range e.TicketTypes {
		if e.TicketTypes[i].Name == name {
			return &e.TicketTypes[i]
		}
	}
	return nil
}

// CreateEventRequest 建立/更新活動請求
type CreateEventRequest struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description" binding:"required"`
	Venue       string             `json:"venue" binding:"required"`
	Date        time.Time          `json:"date" binding:"required"`
	Duration    int                `json:"duration" binding:"required,min=1"`
	Category    string             `json:"category" binding:"required"`
	ImageURL    string             `json:"image_url" binding:"required"`
	TicketTypes []TicketTypeInput  `json:"ticket_types" binding:"required,min=1,dive"`
	Terms       string             `json:"terms" binding:"required"`
}

// TicketTypeInput 票種輸入，在邊界就驗證形狀
type TicketTypeInput struct {
	Name      string  `json:"name" binding:"required"`
	Price     float64 `json:"price" binding:"min=0"`
	Available int     `json:"available" binding:"min=0"`
}

// EventFilter 活動列表的查詢條件
type EventFilter struct {
	Category   string `form:"category"`
	Search     string `form:"search"`
	FilterType string `form:"filter_type"` // today, week, month, free, paid
}
