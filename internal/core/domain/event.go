package domain

import (
	"fmt"
	"sort"
	"time"
)

// DateLayout is the calendar day format used across the portal.
const DateLayout = "2006-01-02"

// EventType classifies a calendar entry.
type EventType string

const (
	EventHoliday  EventType = "feriado"
	EventPayment  EventType = "pagamento"
	EventMeeting  EventType = "reuniao"
	EventTraining EventType = "treinamento"
	EventOther    EventType = "outro"
)

// ParseEventType validates a raw event type.
func ParseEventType(s string) (EventType, error) {
	switch t := EventType(s); t {
	case EventHoliday, EventPayment, EventMeeting, EventTraining, EventOther:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, s)
}

// Event is an entry on the company calendar.
type Event struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Date        string    `json:"date" bson:"date"` // YYYY-MM-DD
	Type        EventType `json:"type" bson:"type"`
	Color       string    `json:"color" bson:"color"`
	CreatedBy   string    `json:"created_by" bson:"created_by"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	CompanyID   string    `json:"company_id,omitempty" bson:"company_id,omitempty"`
	Audience    `bson:",inline"`
}

func (e Event) EntityID() string { return e.ID }

// Month returns the calendar month of the event, or 0 when Date is malformed.
func (e Event) Month() time.Month {
	d, err := time.Parse(DateLayout, e.Date)
	if err != nil {
		return 0
	}
	return d.Month()
}

// SortEventsByDate orders events chronologically; the sort is stable so
// events on the same day keep their relative order.
func SortEventsByDate(events []Event) []Event {
	out := make([]Event, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// EventsByDate groups events by their YYYY-MM-DD date.
func EventsByDate(events []Event) map[string][]Event {
	out := make(map[string][]Event)
	for _, e := range events {
		out[e.Date] = append(out[e.Date], e)
	}
	return out
}

var eventColors = map[EventType]string{
	EventHoliday:  "#EF4444",
	EventPayment:  "#10B981",
	EventMeeting:  "#3B82F6",
	EventTraining: "#F59E0B",
	EventOther:    "#6B7280",
}

// DefaultColor is the badge color used when an event is saved without one.
func (t EventType) DefaultColor() string {
	return eventColors[t]
}
