package model

import "time"

// Contact is a person the user wants to keep in touch with.
type Contact struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	LastContactDate time.Time `json:"lastContactDate"`
}

type Urgency string

const (
	UrgencyToday     Urgency = "today"
	UrgencyWeek      Urgency = "week"
	UrgencyFortnight Urgency = "fortnight"
	UrgencyMonth     Urgency = "month"
	UrgencyOverdue   Urgency = "overdue"
)

// DaysSince returns whole days between the last contact and now.
func (c Contact) DaysSince(now time.Time) int {
	diff := now.Sub(c.LastContactDate)
	if diff < 0 {
		diff = -diff
	}
	return int(diff / (24 * time.Hour))
}

func UrgencyFor(days int) Urgency {
	switch {
	case days == 0:
		return UrgencyToday
	case days <= 7:
		return UrgencyWeek
	case days <= 14:
		return UrgencyFortnight
	case days <= 30:
		return UrgencyMonth
	default:
		return UrgencyOverdue
	}
}
