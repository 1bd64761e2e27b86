package model

import "time"

// Blob is a JSON document stored under a fixed name.
type Blob struct {
	Name      string `gorm:"primaryKey"`
	Value     []byte
	UpdatedAt time.Time
}

// EventAlert marks an upcoming-event warning as already shown.
type EventAlert struct {
	AlertKey  string `gorm:"primaryKey"`
	DayKey    string `gorm:"index"`
	EventID   int
	CreatedAt time.Time
}
