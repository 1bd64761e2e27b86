package model

import (
	"strings"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority accepts low, medium or high in any case.
func ParsePriority(raw string) (Priority, bool) {
	switch Priority(strings.ToLower(strings.TrimSpace(raw))) {
	case PriorityLow:
		return PriorityLow, true
	case PriorityMedium:
		return PriorityMedium, true
	case PriorityHigh:
		return PriorityHigh, true
	default:
		return "", false
	}
}

// Todo is a single open-ended task.
type Todo struct {
	ID        int      `json:"id"`
	Text      string   `json:"text"`
	Priority  Priority `json:"priority"`
	Completed bool     `json:"completed"`
}

// TodoCompletion records a todo the moment it was checked off.
type TodoCompletion struct {
	ID            int      `json:"id"`
	Text          string   `json:"text"`
	Priority      Priority `json:"priority"`
	CompletedAt   string   `json:"completedAt"`
	CompletedDate string   `json:"completedDate"`
}
