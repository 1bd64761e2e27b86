package model

// RoutineItem is an entry of the daily checklist; Completed is cleared every day.
type RoutineItem struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// RoutineHistory is the state of the checklist at the end of a day.
type RoutineHistory struct {
	Date           string        `json:"date"`
	Tasks          []RoutineItem `json:"tasks"`
	CompletionRate float64       `json:"completionRate"`
	CompletedCount int           `json:"completedCount"`
	TotalCount     int           `json:"totalCount"`
}

// NewRoutineHistory snapshots items for the given day-key.
func NewRoutineHistory(date string, items []RoutineItem) RoutineHistory {
	tasks := make([]RoutineItem, len(items))
	copy(tasks, items)

	done := 0
	for _, item := range items {
		if item.Completed {
			done++
		}
	}
	rate := 0.0
	if len(items) > 0 {
		rate = float64(done) / float64(len(items))
	}
	return RoutineHistory{
		Date:           date,
		Tasks:          tasks,
		CompletionRate: rate,
		CompletedCount: done,
		TotalCount:     len(items),
	}
}
