package service

import "focusboard/internal/model"

const maxRoutineHistory = 365

// ResetDailyRoutine clears every routine item's Completed flag when the
// stored reset day differs from todayKey. The closing day is kept in the
// routine history. Todos, events and reminders are never touched. It
// reports whether a reset happened.
func ResetDailyRoutine(state *model.SessionState, todayKey string) bool {
	if state.LastResetDate == todayKey {
		return false
	}
	if state.LastResetDate != "" && len(state.DailyRoutine) > 0 {
		state.DailyRoutineHistory = append(state.DailyRoutineHistory, model.NewRoutineHistory(state.LastResetDate, state.DailyRoutine))
		if n := len(state.DailyRoutineHistory); n > maxRoutineHistory {
			state.DailyRoutineHistory = state.DailyRoutineHistory[n-maxRoutineHistory:]
		}
	}

	reset := make([]model.RoutineItem, len(state.DailyRoutine))
	for i, item := range state.DailyRoutine {
		item.Completed = false
		reset[i] = item
	}
	state.DailyRoutine = reset
	state.LastResetDate = todayKey
	return true
}
