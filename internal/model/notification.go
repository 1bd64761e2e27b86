package model

// Sound names the cue a delivery channel may play with a notification.
type Sound string

const (
	SoundNone           Sound = ""
	SoundReminderGentle Sound = "reminder-gentle"
	SoundEventWarning   Sound = "event-warning"
	SoundTimerDone      Sound = "timer-done"
)

const (
	ReminderTitle = "Gentle reminder 💜"
	EventTitle    = "Upcoming Event 📅"
	TimerTitle    = "Time for a break! Great job focusing! 🎉"
)

// Notification is an ephemeral in-app alert. ID is the creation time in
// milliseconds.
type Notification struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Sound   Sound  `json:"sound,omitempty"`
}
