package model

import "time"

const DefaultSoundVolume = 0.7

// CalendarAuth is the persisted Google Calendar connection.
type CalendarAuth struct {
	IsConnected  bool       `json:"isConnected"`
	AccessToken  string     `json:"accessToken,omitempty"`
	RefreshToken string     `json:"refreshToken,omitempty"`
	TokenType    string     `json:"tokenType,omitempty"`
	TokenExpiry  *time.Time `json:"tokenExpiry,omitempty"`
	UserEmail    string     `json:"userEmail,omitempty"`
	LastSync     *time.Time `json:"lastSync,omitempty"`
}

// CalendarData holds mirrored Google events and the last sync outcome.
type CalendarData struct {
	Auth      CalendarAuth `json:"auth"`
	Events    []Event      `json:"events"`
	LastFetch *time.Time   `json:"lastFetch,omitempty"`
	Error     string       `json:"error,omitempty"`
}

// SessionState is everything persisted for the dashboard, stored as one blob.
type SessionState struct {
	DailyRoutine        []RoutineItem    `json:"dailyRoutine"`
	Todos               []Todo           `json:"todos"`
	Events              []Event          `json:"events"`
	Reminders           []Reminder       `json:"reminders"`
	Moods               []MoodEntry      `json:"moods,omitempty"`
	DailyRoutineHistory []RoutineHistory `json:"dailyRoutineHistory,omitempty"`
	TodoCompletions     []TodoCompletion `json:"todoCompletions,omitempty"`
	GoogleCalendar      *CalendarData    `json:"googleCalendar,omitempty"`
	LastResetDate       string           `json:"lastResetDate"`
	SoundEnabled        *bool            `json:"soundEnabled,omitempty"`
	SoundVolume         *float64         `json:"soundVolume,omitempty"`
	IsDarkMode          bool             `json:"isDarkMode"`
	LastUpdated         string           `json:"lastUpdated"`
}

// ApplyDefaults fills optional fields missing from older blobs.
func (s *SessionState) ApplyDefaults() {
	if s.SoundEnabled == nil {
		on := true
		s.SoundEnabled = &on
	}
	if s.SoundVolume == nil {
		v := DefaultSoundVolume
		s.SoundVolume = &v
	}
	if s.GoogleCalendar == nil {
		s.GoogleCalendar = &CalendarData{}
	}
	if s.DailyRoutine == nil {
		s.DailyRoutine = []RoutineItem{}
	}
	if s.Todos == nil {
		s.Todos = []Todo{}
	}
	if s.Events == nil {
		s.Events = []Event{}
	}
	if s.Reminders == nil {
		s.Reminders = []Reminder{}
	}
}

func (s SessionState) Sound() bool {
	return s.SoundEnabled == nil || *s.SoundEnabled
}

func (s SessionState) Volume() float64 {
	if s.SoundVolume == nil {
		return DefaultSoundVolume
	}
	return *s.SoundVolume
}
