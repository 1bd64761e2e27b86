package model

import "math"

// MoodRating ranges from 1 (bad) to 5 (great).
type MoodRating int

const (
	MoodBad MoodRating = iota + 1
	MoodPoor
	MoodMeh
	MoodGood
	MoodGreat
)

var moodLabels = map[MoodRating]string{
	MoodBad:   "Bad",
	MoodPoor:  "Poor",
	MoodMeh:   "Meh",
	MoodGood:  "Good",
	MoodGreat: "Great",
}

var moodEmoji = map[MoodRating]string{
	MoodBad:   "😢",
	MoodPoor:  "😕",
	MoodMeh:   "😐",
	MoodGood:  "🙂",
	MoodGreat: "😄",
}

func (m MoodRating) Valid() bool   { return m >= MoodBad && m <= MoodGreat }
func (m MoodRating) Label() string { return moodLabels[m] }
func (m MoodRating) Emoji() string { return moodEmoji[m] }

// MoodEntry is the mood logged for a day; there is at most one per date.
type MoodEntry struct {
	Date      string     `json:"date"`
	Rating    MoodRating `json:"rating"`
	Timestamp string     `json:"timestamp"`
}

// AverageMood rounds the mean rating to the nearest label. ok is false for no entries.
func AverageMood(entries []MoodEntry) (MoodRating, bool) {
	if len(entries) == 0 {
		return 0, false
	}
	sum := 0
	for _, e := range entries {
		sum += int(e.Rating)
	}
	avg := math.Round(float64(sum) / float64(len(entries)))
	return MoodRating(avg), true
}
