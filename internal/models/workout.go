// ABOUTME: Workout model for exercise session tracking.
// ABOUTME: Records are profile-scoped and identified by creation timestamps.
package models

import (
	"fmt"
	"time"
)

// DateFormat is the canonical date layout for workout and weight records.
const DateFormat = "2006-01-02"

// Workout represents a single exercise session belonging to a profile.
type Workout struct {
	ID        int64  `json:"id"`
	ProfileID int64  `json:"profileId"`
	Date      string `json:"date"`
	Type      string `json:"type"`
	Duration  int    `json:"duration"`
	Calories  int    `json:"calories"`
	Notes     string `json:"notes,omitempty"`
	Completed bool   `json:"completed"`
}

// NewWorkout creates a Workout dated today with a timestamp-derived ID.
func NewWorkout(profileID int64, workoutType string, duration, calories int) *Workout {
	return &Workout{
		ID:        NewID(),
		ProfileID: profileID,
		Date:      time.Now().Format(DateFormat),
		Type:      workoutType,
		Duration:  duration,
		Calories:  calories,
		Completed: true,
	}
}

// WithDate sets a custom workout date.
func (w *Workout) WithDate(date string) *Workout {
	w.Date = date
	return w
}

// WithNotes sets notes on the workout.
func (w *Workout) WithNotes(notes string) *Workout {
	w.Notes = notes
	return w
}

// Validate checks the workout for storable field values.
func (w *Workout) Validate() error {
	if w.ID == 0 {
		return fmt.Errorf("workout: missing id")
	}
	if w.Type == "" {
		return fmt.Errorf("workout: missing type")
	}
	if _, err := time.Parse(DateFormat, w.Date); err != nil {
		return fmt.Errorf("workout: invalid date %q", w.Date)
	}
	if w.Duration < 0 {
		return fmt.Errorf("workout: negative duration")
	}
	if w.Calories < 0 {
		return fmt.Errorf("workout: negative calories")
	}
	return nil
}

// NewID returns a millisecond-timestamp identifier, matching the
// creation-time IDs the records have always carried.
func NewID() int64 {
	return time.Now().UnixMilli()
}
