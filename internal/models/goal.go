// ABOUTME: Goal model and progress computation for fitness targets.
// ABOUTME: Progress derives from the workout set; completion is monotonic.
package models

import (
	"fmt"
	"math"
	"time"
)

// TargetType identifies what a goal measures.
type TargetType string

const (
	TargetCalories  TargetType = "calories"
	TargetDuration  TargetType = "duration"
	TargetFrequency TargetType = "frequency"
)

// AllTargetTypes returns the valid goal target types.
var AllTargetTypes = []TargetType{TargetCalories, TargetDuration, TargetFrequency}

// IsValidTargetType checks if a string is a valid goal target type.
func IsValidTargetType(s string) bool {
	for _, tt := range AllTargetTypes {
		if string(tt) == s {
			return true
		}
	}
	return false
}

// Goal represents a fitness target evaluated against the workout set.
// WorkoutType narrows frequency goals to one workout type; it is
// ignored for calorie and duration targets.
type Goal struct {
	ID          int64      `json:"id"`
	ProfileID   int64      `json:"profileId"`
	Title       string     `json:"title"`
	TargetType  TargetType `json:"targetType"`
	TargetValue float64    `json:"targetValue"`
	WorkoutType string     `json:"workoutType,omitempty"`
	Deadline    string     `json:"deadline"`
	Completed   bool       `json:"completed"`
}

// NewGoal creates a Goal with a timestamp-derived ID.
func NewGoal(profileID int64, title string, targetType TargetType, targetValue float64, deadline string) *Goal {
	return &Goal{
		ID:          NewID(),
		ProfileID:   profileID,
		Title:       title,
		TargetType:  targetType,
		TargetValue: targetValue,
		Deadline:    deadline,
	}
}

// WithWorkoutType restricts a frequency goal to one workout type.
func (g *Goal) WithWorkoutType(workoutType string) *Goal {
	g.WorkoutType = workoutType
	return g
}

// Validate checks the goal for storable field values.
func (g *Goal) Validate() error {
	if g.ID == 0 {
		return fmt.Errorf("goal: missing id")
	}
	if !IsValidTargetType(string(g.TargetType)) {
		return fmt.Errorf("goal: unknown target type %q", g.TargetType)
	}
	if g.TargetValue <= 0 {
		return fmt.Errorf("goal: target value must be positive")
	}
	if g.Deadline != "" {
		if _, err := time.Parse(DateFormat, g.Deadline); err != nil {
			return fmt.Errorf("goal: invalid deadline %q", g.Deadline)
		}
	}
	return nil
}

// Progress returns goal completion as a percentage capped at 100.
// A completed goal always reports 100 regardless of the workout set.
func (g *Goal) Progress(workouts []Workout) int {
	if g.Completed {
		return 100
	}
	if g.TargetValue <= 0 {
		return 0
	}

	var current float64
	switch g.TargetType {
	case TargetCalories:
		for _, w := range workouts {
			current += float64(w.Calories)
		}
	case TargetDuration:
		for _, w := range workouts {
			current += float64(w.Duration)
		}
	case TargetFrequency:
		for _, w := range workouts {
			if g.WorkoutType == "" || w.Type == g.WorkoutType {
				current++
			}
		}
	}

	pct := int(math.Round(current / g.TargetValue * 100))
	if pct > 100 {
		pct = 100
	}
	return pct
}

// DaysLeft returns whole days until the deadline, negative when past.
func (g *Goal) DaysLeft(now time.Time) int {
	deadline, err := time.Parse(DateFormat, g.Deadline)
	if err != nil {
		return 0
	}
	return int(math.Ceil(deadline.Sub(now).Hours() / 24))
}
