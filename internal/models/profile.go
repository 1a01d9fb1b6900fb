// ABOUTME: Profile registry and per-profile health profile models.
// ABOUTME: Weight history is kept date-unique and sorted ascending.
package models

import (
	"fmt"
	"sort"
	"time"
)

// DefaultProfileID is the profile auto-created on first run. Records
// from the pre-profile storage layout are migrated under this ID.
const DefaultProfileID int64 = 1

// Profile is a registry row identifying one isolated data partition.
type Profile struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

// NewProfile creates a registry entry with a timestamp-derived ID.
func NewProfile(name string) *Profile {
	return &Profile{
		ID:        NewID(),
		Name:      name,
		CreatedAt: time.Now().Format(time.RFC3339),
	}
}

// DefaultProfile returns the profile created on first run.
func DefaultProfile() *Profile {
	p := NewProfile("Default")
	p.ID = DefaultProfileID
	return p
}

// WeightEntry is one dated point in a profile's weight history.
type WeightEntry struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

// Measurements holds optional body measurements in centimeters.
type Measurements struct {
	Chest  float64 `json:"chest,omitempty"`
	Waist  float64 `json:"waist,omitempty"`
	Hips   float64 `json:"hips,omitempty"`
	Biceps float64 `json:"biceps,omitempty"`
}

// UserProfile is the health profile for one registry profile. It is
// stored wholesale: every save writes the complete record.
type UserProfile struct {
	ID               int64         `json:"id"`
	Name             string        `json:"name"`
	Weight           float64       `json:"weight"`
	Height           float64       `json:"height"`
	Age              int           `json:"age"`
	Gender           string        `json:"gender"`
	ActivityLevel    string        `json:"activityLevel"`
	CalorieTarget    int           `json:"calorieTarget"`
	RestingHeartRate int           `json:"restingHeartRate"`
	Units            string        `json:"units"`
	Language         string        `json:"language"`
	Privacy          string        `json:"privacy"`
	InitialWeight    float64       `json:"initialWeight"`
	WeightGoal       float64       `json:"weightGoal"`
	WeightGoalDate   string        `json:"weightGoalDate,omitempty"`
	WeightHistory    []WeightEntry `json:"weightHistory"`
	Measurements     Measurements  `json:"measurements"`
}

// DefaultUserProfile returns the health profile materialized the first
// time a profile's data is loaded.
func DefaultUserProfile(profileID int64, name string) *UserProfile {
	return &UserProfile{
		ID:            profileID,
		Name:          name,
		ActivityLevel: ActivityModerate,
		Units:         "metric",
		Language:      "en",
		Privacy:       "private",
		WeightHistory: []WeightEntry{},
	}
}

// Validate checks the health profile for storable field values.
func (p *UserProfile) Validate() error {
	if p.ID == 0 {
		return fmt.Errorf("profile: missing id")
	}
	if p.Weight < 0 || p.Height < 0 || p.Age < 0 {
		return fmt.Errorf("profile: negative body measurement")
	}
	if p.ActivityLevel != "" {
		if _, ok := ActivityMultipliers[p.ActivityLevel]; !ok {
			return fmt.Errorf("profile: unknown activity level %q", p.ActivityLevel)
		}
	}
	for _, e := range p.WeightHistory {
		if _, err := time.Parse(DateFormat, e.Date); err != nil {
			return fmt.Errorf("profile: invalid weight history date %q", e.Date)
		}
	}
	return nil
}

// AddWeightEntry records a weight for a date. An existing entry for
// the same date is replaced, last write wins. History stays sorted by
// date ascending. The profile's current weight follows the newest
// entry, and the first recorded weight seeds InitialWeight.
func (p *UserProfile) AddWeightEntry(date string, weight float64) {
	replaced := false
	for i := range p.WeightHistory {
		if p.WeightHistory[i].Date == date {
			p.WeightHistory[i].Weight = weight
			replaced = true
			break
		}
	}
	if !replaced {
		p.WeightHistory = append(p.WeightHistory, WeightEntry{Date: date, Weight: weight})
	}

	sort.Slice(p.WeightHistory, func(i, j int) bool {
		return p.WeightHistory[i].Date < p.WeightHistory[j].Date
	})

	if p.InitialWeight == 0 {
		p.InitialWeight = p.WeightHistory[0].Weight
	}
	p.Weight = p.WeightHistory[len(p.WeightHistory)-1].Weight
}

// RemoveWeightEntry drops the history entry for a date, if present.
func (p *UserProfile) RemoveWeightEntry(date string) {
	kept := p.WeightHistory[:0]
	for _, e := range p.WeightHistory {
		if e.Date != date {
			kept = append(kept, e)
		}
	}
	p.WeightHistory = kept
	if len(p.WeightHistory) > 0 {
		p.Weight = p.WeightHistory[len(p.WeightHistory)-1].Weight
	}
}
