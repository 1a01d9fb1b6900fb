// ABOUTME: Tests for the profile registry and health profile models.
// ABOUTME: Focuses on weight history date uniqueness and ordering.
package models

import "testing"

func TestNewProfile(t *testing.T) {
	p := NewProfile("Anna")

	if p.ID == 0 {
		t.Error("expected ID to be set")
	}
	if p.Name != "Anna" {
		t.Errorf("Name = %s, want Anna", p.Name)
	}
	if p.CreatedAt == "" {
		t.Error("expected CreatedAt to be set")
	}
}

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()
	if p.ID != DefaultProfileID {
		t.Errorf("ID = %d, want %d", p.ID, DefaultProfileID)
	}
	if p.Name != "Default" {
		t.Errorf("Name = %s, want Default", p.Name)
	}
}

func TestAddWeightEntrySortsAscending(t *testing.T) {
	p := DefaultUserProfile(1, "Default")
	p.AddWeightEntry("2026-08-03", 81.5)
	p.AddWeightEntry("2026-08-01", 82.5)
	p.AddWeightEntry("2026-08-02", 82.0)

	if len(p.WeightHistory) != 3 {
		t.Fatalf("history length = %d, want 3", len(p.WeightHistory))
	}
	for i, want := range []string{"2026-08-01", "2026-08-02", "2026-08-03"} {
		if p.WeightHistory[i].Date != want {
			t.Errorf("history[%d].Date = %s, want %s", i, p.WeightHistory[i].Date, want)
		}
	}
}

func TestAddWeightEntryReplacesSameDate(t *testing.T) {
	p := DefaultUserProfile(1, "Default")
	p.AddWeightEntry("2026-08-01", 82.5)
	p.AddWeightEntry("2026-08-01", 81.9)

	if len(p.WeightHistory) != 1 {
		t.Fatalf("history length = %d, want 1", len(p.WeightHistory))
	}
	if p.WeightHistory[0].Weight != 81.9 {
		t.Errorf("Weight = %.1f, want 81.9 (last write wins)", p.WeightHistory[0].Weight)
	}
}

func TestWeightEntryUpdatesCurrentAndInitial(t *testing.T) {
	p := DefaultUserProfile(1, "Default")
	p.AddWeightEntry("2026-08-01", 82.5)
	p.AddWeightEntry("2026-08-10", 81.0)

	if p.InitialWeight != 82.5 {
		t.Errorf("InitialWeight = %.1f, want 82.5", p.InitialWeight)
	}
	if p.Weight != 81.0 {
		t.Errorf("Weight = %.1f, want 81.0 (newest entry)", p.Weight)
	}

	// Backfilling an older date must not change the current weight
	p.AddWeightEntry("2026-07-01", 84.0)
	if p.Weight != 81.0 {
		t.Errorf("Weight = %.1f, want 81.0 after backfill", p.Weight)
	}
}

func TestRemoveWeightEntry(t *testing.T) {
	p := DefaultUserProfile(1, "Default")
	p.AddWeightEntry("2026-08-01", 82.5)
	p.AddWeightEntry("2026-08-10", 81.0)

	p.RemoveWeightEntry("2026-08-10")
	if len(p.WeightHistory) != 1 {
		t.Fatalf("history length = %d, want 1", len(p.WeightHistory))
	}
	if p.Weight != 82.5 {
		t.Errorf("Weight = %.1f, want 82.5 after removing newest", p.Weight)
	}

	// Removing an absent date is a no-op
	p.RemoveWeightEntry("2026-01-01")
	if len(p.WeightHistory) != 1 {
		t.Errorf("history length = %d, want 1", len(p.WeightHistory))
	}
}

func TestUserProfileValidate(t *testing.T) {
	p := DefaultUserProfile(1, "Default")
	if err := p.Validate(); err != nil {
		t.Errorf("default profile rejected: %v", err)
	}

	p.ActivityLevel = "extreme"
	if err := p.Validate(); err == nil {
		t.Error("expected error for unknown activity level")
	}

	p.ActivityLevel = ActivityModerate
	p.Weight = -1
	if err := p.Validate(); err == nil {
		t.Error("expected error for negative weight")
	}
}
