// ABOUTME: Tests for backend data copying and the legacy-layout migration.
// ABOUTME: Pre-profile records must end up scoped under the default profile.
package storage

import (
	"strings"
	"testing"

	"github.com/fittrack/fittrack/internal/kvdb"
	"github.com/fittrack/fittrack/internal/models"
)

func TestCopyDataBetweenBackends(t *testing.T) {
	src := setupFlatStore(t)
	if err := src.SaveProfiles([]models.Profile{
		{ID: 1, Name: "Default"}, {ID: 2, Name: "Anna"},
	}); err != nil {
		t.Fatalf("SaveProfiles failed: %v", err)
	}
	src.SaveWorkouts([]models.Workout{
		{ID: 101, Date: "2026-08-01", Type: "run", Calories: 320},
		{ID: 102, Date: "2026-08-02", Type: "lift", Calories: 280},
	}, 1)
	src.SaveWorkouts([]models.Workout{
		{ID: 201, Date: "2026-08-01", Type: "swim", Calories: 500},
	}, 2)
	src.SaveGoals([]models.Goal{
		{ID: 301, Title: "burn", TargetType: models.TargetCalories, TargetValue: 5000},
	}, 1)
	src.SaveUserProfile(models.DefaultUserProfile(2, "Anna"))

	dst := setupBadgerStore(t)
	summary, err := CopyData(src, dst)
	if err != nil {
		t.Fatalf("CopyData failed: %v", err)
	}

	if summary.Profiles != 2 || summary.Workouts != 3 || summary.Goals != 1 {
		t.Errorf("summary = %+v, want 2 profiles, 3 workouts, 1 goal", summary)
	}

	got1, _ := dst.LoadWorkouts(1)
	if len(got1) != 2 {
		t.Errorf("profile 1 workouts = %d, want 2", len(got1))
	}
	got2, _ := dst.LoadWorkouts(2)
	if len(got2) != 1 || got2[0].Type != "swim" {
		t.Errorf("profile 2 workouts = %+v, want the swim", got2)
	}
	profile, _ := dst.LoadUserProfile(2)
	if profile == nil {
		t.Error("user profile not copied")
	}
}

// writeLegacyLayout creates the pre-profile on-disk layout: schema
// version 1, plain id keys, no profileId field on records.
func writeLegacyLayout(t *testing.T, dir string) {
	t.Helper()
	schema := DefaultSchema()
	schema.Version = 1

	db, err := kvdb.Open(dir, schema)
	if err != nil {
		t.Fatalf("failed to open legacy db: %v", err)
	}
	records := map[string]string{
		"101": `{"id":101,"date":"2026-08-01","type":"run","duration":30,"calories":320,"completed":true}`,
		"102": `{"id":102,"date":"2026-08-02","type":"lift","duration":45,"calories":280,"completed":true}`,
	}
	for key, rec := range records {
		if err := db.Put("workouts", key, []byte(rec)); err != nil {
			t.Fatalf("failed to write legacy workout: %v", err)
		}
	}
	if err := db.Put("goals", "301",
		[]byte(`{"id":301,"title":"burn","targetType":"calories","targetValue":5000,"deadline":""}`)); err != nil {
		t.Fatalf("failed to write legacy goal: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("failed to close legacy db: %v", err)
	}
}

func TestLegacyRecordsMigrateToDefaultProfile(t *testing.T) {
	dir := t.TempDir()
	writeLegacyLayout(t, dir)

	store, err := OpenBadger(dir)
	if err != nil {
		t.Fatalf("OpenBadger failed: %v", err)
	}
	defer store.Close()

	workouts, err := store.LoadWorkouts(models.DefaultProfileID)
	if err != nil {
		t.Fatalf("LoadWorkouts failed: %v", err)
	}
	if len(workouts) != 2 {
		t.Fatalf("migrated workouts = %d, want 2", len(workouts))
	}
	for _, w := range workouts {
		if w.ProfileID != models.DefaultProfileID {
			t.Errorf("workout %d ProfileID = %d, want %d", w.ID, w.ProfileID, models.DefaultProfileID)
		}
	}

	goals, err := store.LoadGoals(models.DefaultProfileID)
	if err != nil {
		t.Fatalf("LoadGoals failed: %v", err)
	}
	if len(goals) != 1 || goals[0].ProfileID != models.DefaultProfileID {
		t.Errorf("migrated goals = %+v, want goal 301 under default profile", goals)
	}
}

func TestMigrationRunsOnce(t *testing.T) {
	dir := t.TempDir()
	writeLegacyLayout(t, dir)

	store, err := OpenBadger(dir)
	if err != nil {
		t.Fatalf("OpenBadger failed: %v", err)
	}
	// Add a record for another profile, then reopen
	store.SaveWorkouts([]models.Workout{
		{ID: 201, Date: "2026-08-03", Type: "swim", Calories: 500},
	}, 2)
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := OpenBadger(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	// Already-current layout is untouched on the second open
	def, _ := reopened.LoadWorkouts(models.DefaultProfileID)
	if len(def) != 2 {
		t.Errorf("default profile workouts = %d, want 2", len(def))
	}
	other, _ := reopened.LoadWorkouts(2)
	if len(other) != 1 {
		t.Errorf("profile 2 workouts = %d, want 1", len(other))
	}
}

func TestScopedKeyLayout(t *testing.T) {
	if got := scopedKey(1, 101); got != "1/101" {
		t.Errorf("scopedKey = %s, want 1/101", got)
	}
	if got := scopePrefix(12); got != "12/" {
		t.Errorf("scopePrefix = %s, want 12/", got)
	}
	// Prefix for profile 1 must not match profile 12's keys
	if strings.HasPrefix(scopedKey(12, 5), scopePrefix(1)) {
		t.Error("profile 1 prefix matches profile 12 keys")
	}
}
