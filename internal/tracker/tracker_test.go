// ABOUTME: Tests for the tracker service over a real RecordStore.
// ABOUTME: Covers goal completion, profile switching, and degraded reads.
package tracker

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/fittrack/fittrack/internal/models"
	"github.com/fittrack/fittrack/internal/storage"
)

func setupTracker(t *testing.T) (*Tracker, storage.RecordStore) {
	t.Helper()
	store, err := storage.OpenFlat(filepath.Join(t.TempDir(), "flat.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	trk, err := New(store, 0)
	if err != nil {
		t.Fatalf("failed to build tracker: %v", err)
	}
	return trk, store
}

func testWorkout(id int64, date string, calories int) *models.Workout {
	w := models.NewWorkout(0, "run", 30, calories)
	w.ID = id
	w.Date = date
	return w
}

func TestFirstRunCreatesDefaultProfile(t *testing.T) {
	trk, _ := setupTracker(t)

	profiles := trk.Profiles()
	if len(profiles) != 1 {
		t.Fatalf("profiles = %d, want 1", len(profiles))
	}
	if profiles[0].ID != models.DefaultProfileID || profiles[0].Name != "Default" {
		t.Errorf("profile = %+v, want default", profiles[0])
	}
	if trk.CurrentProfileID() != models.DefaultProfileID {
		t.Errorf("current = %d, want %d", trk.CurrentProfileID(), models.DefaultProfileID)
	}
}

func TestAddWorkoutPersists(t *testing.T) {
	trk, store := setupTracker(t)

	if err := trk.AddWorkout(testWorkout(101, "2026-08-01", 320)); err != nil {
		t.Fatalf("AddWorkout failed: %v", err)
	}

	// A fresh tracker over the same store sees the workout
	reloaded, err := New(store, models.DefaultProfileID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	workouts := reloaded.Workouts()
	if len(workouts) != 1 || workouts[0].Calories != 320 {
		t.Errorf("workouts = %+v, want the persisted one", workouts)
	}
}

func TestWorkoutsSortedNewestFirst(t *testing.T) {
	trk, _ := setupTracker(t)

	trk.AddWorkout(testWorkout(101, "2026-08-01", 100))
	trk.AddWorkout(testWorkout(102, "2026-08-03", 100))
	trk.AddWorkout(testWorkout(103, "2026-08-02", 100))

	got := trk.Workouts()
	want := []string{"2026-08-03", "2026-08-02", "2026-08-01"}
	for i, date := range want {
		if got[i].Date != date {
			t.Errorf("workouts[%d].Date = %s, want %s", i, got[i].Date, date)
		}
	}
}

func TestUpdateAndDeleteWorkout(t *testing.T) {
	trk, _ := setupTracker(t)
	trk.AddWorkout(testWorkout(101, "2026-08-01", 320))

	w := trk.Workouts()[0]
	w.Calories = 400
	if err := trk.UpdateWorkout(w); err != nil {
		t.Fatalf("UpdateWorkout failed: %v", err)
	}
	if trk.Workouts()[0].Calories != 400 {
		t.Errorf("Calories = %d, want 400", trk.Workouts()[0].Calories)
	}

	if err := trk.DeleteWorkout(101); err != nil {
		t.Fatalf("DeleteWorkout failed: %v", err)
	}
	if len(trk.Workouts()) != 0 {
		t.Error("workout survived delete")
	}

	if err := trk.DeleteWorkout(999); err == nil {
		t.Error("expected error deleting absent workout")
	}
}

func TestGoalTracksCaloriesAcrossWorkouts(t *testing.T) {
	trk, _ := setupTracker(t)

	g := models.NewGoal(0, "burn", models.TargetCalories, 1000, "")
	if err := trk.AddGoal(g); err != nil {
		t.Fatalf("AddGoal failed: %v", err)
	}

	trk.AddWorkout(testWorkout(101, "2026-08-01", 500))
	trk.AddWorkout(testWorkout(102, "2026-08-02", 300))

	goals := trk.Goals()
	if goals[0].Completed {
		t.Error("goal completed at 800 of 1000")
	}
	if got := goals[0].Progress(trk.Workouts()); got != 80 {
		t.Errorf("Progress = %d, want 80", got)
	}

	trk.AddWorkout(testWorkout(103, "2026-08-03", 200))
	if !trk.Goals()[0].Completed {
		t.Error("goal not completed at 1000 of 1000")
	}
}

func TestGoalCompletionIsMonotonic(t *testing.T) {
	trk, _ := setupTracker(t)

	trk.AddGoal(models.NewGoal(0, "burn", models.TargetCalories, 500, ""))
	trk.AddWorkout(testWorkout(101, "2026-08-01", 600))

	if !trk.Goals()[0].Completed {
		t.Fatal("goal should have completed")
	}

	// Removing the workout drops derived progress but not completion
	if err := trk.DeleteWorkout(101); err != nil {
		t.Fatalf("DeleteWorkout failed: %v", err)
	}
	g := trk.Goals()[0]
	if !g.Completed {
		t.Error("completion reverted by recomputation")
	}
	if got := g.Progress(trk.Workouts()); got != 100 {
		t.Errorf("Progress = %d, want 100 for completed goal", got)
	}
}

func TestToggleGoalIsTheOnlyUncompletePath(t *testing.T) {
	trk, _ := setupTracker(t)

	g := models.NewGoal(0, "burn", models.TargetCalories, 500, "")
	trk.AddGoal(g)
	trk.AddWorkout(testWorkout(101, "2026-08-01", 600))

	if err := trk.ToggleGoal(g.ID); err != nil {
		t.Fatalf("ToggleGoal failed: %v", err)
	}
	if trk.Goals()[0].Completed {
		t.Error("toggle did not un-complete the goal")
	}

	if err := trk.ToggleGoal(999); err == nil {
		t.Error("expected error toggling absent goal")
	}
}

func TestWeightHistoryOneEntryPerDate(t *testing.T) {
	trk, _ := setupTracker(t)

	trk.AddWeightEntry("2026-08-01", 82.5)
	trk.AddWeightEntry("2026-08-01", 81.9)
	trk.AddWeightEntry("2026-08-02", 81.5)

	p := trk.UserProfile()
	if len(p.WeightHistory) != 2 {
		t.Fatalf("history = %d entries, want 2", len(p.WeightHistory))
	}
	if p.WeightHistory[0].Weight != 81.9 {
		t.Errorf("re-logged weight = %.1f, want 81.9 (last write wins)", p.WeightHistory[0].Weight)
	}
	if p.Weight != 81.5 {
		t.Errorf("current weight = %.1f, want 81.5", p.Weight)
	}

	if err := trk.AddWeightEntry("2026-08-03", -1); err == nil {
		t.Error("expected error for non-positive weight")
	}
}

func TestRejectedWeightDateLeavesHistoryClean(t *testing.T) {
	trk, _ := setupTracker(t)

	if err := trk.AddWeightEntry("tomorrow", 80); err == nil {
		t.Fatal("expected error for unparseable date")
	}
	if n := len(trk.UserProfile().WeightHistory); n != 0 {
		t.Fatalf("history = %d entries after rejected date, want 0", n)
	}

	// A bad date must not poison later profile writes
	if err := trk.AddWeightEntry("2026-08-01", 81); err != nil {
		t.Fatalf("valid entry after rejected date failed: %v", err)
	}
	if trk.UserProfile().Weight != 81 {
		t.Errorf("current weight = %.1f, want 81", trk.UserProfile().Weight)
	}
}

func TestSwitchProfileIsolatesData(t *testing.T) {
	trk, _ := setupTracker(t)
	trk.AddWorkout(testWorkout(101, "2026-08-01", 320))

	anna, err := trk.CreateProfile("Anna")
	if err != nil {
		t.Fatalf("CreateProfile failed: %v", err)
	}
	if err := trk.SwitchProfile(anna.ID); err != nil {
		t.Fatalf("SwitchProfile failed: %v", err)
	}

	if len(trk.Workouts()) != 0 {
		t.Error("new profile sees another profile's workouts")
	}
	trk.AddWorkout(testWorkout(201, "2026-08-02", 500))

	if err := trk.SwitchProfile(models.DefaultProfileID); err != nil {
		t.Fatalf("switch back failed: %v", err)
	}
	workouts := trk.Workouts()
	if len(workouts) != 1 || workouts[0].ID != 101 {
		t.Errorf("default profile workouts = %+v, want only 101", workouts)
	}

	if err := trk.SwitchProfile(999); err == nil {
		t.Error("expected error switching to absent profile")
	}
}

func TestDeleteActiveProfileSwitchesToFirst(t *testing.T) {
	trk, store := setupTracker(t)

	anna, _ := trk.CreateProfile("Anna")
	trk.SwitchProfile(anna.ID)
	trk.AddWorkout(testWorkout(201, "2026-08-02", 500))

	if err := trk.DeleteProfile(anna.ID); err != nil {
		t.Fatalf("DeleteProfile failed: %v", err)
	}
	if trk.CurrentProfileID() != models.DefaultProfileID {
		t.Errorf("current = %d, want default after deleting active", trk.CurrentProfileID())
	}

	// The deleted profile's data is gone from storage
	workouts, _ := store.LoadWorkouts(anna.ID)
	if len(workouts) != 0 {
		t.Errorf("deleted profile still has %d workouts", len(workouts))
	}
}

func TestDeleteLastProfileRecreatesDefault(t *testing.T) {
	trk, _ := setupTracker(t)

	if err := trk.DeleteProfile(models.DefaultProfileID); err != nil {
		t.Fatalf("DeleteProfile failed: %v", err)
	}

	profiles := trk.Profiles()
	if len(profiles) != 1 || profiles[0].Name != "Default" {
		t.Errorf("profiles = %+v, want a recreated default", profiles)
	}
}

func TestFactoryReset(t *testing.T) {
	trk, _ := setupTracker(t)
	trk.AddWorkout(testWorkout(101, "2026-08-01", 320))
	trk.AddGoal(models.NewGoal(0, "burn", models.TargetCalories, 5000, ""))
	trk.CreateProfile("Anna")

	if err := trk.FactoryReset(); err != nil {
		t.Fatalf("FactoryReset failed: %v", err)
	}

	if len(trk.Workouts()) != 0 || len(trk.Goals()) != 0 {
		t.Error("data survived factory reset")
	}
	if len(trk.Profiles()) != 1 {
		t.Errorf("profiles = %d, want 1 recreated default", len(trk.Profiles()))
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	trk, _ := setupTracker(t)
	trk.AddWorkout(testWorkout(101, "2026-08-01", 320))
	trk.AddGoal(models.NewGoal(0, "burn", models.TargetCalories, 5000, ""))
	trk.AddWeightEntry("2026-08-01", 82.5)

	data := trk.Export("install-1")
	if data.Version != "1.0" || data.Tool != "fittrack" || data.InstallID != "install-1" {
		t.Errorf("provenance = %s/%s/%s, want 1.0/fittrack/install-1",
			data.Version, data.Tool, data.InstallID)
	}
	raw, err := data.JSON()
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	// Import into a fresh tracker elsewhere
	other, _ := setupTracker(t)
	if err := other.ImportJSON(raw); err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}

	if len(other.Workouts()) != 1 || len(other.Goals()) != 1 {
		t.Errorf("imported %d workouts, %d goals, want 1/1",
			len(other.Workouts()), len(other.Goals()))
	}
	if other.UserProfile().Weight != 82.5 {
		t.Errorf("imported weight = %.1f, want 82.5", other.UserProfile().Weight)
	}
}

func TestImportRejectsGarbage(t *testing.T) {
	trk, _ := setupTracker(t)
	trk.AddWorkout(testWorkout(101, "2026-08-01", 320))

	if err := trk.ImportJSON([]byte("garbage")); err == nil {
		t.Fatal("expected error importing garbage")
	}
	if len(trk.Workouts()) != 1 {
		t.Error("rejected import changed state")
	}
}

func TestSubscribersAreNotified(t *testing.T) {
	trk, _ := setupTracker(t)

	var events []Event
	trk.Subscribe(func(ev Event) { events = append(events, ev) })

	trk.AddWorkout(testWorkout(101, "2026-08-01", 320))
	if len(events) == 0 {
		t.Fatal("no events after AddWorkout")
	}
	if events[len(events)-1].Kind != "workouts" {
		t.Errorf("event kind = %s, want workouts", events[len(events)-1].Kind)
	}
}

// failingStore simulates an engine whose reads and writes fail after
// startup. The registry works so the tracker can come up.
type failingStore struct {
	profiles []models.Profile
}

var errBroken = errors.New("disk on fire")

func (s *failingStore) LoadProfiles() ([]models.Profile, error) { return s.profiles, nil }
func (s *failingStore) SaveProfiles(p []models.Profile) error   { s.profiles = p; return nil }
func (s *failingStore) LoadWorkouts(int64) ([]models.Workout, error) {
	return nil, errBroken
}
func (s *failingStore) SaveWorkouts([]models.Workout, int64) error { return errBroken }
func (s *failingStore) LoadGoals(int64) ([]models.Goal, error)     { return nil, errBroken }
func (s *failingStore) SaveGoals([]models.Goal, int64) error       { return errBroken }
func (s *failingStore) LoadUserProfile(int64) (*models.UserProfile, error) {
	return nil, errBroken
}
func (s *failingStore) SaveUserProfile(*models.UserProfile) error { return errBroken }
func (s *failingStore) ClearProfile(int64) error                  { return errBroken }
func (s *failingStore) ClearAll() error                           { return errBroken }
func (s *failingStore) Backend() string                           { return "failing" }
func (s *failingStore) Close() error                              { return nil }

func TestReadsDegradeWritesSurface(t *testing.T) {
	trk, err := New(&failingStore{}, 0)
	if err != nil {
		t.Fatalf("tracker should come up on failing reads: %v", err)
	}

	// Failed reads degrade to renderable empty state
	if len(trk.Workouts()) != 0 || len(trk.Goals()) != 0 {
		t.Error("expected empty collections from degraded reads")
	}
	p := trk.UserProfile()
	if p.ID != models.DefaultProfileID {
		t.Errorf("profile ID = %d, want materialized default", p.ID)
	}

	// Failed writes surface, but the entered data stays in memory
	err = trk.AddWorkout(testWorkout(101, "2026-08-01", 320))
	if !errors.Is(err, errBroken) {
		t.Errorf("err = %v, want surfaced store error", err)
	}
	if len(trk.Workouts()) != 1 {
		t.Error("in-memory state lost on failed write")
	}
}

// registryDownStore simulates a transient read failure on the profile
// registry while writes would still go through.
type registryDownStore struct {
	failingStore
	registrySaves int
}

func (s *registryDownStore) LoadProfiles() ([]models.Profile, error) { return nil, errBroken }
func (s *registryDownStore) SaveProfiles([]models.Profile) error {
	s.registrySaves++
	return nil
}

func TestFailedRegistryReadDoesNotRewriteRegistry(t *testing.T) {
	store := &registryDownStore{}
	trk, err := New(store, 0)
	if err != nil {
		t.Fatalf("tracker should come up degraded: %v", err)
	}

	// The stored registry may hold profiles the failed read hid, so
	// startup must not write a default-only registry over it.
	if store.registrySaves != 0 {
		t.Errorf("registry written %d times after failed read, want 0", store.registrySaves)
	}
	if trk.CurrentProfileID() != models.DefaultProfileID {
		t.Errorf("current profile = %d, want in-memory default", trk.CurrentProfileID())
	}
}
