// ABOUTME: Tracker service owning the canonical in-memory fitness state.
// ABOUTME: Commands persist through the RecordStore; reads degrade, writes surface.
package tracker

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fittrack/fittrack/internal/models"
	"github.com/fittrack/fittrack/internal/storage"
)

// Event notifies subscribers that part of the state changed.
type Event struct {
	Kind      string // "workouts", "goals", "profile", "profiles", "switch"
	ProfileID int64
}

// Tracker owns the canonical state for the active profile. Storage is
// a side effect: reads that fail degrade to empty collections so the
// caller can always render, while writes return their error and leave
// the in-memory state holding whatever the user entered.
type Tracker struct {
	mu    sync.Mutex
	store storage.RecordStore

	profiles []models.Profile
	current  int64
	workouts []models.Workout
	goals    []models.Goal
	profile  *models.UserProfile

	subs []func(Event)
}

// New builds a Tracker over the store and loads the active profile's
// data. A default profile is created on first run. When the requested
// profile no longer exists, the first registered profile is used.
func New(store storage.RecordStore, currentProfile int64) (*Tracker, error) {
	t := &Tracker{store: store}

	profiles, err := store.LoadProfiles()
	if err != nil {
		// A failed read says nothing about what the registry holds.
		// Run on an in-memory default and leave the stored registry
		// alone rather than overwrite rows we could not see.
		log.Warn("loading profile registry failed, running degraded", "err", err)
		profiles = []models.Profile{*models.DefaultProfile()}
	} else if len(profiles) == 0 {
		def := models.DefaultProfile()
		profiles = []models.Profile{*def}
		if err := store.SaveProfiles(profiles); err != nil {
			return nil, fmt.Errorf("create default profile: %w", err)
		}
	}
	t.profiles = profiles

	t.current = profiles[0].ID
	for _, p := range profiles {
		if p.ID == currentProfile {
			t.current = p.ID
			break
		}
	}

	t.loadProfileData()
	return t, nil
}

// Subscribe registers a change notification callback.
func (t *Tracker) Subscribe(fn func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.subs = append(t.subs, fn)
}

func (t *Tracker) notify(kind string) {
	ev := Event{Kind: kind, ProfileID: t.current}
	for _, fn := range t.subs {
		fn(ev)
	}
}

// loadProfileData pulls the active profile's collections, degrading
// every failed read to an empty default.
func (t *Tracker) loadProfileData() {
	workouts, err := t.store.LoadWorkouts(t.current)
	if err != nil {
		log.Warn("loading workouts failed", "profile", t.current, "err", err)
		workouts = []models.Workout{}
	}
	sortWorkouts(workouts)
	t.workouts = workouts

	goals, err := t.store.LoadGoals(t.current)
	if err != nil {
		log.Warn("loading goals failed", "profile", t.current, "err", err)
		goals = []models.Goal{}
	}
	t.goals = goals

	profile, err := t.store.LoadUserProfile(t.current)
	if err != nil {
		log.Warn("loading user profile failed", "profile", t.current, "err", err)
		profile = nil
	}
	if profile == nil {
		profile = models.DefaultUserProfile(t.current, t.profileName(t.current))
		if err := t.store.SaveUserProfile(profile); err != nil {
			log.Warn("materializing default user profile failed", "profile", t.current, "err", err)
		}
	}
	t.profile = profile
}

func (t *Tracker) profileName(id int64) string {
	for _, p := range t.profiles {
		if p.ID == id {
			return p.Name
		}
	}
	return ""
}

// Profiles returns the registry.
func (t *Tracker) Profiles() []models.Profile {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]models.Profile(nil), t.profiles...)
}

// CurrentProfileID returns the active profile ID.
func (t *Tracker) CurrentProfileID() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Workouts returns the active profile's workouts, newest first.
func (t *Tracker) Workouts() []models.Workout {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]models.Workout(nil), t.workouts...)
}

// Goals returns the active profile's goals.
func (t *Tracker) Goals() []models.Goal {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]models.Goal(nil), t.goals...)
}

// UserProfile returns a copy of the active health profile.
func (t *Tracker) UserProfile() models.UserProfile {
	t.mu.Lock()
	defer t.mu.Unlock()
	return *t.profile
}

// AddWorkout appends a workout and persists the collection. Goal
// completion is recomputed against the new workout set.
func (t *Tracker) AddWorkout(w *models.Workout) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	w.ProfileID = t.current
	if err := w.Validate(); err != nil {
		return err
	}

	t.workouts = append(t.workouts, *w)
	sortWorkouts(t.workouts)
	err := t.store.SaveWorkouts(t.workouts, t.current)
	t.recomputeGoals()
	t.notify("workouts")
	return err
}

// UpdateWorkout replaces a workout by ID.
func (t *Tracker) UpdateWorkout(w models.Workout) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	w.ProfileID = t.current
	if err := w.Validate(); err != nil {
		return err
	}

	found := false
	for i := range t.workouts {
		if t.workouts[i].ID == w.ID {
			t.workouts[i] = w
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("workout not found: %d", w.ID)
	}

	sortWorkouts(t.workouts)
	err := t.store.SaveWorkouts(t.workouts, t.current)
	t.recomputeGoals()
	t.notify("workouts")
	return err
}

// DeleteWorkout removes a workout by ID.
func (t *Tracker) DeleteWorkout(id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	kept := t.workouts[:0]
	found := false
	for _, w := range t.workouts {
		if w.ID == id {
			found = true
			continue
		}
		kept = append(kept, w)
	}
	if !found {
		return fmt.Errorf("workout not found: %d", id)
	}
	t.workouts = kept

	err := t.store.SaveWorkouts(t.workouts, t.current)
	t.recomputeGoals()
	t.notify("workouts")
	return err
}

// AddGoal appends a goal and persists the collection. The goal may
// complete immediately if the existing workouts already satisfy it.
func (t *Tracker) AddGoal(g *models.Goal) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	g.ProfileID = t.current
	if err := g.Validate(); err != nil {
		return err
	}

	t.goals = append(t.goals, *g)
	t.recomputeGoals()
	err := t.store.SaveGoals(t.goals, t.current)
	t.notify("goals")
	return err
}

// ToggleGoal flips a goal's completed flag. This is the only path
// that un-completes a goal; recomputation never does.
func (t *Tracker) ToggleGoal(id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.goals {
		if t.goals[i].ID == id {
			t.goals[i].Completed = !t.goals[i].Completed
			err := t.store.SaveGoals(t.goals, t.current)
			t.notify("goals")
			return err
		}
	}
	return fmt.Errorf("goal not found: %d", id)
}

// DeleteGoal removes a goal by ID.
func (t *Tracker) DeleteGoal(id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	kept := t.goals[:0]
	found := false
	for _, g := range t.goals {
		if g.ID == id {
			found = true
			continue
		}
		kept = append(kept, g)
	}
	if !found {
		return fmt.Errorf("goal not found: %d", id)
	}
	t.goals = kept

	err := t.store.SaveGoals(t.goals, t.current)
	t.notify("goals")
	return err
}

// recomputeGoals marks goals whose derived progress reached 100%.
// Completion is monotonic here: a completed goal stays completed no
// matter how the workout set changes afterwards. Persists only when
// something flipped.
func (t *Tracker) recomputeGoals() {
	changed := false
	for i := range t.goals {
		if t.goals[i].Completed {
			continue
		}
		if t.goals[i].Progress(t.workouts) >= 100 {
			t.goals[i].Completed = true
			changed = true
		}
	}
	if changed {
		if err := t.store.SaveGoals(t.goals, t.current); err != nil {
			log.Warn("persisting recomputed goals failed", "profile", t.current, "err", err)
		}
		t.notify("goals")
	}
}

// AddWeightEntry records a weight for a date, replacing any entry
// already on that date, and persists the health profile.
func (t *Tracker) AddWeightEntry(date string, weight float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if weight <= 0 {
		return fmt.Errorf("weight must be positive")
	}
	// Check the date before touching the profile: a bad entry in the
	// history would fail every later profile validation.
	if _, err := time.Parse(models.DateFormat, date); err != nil {
		return fmt.Errorf("invalid date %q (use YYYY-MM-DD)", date)
	}
	t.profile.AddWeightEntry(date, weight)

	err := t.store.SaveUserProfile(t.profile)
	t.notify("profile")
	return err
}

// DeleteWeightEntry drops the weight entry for a date.
func (t *Tracker) DeleteWeightEntry(date string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.profile.RemoveWeightEntry(date)
	err := t.store.SaveUserProfile(t.profile)
	t.notify("profile")
	return err
}

// UpdateProfile overwrites the health profile wholesale; the storage
// layer has no partial-field patch.
func (t *Tracker) UpdateProfile(p models.UserProfile) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	p.ID = t.current
	if err := p.Validate(); err != nil {
		return err
	}
	t.profile = &p

	err := t.store.SaveUserProfile(t.profile)
	t.notify("profile")
	return err
}

// CreateProfile registers a new profile in the registry.
func (t *Tracker) CreateProfile(name string) (*models.Profile, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if name == "" {
		return nil, fmt.Errorf("profile name must not be empty")
	}
	p := models.NewProfile(name)
	t.profiles = append(t.profiles, *p)

	if err := t.store.SaveProfiles(t.profiles); err != nil {
		return nil, err
	}
	t.notify("profiles")
	return p, nil
}

// SwitchProfile makes another registered profile active and loads its
// data.
func (t *Tracker) SwitchProfile(id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	found := false
	for _, p := range t.profiles {
		if p.ID == id {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("profile not found: %d", id)
	}

	t.current = id
	t.loadProfileData()
	t.notify("switch")
	return nil
}

// DeleteProfile removes a profile and cascades to its workouts,
// goals, and health profile. Deleting the active profile switches to
// the first remaining one; deleting the last recreates the default.
func (t *Tracker) DeleteProfile(id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	found := false
	for _, p := range t.profiles {
		if p.ID == id {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("profile not found: %d", id)
	}

	if err := t.store.ClearProfile(id); err != nil {
		return err
	}

	kept := t.profiles[:0]
	for _, p := range t.profiles {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	t.profiles = kept

	if len(t.profiles) == 0 {
		def := models.DefaultProfile()
		t.profiles = []models.Profile{*def}
		if err := t.store.SaveProfiles(t.profiles); err != nil {
			return err
		}
	}
	if t.current == id {
		t.current = t.profiles[0].ID
		t.loadProfileData()
	}
	t.notify("profiles")
	return nil
}

// FactoryReset wipes every table and recreates the default profile.
func (t *Tracker) FactoryReset() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.store.ClearAll(); err != nil {
		return err
	}

	def := models.DefaultProfile()
	t.profiles = []models.Profile{*def}
	if err := t.store.SaveProfiles(t.profiles); err != nil {
		return err
	}
	t.current = def.ID
	t.loadProfileData()
	t.notify("profiles")
	return nil
}

// Export snapshots the active profile's in-memory collections.
func (t *Tracker) Export(installID string) *storage.ExportData {
	t.mu.Lock()
	defer t.mu.Unlock()

	profile := *t.profile
	return storage.NewExport(&profile,
		append([]models.Workout(nil), t.workouts...),
		append([]models.Goal(nil), t.goals...),
		installID)
}

// ImportJSON replaces the active profile's collections with the file
// contents, all-or-nothing, then reloads state from storage.
func (t *Tracker) ImportJSON(data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := storage.Import(t.store, t.current, data); err != nil {
		return err
	}
	t.loadProfileData()
	t.recomputeGoals()
	t.notify("workouts")
	return nil
}

// sortWorkouts orders workouts newest first: date descending, then ID
// descending for same-day records.
func sortWorkouts(workouts []models.Workout) {
	sort.Slice(workouts, func(i, j int) bool {
		if workouts[i].Date != workouts[j].Date {
			return workouts[i].Date > workouts[j].Date
		}
		return workouts[i].ID > workouts[j].ID
	})
}
