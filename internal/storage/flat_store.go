// ABOUTME: Flat SQLite key-value fallback store.
// ABOUTME: Whole collections are stored as JSON under profile-qualified keys.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/fittrack/fittrack/internal/models"
)

// FlatStore is the fallback RecordStore used when the embedded engine
// cannot be opened. It keeps each collection as one JSON value in a
// flat key space; every read and write is a single independent
// statement with no cross-key transaction.
type FlatStore struct {
	db *sql.DB
}

var _ RecordStore = (*FlatStore)(nil)

// OpenFlat opens or creates the flat store database at dbPath.
func OpenFlat(dbPath string) (*FlatStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open flat store: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	schema := `CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}

	return &FlatStore{db: db}, nil
}

// Backend names the storage tier.
func (s *FlatStore) Backend() string { return "flat" }

// Close closes the database connection.
func (s *FlatStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadProfiles returns the profile registry.
func (s *FlatStore) LoadProfiles() ([]models.Profile, error) {
	var profiles []models.Profile
	if err := s.getJSON("profiles", &profiles); err != nil {
		return nil, err
	}
	if profiles == nil {
		profiles = []models.Profile{}
	}
	return profiles, nil
}

// SaveProfiles replaces the whole registry.
func (s *FlatStore) SaveProfiles(profiles []models.Profile) error {
	return s.setJSON("profiles", profiles)
}

// LoadWorkouts returns one profile's workouts.
func (s *FlatStore) LoadWorkouts(profileID int64) ([]models.Workout, error) {
	var workouts []models.Workout
	if err := s.getJSON(flatKey("workouts", profileID), &workouts); err != nil {
		return nil, err
	}
	if workouts == nil {
		workouts = []models.Workout{}
	}
	return workouts, nil
}

// SaveWorkouts replaces one profile's workouts under its own key;
// other profiles' keys are untouched.
func (s *FlatStore) SaveWorkouts(workouts []models.Workout, profileID int64) error {
	for i := range workouts {
		workouts[i].ProfileID = profileID
	}
	return s.setJSON(flatKey("workouts", profileID), workouts)
}

// LoadGoals returns one profile's goals.
func (s *FlatStore) LoadGoals(profileID int64) ([]models.Goal, error) {
	var goals []models.Goal
	if err := s.getJSON(flatKey("goals", profileID), &goals); err != nil {
		return nil, err
	}
	if goals == nil {
		goals = []models.Goal{}
	}
	return goals, nil
}

// SaveGoals replaces one profile's goals.
func (s *FlatStore) SaveGoals(goals []models.Goal, profileID int64) error {
	for i := range goals {
		goals[i].ProfileID = profileID
	}
	return s.setJSON(flatKey("goals", profileID), goals)
}

// LoadUserProfile returns the health profile, or (nil, nil) if absent.
func (s *FlatStore) LoadUserProfile(profileID int64) (*models.UserProfile, error) {
	var profile *models.UserProfile
	if err := s.getJSON(flatKey("userProfile", profileID), &profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SaveUserProfile stores the health profile wholesale.
func (s *FlatStore) SaveUserProfile(profile *models.UserProfile) error {
	return s.setJSON(flatKey("userProfile", profile.ID), profile)
}

// ClearProfile removes one profile's keys and its registry row.
func (s *FlatStore) ClearProfile(profileID int64) error {
	for _, key := range []string{
		flatKey("workouts", profileID),
		flatKey("goals", profileID),
		flatKey("userProfile", profileID),
	} {
		if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}

	profiles, err := s.LoadProfiles()
	if err != nil {
		return err
	}
	kept := profiles[:0]
	for _, p := range profiles {
		if p.ID != profileID {
			kept = append(kept, p)
		}
	}
	return s.SaveProfiles(kept)
}

// ClearAll wipes the whole key space.
func (s *FlatStore) ClearAll() error {
	if _, err := s.db.Exec("DELETE FROM kv"); err != nil {
		return fmt.Errorf("clear kv: %w", err)
	}
	return nil
}

func (s *FlatStore) getJSON(key string, out any) error {
	var value []byte
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal(value, out); err != nil {
		return fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return nil
}

func (s *FlatStore) setJSON(key string, v any) error {
	value, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	_, err = s.db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// flatKey qualifies a collection key with its profile ID, emulating
// the partitioning the embedded store gets from composite keys.
func flatKey(kind string, profileID int64) string {
	return fmt.Sprintf("%s/%d", kind, profileID)
}
