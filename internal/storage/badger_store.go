// ABOUTME: Badger-backed RecordStore over the kvdb table wrapper.
// ABOUTME: Shared tables are partitioned by composite profileID/id keys.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/fittrack/fittrack/internal/kvdb"
	"github.com/fittrack/fittrack/internal/models"
)

const (
	// SchemaVersion 2 introduced the profile registry and
	// profile-scoped record keys.
	SchemaVersion = 2

	dbName = "fittrack"

	tableWorkouts    = "workouts"
	tableGoals       = "goals"
	tableUserProfile = "userProfile"
	tableProfiles    = "profiles"
)

// DefaultSchema declares the table set the tracker stores into.
func DefaultSchema() kvdb.Schema {
	return kvdb.Schema{
		Name:    dbName,
		Version: SchemaVersion,
		Tables: []kvdb.TableSpec{
			{
				Name:     tableWorkouts,
				KeyField: "id",
				Indexes: []kvdb.IndexSpec{
					{Name: "date", KeyField: "date"},
					{Name: "type", KeyField: "type"},
					{Name: "profileId", KeyField: "profileId"},
				},
			},
			{
				Name:     tableGoals,
				KeyField: "id",
				Indexes: []kvdb.IndexSpec{
					{Name: "profileId", KeyField: "profileId"},
				},
			},
			{
				Name:     tableUserProfile,
				KeyField: "id",
			},
			{
				Name:     tableProfiles,
				KeyField: "id",
				Indexes: []kvdb.IndexSpec{
					{Name: "name", KeyField: "name"},
				},
			},
		},
	}
}

// BadgerStore is the primary RecordStore, backed by the embedded
// Badger engine through the kvdb wrapper.
type BadgerStore struct {
	db *kvdb.DB
}

var _ RecordStore = (*BadgerStore)(nil)

// OpenBadger opens the embedded store at dir and runs the one-time
// legacy-layout migration when the on-disk schema predates profiles.
// The returned error is a *kvdb.InitError when the engine itself
// cannot be opened.
func OpenBadger(dir string) (*BadgerStore, error) {
	db, err := kvdb.Open(dir, DefaultSchema())
	if err != nil {
		return nil, err
	}

	s := &BadgerStore{db: db}
	if db.PriorVersion() > 0 && db.PriorVersion() < SchemaVersion {
		if err := s.migrateLegacyRecords(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate legacy records: %w", err)
		}
	}
	return s, nil
}

// Backend names the storage tier.
func (s *BadgerStore) Backend() string { return "badger" }

// Close releases the embedded engine.
func (s *BadgerStore) Close() error { return s.db.Close() }

// LoadProfiles returns the profile registry.
func (s *BadgerStore) LoadProfiles() ([]models.Profile, error) {
	raw, err := s.db.GetAll(tableProfiles)
	if err != nil {
		return nil, err
	}
	profiles := make([]models.Profile, 0, len(raw))
	for _, data := range raw {
		var p models.Profile
		if err := json.Unmarshal(data, &p); err != nil {
			continue
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// SaveProfiles replaces the whole registry with the given list.
func (s *BadgerStore) SaveProfiles(profiles []models.Profile) error {
	if err := s.db.Clear(tableProfiles); err != nil {
		return err
	}
	for _, p := range profiles {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("marshal profile %d: %w", p.ID, err)
		}
		if err := s.db.Put(tableProfiles, strconv.FormatInt(p.ID, 10), data); err != nil {
			return err
		}
	}
	return nil
}

// LoadWorkouts returns one profile's workouts via its key partition.
func (s *BadgerStore) LoadWorkouts(profileID int64) ([]models.Workout, error) {
	raw, err := s.db.GetAllPrefix(tableWorkouts, scopePrefix(profileID))
	if err != nil {
		return nil, err
	}
	workouts := make([]models.Workout, 0, len(raw))
	for _, data := range raw {
		var w models.Workout
		if err := json.Unmarshal(data, &w); err != nil {
			continue
		}
		workouts = append(workouts, w)
	}
	return workouts, nil
}

// SaveWorkouts replaces one profile's workouts. Only the profile's
// own key partition is cleared and rewritten, so other profiles'
// records are never read or rewritten.
func (s *BadgerStore) SaveWorkouts(workouts []models.Workout, profileID int64) error {
	if err := s.db.ClearPrefix(tableWorkouts, scopePrefix(profileID)); err != nil {
		return err
	}
	for i := range workouts {
		workouts[i].ProfileID = profileID
		data, err := json.Marshal(workouts[i])
		if err != nil {
			return fmt.Errorf("marshal workout %d: %w", workouts[i].ID, err)
		}
		if err := s.db.Put(tableWorkouts, scopedKey(profileID, workouts[i].ID), data); err != nil {
			return err
		}
	}
	return nil
}

// LoadGoals returns one profile's goals.
func (s *BadgerStore) LoadGoals(profileID int64) ([]models.Goal, error) {
	raw, err := s.db.GetAllPrefix(tableGoals, scopePrefix(profileID))
	if err != nil {
		return nil, err
	}
	goals := make([]models.Goal, 0, len(raw))
	for _, data := range raw {
		var g models.Goal
		if err := json.Unmarshal(data, &g); err != nil {
			continue
		}
		goals = append(goals, g)
	}
	return goals, nil
}

// SaveGoals replaces one profile's goals.
func (s *BadgerStore) SaveGoals(goals []models.Goal, profileID int64) error {
	if err := s.db.ClearPrefix(tableGoals, scopePrefix(profileID)); err != nil {
		return err
	}
	for i := range goals {
		goals[i].ProfileID = profileID
		data, err := json.Marshal(goals[i])
		if err != nil {
			return fmt.Errorf("marshal goal %d: %w", goals[i].ID, err)
		}
		if err := s.db.Put(tableGoals, scopedKey(profileID, goals[i].ID), data); err != nil {
			return err
		}
	}
	return nil
}

// LoadUserProfile returns the health profile, or (nil, nil) if the
// profile has never been saved.
func (s *BadgerStore) LoadUserProfile(profileID int64) (*models.UserProfile, error) {
	data, err := s.db.Get(tableUserProfile, strconv.FormatInt(profileID, 10))
	if errors.Is(err, kvdb.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var p models.UserProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unmarshal user profile %d: %w", profileID, err)
	}
	return &p, nil
}

// SaveUserProfile stores the health profile wholesale, keyed by its
// profile ID.
func (s *BadgerStore) SaveUserProfile(profile *models.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal user profile %d: %w", profile.ID, err)
	}
	return s.db.Put(tableUserProfile, strconv.FormatInt(profile.ID, 10), data)
}

// ClearProfile removes one profile's data everywhere: workout and
// goal partitions, health profile, and registry row.
func (s *BadgerStore) ClearProfile(profileID int64) error {
	if err := s.db.ClearPrefix(tableWorkouts, scopePrefix(profileID)); err != nil {
		return err
	}
	if err := s.db.ClearPrefix(tableGoals, scopePrefix(profileID)); err != nil {
		return err
	}
	if err := s.db.Delete(tableUserProfile, strconv.FormatInt(profileID, 10)); err != nil {
		return err
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

// ClearAll wipes every table. Factory reset.
func (s *BadgerStore) ClearAll() error {
	for _, table := range []string{tableWorkouts, tableGoals, tableUserProfile, tableProfiles} {
		if err := s.db.Clear(table); err != nil {
			return err
		}
	}
	return nil
}

// migrateLegacyRecords re-keys records written by the pre-profile
// layout (plain id keys, no profileId field) under the default
// profile. Runs once, gated by the stored schema version.
func (s *BadgerStore) migrateLegacyRecords() error {
	if err := s.migrateLegacyTable(tableWorkouts); err != nil {
		return err
	}
	return s.migrateLegacyTable(tableGoals)
}

func (s *BadgerStore) migrateLegacyTable(table string) error {
	raw, err := s.db.GetAll(table)
	if err != nil {
		return err
	}
	for _, data := range raw {
		var rec struct {
			ID        int64 `json:"id"`
			ProfileID int64 `json:"profileId"`
		}
		if err := json.Unmarshal(data, &rec); err != nil {
			continue
		}
		if rec.ProfileID != 0 {
			continue
		}

		var obj map[string]any
		if err := json.Unmarshal(data, &obj); err != nil {
			continue
		}
		obj["profileId"] = models.DefaultProfileID
		tagged, err := json.Marshal(obj)
		if err != nil {
			return err
		}
		if err := s.db.Put(table, scopedKey(models.DefaultProfileID, rec.ID), tagged); err != nil {
			return err
		}
		if err := s.db.Delete(table, strconv.FormatInt(rec.ID, 10)); err != nil {
			return err
		}
	}
	return nil
}

// scopedKey builds the composite key partitioning shared tables.
func scopedKey(profileID, id int64) string {
	return fmt.Sprintf("%d/%d", profileID, id)
}

func scopePrefix(profileID int64) string {
	return fmt.Sprintf("%d/", profileID)
}
