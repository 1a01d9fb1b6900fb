// ABOUTME: RecordStore interface for profile-scoped fitness data.
// ABOUTME: Two implementations: Badger embedded store and SQLite flat fallback.
package storage

import "github.com/fittrack/fittrack/internal/models"

// RecordStore is the persistence contract for profile-scoped fitness
// data. The profile registry is global; workouts, goals, and the
// health profile are partitioned by profile ID. Save operations
// replace a profile's whole collection; no partial patching exists at
// this layer.
type RecordStore interface {
	// Profile registry (not partitioned, exactly one registry).
	LoadProfiles() ([]models.Profile, error)
	SaveProfiles(profiles []models.Profile) error

	// Workouts, scoped to one profile. SaveWorkouts stamps the
	// profile ID on every record and never touches other profiles.
	LoadWorkouts(profileID int64) ([]models.Workout, error)
	SaveWorkouts(workouts []models.Workout, profileID int64) error

	// Goals, same partitioning as workouts.
	LoadGoals(profileID int64) ([]models.Goal, error)
	SaveGoals(goals []models.Goal, profileID int64) error

	// Health profile, one record per profile, stored wholesale.
	// LoadUserProfile returns (nil, nil) when absent.
	LoadUserProfile(profileID int64) (*models.UserProfile, error)
	SaveUserProfile(profile *models.UserProfile) error

	// ClearProfile removes one profile's workouts, goals, health
	// profile, and registry row. ClearAll is the factory reset.
	ClearProfile(profileID int64) error
	ClearAll() error

	// Backend names the storage tier serving this store.
	Backend() string
	Close() error
}
