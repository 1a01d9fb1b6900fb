// ABOUTME: Data migration between RecordStore backends.
// ABOUTME: Copies the registry plus every profile's collections.
package storage

import "fmt"

// CopySummary holds counts of migrated entities.
type CopySummary struct {
	Profiles int
	Workouts int
	Goals    int
}

// CopyData copies the profile registry and every profile's workouts,
// goals, and health profile from src to dst. Used to fold flat-store
// data back into the embedded engine after it recovers; the two tiers
// otherwise diverge silently once the fallback has been engaged.
func CopyData(src, dst RecordStore) (*CopySummary, error) {
	summary := &CopySummary{}

	profiles, err := src.LoadProfiles()
	if err != nil {
		return nil, fmt.Errorf("load source profiles: %w", err)
	}
	if err := dst.SaveProfiles(profiles); err != nil {
		return nil, fmt.Errorf("save profiles: %w", err)
	}
	summary.Profiles = len(profiles)

	for _, p := range profiles {
		workouts, err := src.LoadWorkouts(p.ID)
		if err != nil {
			return nil, fmt.Errorf("load workouts for profile %d: %w", p.ID, err)
		}
		if err := dst.SaveWorkouts(workouts, p.ID); err != nil {
			return nil, fmt.Errorf("save workouts for profile %d: %w", p.ID, err)
		}
		summary.Workouts += len(workouts)

		goals, err := src.LoadGoals(p.ID)
		if err != nil {
			return nil, fmt.Errorf("load goals for profile %d: %w", p.ID, err)
		}
		if err := dst.SaveGoals(goals, p.ID); err != nil {
			return nil, fmt.Errorf("save goals for profile %d: %w", p.ID, err)
		}
		summary.Goals += len(goals)

		profile, err := src.LoadUserProfile(p.ID)
		if err != nil {
			return nil, fmt.Errorf("load user profile %d: %w", p.ID, err)
		}
		if profile != nil {
			if err := dst.SaveUserProfile(profile); err != nil {
				return nil, fmt.Errorf("save user profile %d: %w", p.ID, err)
			}
		}
	}

	return summary, nil
}
