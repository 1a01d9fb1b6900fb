// ABOUTME: Export and import of one profile's data as JSON or YAML.
// ABOUTME: Import is all-or-nothing; malformed files apply nothing.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fittrack/fittrack/internal/models"
)

// ExportData is the interchange format for one profile's data. The
// profile, workouts, and goals keys are the contract; the remaining
// fields are provenance and tolerated but not required on import.
type ExportData struct {
	Version    string              `json:"version,omitempty" yaml:"version,omitempty"`
	ExportedAt string              `json:"exportedAt,omitempty" yaml:"exportedAt,omitempty"`
	Tool       string              `json:"tool,omitempty" yaml:"tool,omitempty"`
	InstallID  string              `json:"installId,omitempty" yaml:"installId,omitempty"`
	Profile    *models.UserProfile `json:"profile" yaml:"profile"`
	Workouts   []models.Workout    `json:"workouts" yaml:"workouts"`
	Goals      []models.Goal       `json:"goals" yaml:"goals"`
}

// ImportFormatError reports a file that does not parse as JSON or
// lacks the expected top-level keys. Nothing is applied.
type ImportFormatError struct {
	Reason string
	Err    error
}

func (e *ImportFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("import format: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("import format: %s", e.Reason)
}

func (e *ImportFormatError) Unwrap() error { return e.Err }

// NewExport wraps one profile's data in the interchange format and
// stamps the provenance fields.
func NewExport(profile *models.UserProfile, workouts []models.Workout, goals []models.Goal, installID string) *ExportData {
	return &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now().Format(time.RFC3339),
		Tool:       "fittrack",
		InstallID:  installID,
		Profile:    profile,
		Workouts:   workouts,
		Goals:      goals,
	}
}

// JSON serializes the export pretty-printed.
func (e *ExportData) JSON() ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}

// YAML serializes the export as YAML.
func (e *ExportData) YAML() ([]byte, error) {
	return yaml.Marshal(e)
}

// Filename returns the timestamped default export file name.
func (e *ExportData) Filename(format string) string {
	return fmt.Sprintf("fittrack-export-%s.%s", time.Now().Format("2006-01-02-150405"), format)
}

// ParseImport validates and decodes an import file. The file must be
// a JSON object carrying the profile, workouts, and goals keys; any
// parse or shape failure rejects the whole file.
func ParseImport(data []byte) (*ExportData, error) {
	var shape map[string]json.RawMessage
	if err := json.Unmarshal(data, &shape); err != nil {
		return nil, &ImportFormatError{Reason: "not a JSON object", Err: err}
	}
	for _, key := range []string{"profile", "workouts", "goals"} {
		if _, ok := shape[key]; !ok {
			return nil, &ImportFormatError{Reason: fmt.Sprintf("missing %q key", key)}
		}
	}

	var parsed ExportData
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, &ImportFormatError{Reason: "malformed records", Err: err}
	}
	return &parsed, nil
}

// Import replaces one profile's collections wholesale through the
// normal save path, which stamps the target profile ID on every
// record. The parse has already succeeded by the time anything is
// written, so a malformed file applies nothing.
func Import(store RecordStore, profileID int64, data []byte) (*ExportData, error) {
	parsed, err := ParseImport(data)
	if err != nil {
		return nil, err
	}

	if err := store.SaveWorkouts(parsed.Workouts, profileID); err != nil {
		return nil, fmt.Errorf("save workouts: %w", err)
	}
	if err := store.SaveGoals(parsed.Goals, profileID); err != nil {
		return nil, fmt.Errorf("save goals: %w", err)
	}
	if parsed.Profile != nil {
		parsed.Profile.ID = profileID
		if err := store.SaveUserProfile(parsed.Profile); err != nil {
			return nil, fmt.Errorf("save user profile: %w", err)
		}
	}
	return parsed, nil
}
