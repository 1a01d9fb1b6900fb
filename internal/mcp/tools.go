// ABOUTME: MCP tool implementations for the fitness tracker.
// ABOUTME: Exposes workout, goal, weight, and profile commands.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fittrack/fittrack/internal/models"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_workout",
		Description: "Record a workout session (type, duration, calories)",
	}, s.handleLogWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List workouts for the active profile, optionally filtered by type",
	}, s.handleListWorkouts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_workout",
		Description: "Delete a workout by ID",
	}, s.handleDeleteWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_goal",
		Description: "Create a fitness goal (calories, duration, or frequency target)",
	}, s.handleAddGoal)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_goals",
		Description: "List goals with their derived progress",
	}, s.handleListGoals)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_weight",
		Description: "Record body weight for a date (replaces any entry on that date)",
	}, s.handleLogWeight)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_profile",
		Description: "Get the active health profile with derived metrics (BMI, BMR, TDEE)",
	}, s.handleGetProfile)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "switch_profile",
		Description: "Switch the active profile by ID",
	}, s.handleSwitchProfile)
}

// Tool input/output types

type logWorkoutInput struct {
	WorkoutType string `json:"workout_type" jsonschema:"Type of workout (run, lift, cycle, swim, etc.)"`
	Duration    int    `json:"duration" jsonschema:"Duration in minutes"`
	Calories    int    `json:"calories" jsonschema:"Calories burned"`
	Date        string `json:"date,omitempty" jsonschema:"Workout date (YYYY-MM-DD), defaults to today"`
	Notes       string `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type workoutOutput struct {
	ID      int64  `json:"id"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

type listWorkoutsInput struct {
	WorkoutType string `json:"workout_type,omitempty" jsonschema:"Filter by workout type"`
	Limit       int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type deleteWorkoutInput struct {
	ID int64 `json:"id" jsonschema:"Workout ID"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type addGoalInput struct {
	Title       string  `json:"title" jsonschema:"Goal title"`
	TargetType  string  `json:"target_type" jsonschema:"Target type: calories, duration, or frequency"`
	TargetValue float64 `json:"target_value" jsonschema:"Target value"`
	WorkoutType string  `json:"workout_type,omitempty" jsonschema:"Workout type filter (frequency goals only)"`
	Deadline    string  `json:"deadline,omitempty" jsonschema:"Deadline (YYYY-MM-DD)"`
}

type goalOutput struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

type goalProgress struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	TargetType  string  `json:"targetType"`
	TargetValue float64 `json:"targetValue"`
	Deadline    string  `json:"deadline,omitempty"`
	Progress    int     `json:"progress"`
	Completed   bool    `json:"completed"`
}

type logWeightInput struct {
	Weight float64 `json:"weight" jsonschema:"Body weight in kg"`
	Date   string  `json:"date,omitempty" jsonschema:"Entry date (YYYY-MM-DD), defaults to today"`
}

type switchProfileInput struct {
	ProfileID int64 `json:"profile_id" jsonschema:"Profile ID to activate"`
}

// Tool handlers

func (s *Server) handleLogWorkout(ctx context.Context, req *mcp.CallToolRequest, input logWorkoutInput) (*mcp.CallToolResult, workoutOutput, error) {
	w := models.NewWorkout(s.tracker.CurrentProfileID(), input.WorkoutType, input.Duration, input.Calories)
	if input.Date != "" {
		w.WithDate(input.Date)
	}
	if input.Notes != "" {
		w.WithNotes(input.Notes)
	}

	if err := s.tracker.AddWorkout(w); err != nil {
		return nil, workoutOutput{}, fmt.Errorf("failed to log workout: %w", err)
	}

	return nil, workoutOutput{
		ID:      w.ID,
		Type:    w.Type,
		Message: fmt.Sprintf("Logged %s workout: %d min, %d kcal (ID: %d)", w.Type, w.Duration, w.Calories, w.ID),
	}, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	workouts := s.tracker.Workouts()
	var out []models.Workout
	for _, w := range workouts {
		if input.WorkoutType != "" && w.Type != input.WorkoutType {
			continue
		}
		out = append(out, w)
		if len(out) >= input.Limit {
			break
		}
	}

	if len(out) == 0 {
		return nil, map[string]any{"message": "No workouts found."}, nil
	}
	return nil, out, nil
}

func (s *Server) handleDeleteWorkout(ctx context.Context, req *mcp.CallToolRequest, input deleteWorkoutInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.tracker.DeleteWorkout(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete workout: %w", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted workout: %d", input.ID),
	}, nil
}

func (s *Server) handleAddGoal(ctx context.Context, req *mcp.CallToolRequest, input addGoalInput) (*mcp.CallToolResult, goalOutput, error) {
	if !models.IsValidTargetType(input.TargetType) {
		return nil, goalOutput{}, fmt.Errorf("unknown target type: %s (use calories, duration, or frequency)", input.TargetType)
	}

	g := models.NewGoal(s.tracker.CurrentProfileID(), input.Title, models.TargetType(input.TargetType), input.TargetValue, input.Deadline)
	if input.WorkoutType != "" {
		g.WithWorkoutType(input.WorkoutType)
	}

	if err := s.tracker.AddGoal(g); err != nil {
		return nil, goalOutput{}, fmt.Errorf("failed to add goal: %w", err)
	}

	return nil, goalOutput{
		ID:      g.ID,
		Title:   g.Title,
		Message: fmt.Sprintf("Added goal %q (ID: %d)", g.Title, g.ID),
	}, nil
}

func (s *Server) handleListGoals(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	goals := s.tracker.Goals()
	if len(goals) == 0 {
		return nil, map[string]any{"message": "No goals found."}, nil
	}

	workouts := s.tracker.Workouts()
	out := make([]goalProgress, 0, len(goals))
	for _, g := range goals {
		out = append(out, goalProgress{
			ID:          g.ID,
			Title:       g.Title,
			TargetType:  string(g.TargetType),
			TargetValue: g.TargetValue,
			Deadline:    g.Deadline,
			Progress:    g.Progress(workouts),
			Completed:   g.Completed,
		})
	}
	return nil, out, nil
}

func (s *Server) handleLogWeight(ctx context.Context, req *mcp.CallToolRequest, input logWeightInput) (*mcp.CallToolResult, simpleOutput, error) {
	date := input.Date
	if date == "" {
		date = time.Now().Format(models.DateFormat)
	}

	if err := s.tracker.AddWeightEntry(date, input.Weight); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to log weight: %w", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Logged %.1f kg on %s", input.Weight, date),
	}, nil
}

func (s *Server) handleGetProfile(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	p := s.tracker.UserProfile()

	bmi := models.BMI(p.Weight, p.Height)
	out := map[string]any{
		"profile": p,
		"derived": map[string]any{
			"bmi":         bmi,
			"bmiCategory": models.BMICategory(bmi),
			"bmr":         models.BMR(p.Weight, p.Height, p.Age, p.Gender),
			"tdee":        models.TDEE(p.Weight, p.Height, p.Age, p.Gender, p.ActivityLevel),
			"idealWeight": models.IdealWeight(p.Height, p.Gender),
			"bodyFat":     models.BodyFatEstimate(p.Weight, p.Height, p.Age, p.Gender),
		},
	}
	return nil, out, nil
}

func (s *Server) handleSwitchProfile(ctx context.Context, req *mcp.CallToolRequest, input switchProfileInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.tracker.SwitchProfile(input.ProfileID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to switch profile: %w", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Switched to profile %d", input.ProfileID),
	}, nil
}
