// ABOUTME: MCP resource implementations for the fitness tracker.
// ABOUTME: Provides fittrack://summary and fittrack://goals resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fittrack/fittrack/internal/models"
)

func (s *Server) registerResources() {
	// fittrack://summary - dashboard totals plus derived health metrics
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "fittrack://summary",
		Name:        "Fitness Summary",
		Description: "Workout totals, weight trend, and derived health metrics for the active profile",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)

	// fittrack://goals - goals with derived progress
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "fittrack://goals",
		Name:        "Goal Progress",
		Description: "All goals for the active profile with their current progress",
		MIMEType:    "application/json",
	}, s.handleGoalsResource)
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	workouts := s.tracker.Workouts()
	p := s.tracker.UserProfile()

	var totalCalories, totalDuration int
	for _, w := range workouts {
		totalCalories += w.Calories
		totalDuration += w.Duration
	}

	bmi := models.BMI(p.Weight, p.Height)
	result := map[string]any{
		"profileId":     s.tracker.CurrentProfileID(),
		"totalWorkouts": len(workouts),
		"totalCalories": totalCalories,
		"totalDuration": totalDuration,
		"weight":        p.Weight,
		"weightEntries": len(p.WeightHistory),
		"bmi":           bmi,
		"bmiCategory":   models.BMICategory(bmi),
		"tdee":          models.TDEE(p.Weight, p.Height, p.Age, p.Gender, p.ActivityLevel),
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "fittrack://summary",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleGoalsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	goals := s.tracker.Goals()
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

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "fittrack://goals",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
