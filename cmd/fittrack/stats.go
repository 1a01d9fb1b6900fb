// ABOUTME: CLI command printing workout totals and derived health metrics.
// ABOUTME: Metrics are computed on the fly, never stored.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fittrack/fittrack/internal/models"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show workout totals and derived health metrics",
	Long: `Summarize the active profile's workouts and health metrics.

Derived metrics need profile settings: BMI and body fat require weight
and height, BMR and TDEE additionally require age and gender. Missing
inputs simply hide the metric. Set them with 'fittrack profile set'.

FORMULAS:

  BMR         Mifflin-St Jeor equation
  TDEE        BMR scaled by activity level
  Ideal       Devine formula
  Body fat    BMI-based estimate, clamped to 3-45%`,
	RunE: func(cmd *cobra.Command, args []string) error {
		workouts := trk.Workouts()
		p := trk.UserProfile()
		faint := color.New(color.Faint)

		var totalCalories, totalDuration int
		byType := map[string]int{}
		for _, w := range workouts {
			totalCalories += w.Calories
			totalDuration += w.Duration
			byType[w.Type]++
		}

		fmt.Printf("Workouts: %d  (%d kcal, %d min)\n", len(workouts), totalCalories, totalDuration)
		for typ, n := range byType {
			fmt.Printf("  %s %d\n", padRight(typ, 16), n)
		}

		goals := trk.Goals()
		if len(goals) > 0 {
			completed := 0
			for _, g := range goals {
				if g.Completed {
					completed++
				}
			}
			fmt.Printf("Goals: %d/%d completed\n", completed, len(goals))
		}

		bmi := models.BMI(p.Weight, p.Height)
		if bmi == 0 {
			fmt.Println(faint.Sprint("\nSet weight and height for derived metrics."))
			return nil
		}

		fmt.Printf("\nBMI:       %.1f (%s)\n", bmi, models.BMICategory(bmi))
		if ideal := models.IdealWeight(p.Height, p.Gender); ideal > 0 {
			fmt.Printf("Ideal:     %d kg\n", ideal)
		}
		if bmr := models.BMR(p.Weight, p.Height, p.Age, p.Gender); bmr > 0 {
			fmt.Printf("BMR:       %d kcal/day\n", bmr)
			fmt.Printf("TDEE:      %d kcal/day\n", models.TDEE(p.Weight, p.Height, p.Age, p.Gender, p.ActivityLevel))
		}
		if bf := models.BodyFatEstimate(p.Weight, p.Height, p.Age, p.Gender); bf > 0 {
			fmt.Printf("Body fat:  %.1f%% (estimate)\n", bf)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
