// ABOUTME: Derived health metric formulas: BMI, BMR, TDEE, body fat.
// ABOUTME: Pure functions over the health profile, no storage involved.
package models

import "math"

// Activity levels for TDEE computation.
const (
	ActivitySedentary  = "sedentary"
	ActivityLight      = "light"
	ActivityModerate   = "moderate"
	ActivityActive     = "active"
	ActivityVeryActive = "veryActive"
)

// ActivityMultipliers maps activity levels to TDEE factors.
var ActivityMultipliers = map[string]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

// BMI returns the body mass index for weight in kg and height in cm.
// Returns 0 when either input is missing.
func BMI(weightKg, heightCm float64) float64 {
	if weightKg <= 0 || heightCm <= 0 {
		return 0
	}
	heightM := heightCm / 100
	return weightKg / (heightM * heightM)
}

// BMICategory names the standard BMI band for a BMI value.
func BMICategory(bmi float64) string {
	switch {
	case bmi <= 0:
		return "unknown"
	case bmi < 18.5:
		return "underweight"
	case bmi < 25:
		return "normal"
	case bmi < 30:
		return "overweight"
	default:
		return "obese"
	}
}

// BMR returns the basal metabolic rate per the Mifflin-St Jeor
// equation, rounded to whole kcal. Returns 0 on missing inputs.
func BMR(weightKg, heightCm float64, age int, gender string) int {
	if weightKg <= 0 || heightCm <= 0 || age <= 0 || gender == "" {
		return 0
	}
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == "male" {
		bmr += 5
	} else {
		bmr -= 161
	}
	return int(math.Round(bmr))
}

// TDEE returns total daily energy expenditure: BMR scaled by the
// activity multiplier. Unknown levels fall back to moderate.
func TDEE(weightKg, heightCm float64, age int, gender, activityLevel string) int {
	bmr := BMR(weightKg, heightCm, age, gender)
	mult, ok := ActivityMultipliers[activityLevel]
	if !ok {
		mult = ActivityMultipliers[ActivityModerate]
	}
	return int(math.Round(float64(bmr) * mult))
}

// IdealWeight returns the Devine formula ideal body weight in kg.
func IdealWeight(heightCm float64, gender string) int {
	if heightCm <= 0 || gender == "" {
		return 0
	}
	if gender == "male" {
		return int(math.Round(50 + 0.91*(heightCm-152.4)))
	}
	return int(math.Round(45.5 + 0.91*(heightCm-152.4)))
}

// BodyFatEstimate approximates body fat percentage from BMI and age,
// clamped to the 3-45% range the estimate is meaningful in.
func BodyFatEstimate(weightKg, heightCm float64, age int, gender string) float64 {
	if age <= 0 || gender == "" {
		return 0
	}
	bmi := BMI(weightKg, heightCm)
	if bmi == 0 {
		return 0
	}

	var bodyFat float64
	if gender == "male" {
		bodyFat = 1.2*bmi + 0.23*float64(age) - 16.2
	} else {
		bodyFat = 1.2*bmi + 0.23*float64(age) - 5.4
	}
	return math.Max(3, math.Min(bodyFat, 45))
}
