package services

import "math"

// tokenMultipliers maps an activity type to its token multiplier.
// Unrecognized types are not rejected; they fall back to 1.0.
var tokenMultipliers = map[string]float64{
	"run":           2.0,
	"walk":          1.0,
	"cycle":         1.5,
	"swim":          3.0,
	"pushups":       0.2,
	"yoga":          1.0,
	"weightlifting": 2.0,
	"stretching":    1.0,
}

// MinTokenAward is the floor every accrual is clamped to.
const MinTokenAward = 10

// AccrueTokens computes the token award for a single activity. Distance
// takes precedence over duration when both are present and positive. The
// result is deterministic and never below MinTokenAward; the award is fixed
// into the activity record at creation and never recomputed.
func AccrueTokens(activityType string, distance *float64, duration *int) int {
	multiplier, ok := tokenMultipliers[activityType]
	if !ok {
		multiplier = 1.0
	}

	tokens := MinTokenAward
	if distance != nil && *distance > 0 {
		tokens = int(math.Floor(*distance * multiplier))
	} else if duration != nil && *duration > 0 {
		tokens = int(math.Floor(float64(*duration) * multiplier))
	}

	if tokens < MinTokenAward {
		tokens = MinTokenAward
	}
	return tokens
}
