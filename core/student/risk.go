package student

import "math"

// Scoring weights and level cutoffs. These match the values the stored data
// and the dashboard thresholds were produced with; do not change them
// without migrating stored scores.
const (
	attendanceWeight = 0.4
	gpaWeight        = 0.4
	behaviorWeight   = 0.2

	lowCutoff    = 0.3
	mediumCutoff = 0.6
)

// RiskScore maps the rolling metrics of a student into a normalized [0,1]
// risk score; higher means more at-risk. The result is rounded to 2 decimal
// places. Pure function, no side effects.
func RiskScore(attendanceRate, gpa, behaviorScore float64) float64 {
	attendanceNorm := attendanceRate / 100
	gpaNorm := gpa / 4.0
	behaviorNorm := math.Max(0, (5-behaviorScore)/5) // inverted behavior score

	score := 1 - (attendanceWeight*attendanceNorm + gpaWeight*gpaNorm + behaviorWeight*behaviorNorm)
	return math.Round(score*100) / 100
}

// RiskLevelFor classifies a risk score into the 3-level scale.
func RiskLevelFor(score float64) RiskLevel {
	switch {
	case score < lowCutoff:
		return RiskLow
	case score < mediumCutoff:
		return RiskMedium
	default:
		return RiskHigh
	}
}
