package prediction

import (
	"fmt"
	"time"

	"github.com/trezcool/hatari/core/student"
)

const aggregateWindow = 30 * 24 * time.Hour

// studentSnapshot holds the rolling aggregates fed to the model.
type studentSnapshot struct {
	student student.Student

	recentAttendanceRate float64 // % over the last 30 days
	recentGradeAverage   float64 // % over the last 30 days
	negativeIncidents    int
	positiveIncidents    int
	totalIncidents       int
	enrollmentDays       int
}

func snapshot(
	st student.Student,
	attendance []student.AttendanceRecord,
	grades []student.GradeRecord,
	behavior []student.BehaviorRecord,
) studentSnapshot {
	now := nowFunc()
	cutoff := now.Add(-aggregateWindow)

	var attTotal, attPresent int
	for _, r := range attendance {
		if r.Date.Before(cutoff) {
			continue
		}
		attTotal++
		if r.Status == student.AttendancePresent || r.Status == student.AttendanceLate {
			attPresent++
		}
	}
	var recentAttendanceRate float64
	if attTotal > 0 {
		recentAttendanceRate = float64(attPresent) / float64(attTotal) * 100
	}

	var gradeSum float64
	var gradeCount int
	for _, r := range grades {
		if r.Date.Before(cutoff) || r.MaxScore <= 0 {
			continue
		}
		gradeSum += r.Score / r.MaxScore * 100
		gradeCount++
	}
	var recentGradeAverage float64
	if gradeCount > 0 {
		recentGradeAverage = gradeSum / float64(gradeCount)
	}

	snap := studentSnapshot{
		student:              st,
		recentAttendanceRate: recentAttendanceRate,
		recentGradeAverage:   recentGradeAverage,
		enrollmentDays:       int(now.Sub(st.EnrollmentDate).Hours() / 24),
	}
	for _, r := range behavior {
		if r.Date.Before(cutoff) {
			continue
		}
		snap.totalIncidents++
		switch r.Type {
		case student.BehaviorNegative:
			snap.negativeIncidents++
		case student.BehaviorPositive:
			snap.positiveIncidents++
		}
	}
	return snap
}

// buildPrompt embeds the aggregates in a natural-language prompt with
// explicit output-format instructions. The model is expected to answer with
// a single JSON object.
func buildPrompt(snap studentSnapshot) string {
	return fmt.Sprintf(`You are an AI model specialized in predicting student academic risk levels. Analyze the following student data and provide a risk assessment.

Student Information:
- Name: %s
- Grade: %s
- Enrollment Duration: %d days
- Overall GPA: %.2f
- Overall Attendance Rate: %.2f%%

Recent Performance (Last 30 Days):
- Recent Attendance Rate: %.2f%%
- Recent Grade Average: %.2f%%
- Negative Behavior Incidents: %d
- Positive Behavior Incidents: %d
- Total Behavior Records: %d

Please provide your analysis in the following JSON format:
{
  "riskScore": [number between 0 and 1],
  "riskLevel": ["Low" | "Medium" | "High"],
  "confidence": [number between 0 and 1],
  "factors": [
    {
      "feature": "feature name",
      "impact": [number between -1 and 1, where positive means increases risk],
      "description": "explanation of this factor's impact"
    }
  ],
  "reasoning": "Brief explanation of the risk assessment"
}

Risk Level Guidelines:
- Low (0.0-0.3): Student is performing well with minimal risk indicators
- Medium (0.3-0.6): Student shows some concerning patterns that need monitoring
- High (0.6-1.0): Student requires immediate intervention and support

Consider factors like:
- Attendance trends (recent vs overall)
- Academic performance trends
- Behavioral patterns
- Grade level expectations
- Duration of enrollment (adjustment period for new students)`,
		snap.student.Name,
		snap.student.Grade,
		snap.enrollmentDays,
		snap.student.CurrentGPA,
		snap.student.AttendanceRate,
		snap.recentAttendanceRate,
		snap.recentGradeAverage,
		snap.negativeIncidents,
		snap.positiveIncidents,
		snap.totalIncidents,
	)
}
