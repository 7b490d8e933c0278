// Package sampledata builds a randomized but self-consistent demo dataset:
// every student's history records are sampled to be statistically consistent
// with their summary metrics, and the stored risk classification always
// matches the scoring formula. Only used to seed an empty store.
package sampledata

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/hatari/core/alert"
	"github.com/trezcool/hatari/core/prediction"
	"github.com/trezcool/hatari/core/student"
)

const DefaultStudentCount = 200

var (
	firstNames = []string{
		"Aarav", "Vivaan", "Aditya", "Vihaan", "Arjun", "Sai", "Reyansh", "Ayaan", "Krishna", "Ishaan",
		"Shaurya", "Atharv", "Advik", "Pranav", "Rishabh", "Aryan", "Kabir", "Ansh", "Kian", "Rudra",
		"Prisha", "Ananya", "Fatima", "Aanya", "Diya", "Pihu", "Saanvi", "Inaya", "Riya", "Aadhya",
		"Kiara", "Anika", "Kavya", "Navya", "Aradhya", "Myra", "Sara", "Pari", "Alisha", "Kashvi",
		"Rohan", "Karthik", "Nikhil", "Rahul", "Amit", "Suresh", "Vikram", "Rajesh", "Deepak",
		"Sneha", "Pooja", "Meera", "Kavitha", "Sunita", "Rekha", "Priya", "Neha", "Swati", "Divya",
		"Harsh", "Yash", "Dev", "Arush", "Shivansh", "Dhruv", "Karan", "Tanish", "Veer", "Arnav",
		"Tara", "Ira", "Mira", "Zara", "Nisha", "Rhea", "Sia", "Anya", "Ishika", "Mahika",
	}
	lastNames = []string{
		"Sharma", "Verma", "Gupta", "Singh", "Kumar", "Patel", "Agarwal", "Jain", "Bansal", "Agrawal",
		"Chopra", "Malhotra", "Kapoor", "Arora", "Mittal", "Joshi", "Saxena", "Srivastava", "Tiwari", "Pandey",
		"Yadav", "Mishra", "Chandra", "Bhatia", "Khanna", "Sinha", "Mehta", "Shah", "Thakur", "Nair",
		"Reddy", "Rao", "Krishnan", "Iyer", "Menon", "Pillai", "Das", "Ghosh", "Mukherjee", "Chatterjee",
		"Dutta", "Roy", "Sengupta", "Bhattacharya", "Chakraborty", "Banerjee", "Bose", "Mitra", "Sarkar", "Paul",
	}
	subjects = []string{
		"Mathematics", "English", "Science", "History", "Art", "Physical Education", "Music", "Computer Science",
	}
	gradeLevels = []string{"6th", "7th", "8th", "9th", "10th", "11th", "12th"}
	categories  = []student.GradeCategory{
		student.CategoryHomework, student.CategoryQuiz, student.CategoryTest,
		student.CategoryProject, student.CategoryParticipation,
	}
	reporters = []string{"Ms. Johnson", "Mr. Smith", "Dr. Williams", "Mrs. Brown", "Mr. Davis"}

	positiveDescriptions = []string{
		"Helped classmate with assignment",
		"Showed excellent leadership",
		"Demonstrated outstanding effort",
		"Participated actively in class discussion",
		"Showed kindness to new student",
	}
	negativeDescriptions = []string{
		"Disrupted class discussion",
		"Late to class repeatedly",
		"Did not complete homework",
		"Inappropriate behavior in hallway",
		"Disrespectful to teacher",
	}
	neutralDescriptions = []string{
		"Parent conference scheduled",
		"Requested extra help",
		"Participated in school event",
		"Submitted assignment late",
		"Asked to stay after class",
	}
)

// Generator produces the synthetic dataset. The random source is injectable
// so tests can be deterministic.
type Generator struct {
	rnd *rand.Rand
	now time.Time
}

func NewGenerator(seed int64) *Generator {
	return &Generator{
		rnd: rand.New(rand.NewSource(seed)),
		now: time.Now().UTC(),
	}
}

func (g *Generator) choice(options []string) string {
	return options[g.rnd.Intn(len(options))]
}

func (g *Generator) randFloat(min, max float64) float64 {
	return min + g.rnd.Float64()*(max-min)
}

func (g *Generator) randInt(min, max int) int {
	return min + g.rnd.Intn(max-min+1)
}

func (g *Generator) daysAgo(days int) time.Time {
	return g.now.AddDate(0, 0, -days).Truncate(24 * time.Hour)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func (g *Generator) Students(count int) []student.Student {
	students := make([]student.Student, 0, count)
	for i := 0; i < count; i++ {
		first := g.choice(firstNames)
		last := g.choice(lastNames)
		attendanceRate := round2(g.randFloat(65, 98))
		gpa := round2(g.randFloat(1.5, 4.0))
		behaviorScore := round2(g.randFloat(1, 5))
		score := student.RiskScore(attendanceRate, gpa, behaviorScore)

		students = append(students, student.Student{
			ID:             uuid.New().String(),
			Name:           first + " " + last,
			Email:          fmt.Sprintf("%s.%s@school.edu", strings.ToLower(first), strings.ToLower(last)),
			Grade:          g.choice(gradeLevels),
			EnrollmentDate: g.daysAgo(g.randInt(30, 365)),
			AttendanceRate: attendanceRate,
			CurrentGPA:     gpa,
			BehaviorScore:  behaviorScore,
			RiskScore:      score,
			RiskLevel:      student.RiskLevelFor(score),
			LastUpdated:    g.now,
		})
	}
	return students
}

// AttendanceRecords samples 30 days of attendance per student, with daily
// draws biased by the student's summary attendance rate.
func (g *Generator) AttendanceRecords(students []student.Student) []student.AttendanceRecord {
	records := make([]student.AttendanceRecord, 0, len(students)*30)
	for _, st := range students {
		for day := 0; day < 30; day++ {
			var status student.AttendanceStatus
			if g.rnd.Float64()*100 < st.AttendanceRate {
				status = student.AttendancePresent
				if g.rnd.Float64() >= 0.9 {
					status = student.AttendanceLate
				}
			} else {
				status = student.AttendanceAbsent
				if g.rnd.Float64() >= 0.7 {
					status = student.AttendanceExcused
				}
			}
			var notes string
			if status == student.AttendanceAbsent && g.rnd.Float64() < 0.3 {
				notes = "Unexcused absence"
			}
			records = append(records, student.AttendanceRecord{
				ID:        uuid.New().String(),
				StudentID: st.ID,
				Date:      g.daysAgo(day),
				Status:    status,
				Notes:     notes,
			})
		}
	}
	return records
}

// GradeRecords samples 15-25 grades per student spread around their GPA.
func (g *Generator) GradeRecords(students []student.Student) []student.GradeRecord {
	var records []student.GradeRecord
	for _, st := range students {
		numRecords := g.randInt(15, 25)
		for i := 0; i < numRecords; i++ {
			category := categories[g.rnd.Intn(len(categories))]
			var maxScore float64
			switch category {
			case student.CategoryTest, student.CategoryProject:
				maxScore = 100
			case student.CategoryQuiz:
				maxScore = 50
			default:
				maxScore = 20
			}

			basePercentage := st.CurrentGPA / 4.0 * 100
			percentage := math.Max(0, math.Min(100, basePercentage+g.randFloat(-15, 15)))

			records = append(records, student.GradeRecord{
				ID:         uuid.New().String(),
				StudentID:  st.ID,
				Subject:    g.choice(subjects),
				Assignment: fmt.Sprintf("%s %d", category, i+1),
				Score:      math.Round(percentage / 100 * maxScore),
				MaxScore:   maxScore,
				Date:       g.daysAgo(g.randInt(1, 60)),
				Category:   category,
			})
		}
	}
	return records
}

// BehaviorRecords samples 3-8 incidents per student, with the type mix
// biased by the student's behavior score.
func (g *Generator) BehaviorRecords(students []student.Student) []student.BehaviorRecord {
	var records []student.BehaviorRecord
	for _, st := range students {
		numRecords := g.randInt(3, 8)
		for i := 0; i < numRecords; i++ {
			var behaviorType student.BehaviorType
			draw := g.rnd.Float64()
			switch {
			case st.BehaviorScore >= 4:
				behaviorType = pickType(draw, 0.7, 0.9)
			case st.BehaviorScore >= 3:
				behaviorType = pickType(draw, 0.4, 0.7)
			default:
				behaviorType = pickType(draw, 0.2, 0.4)
			}

			var descriptions []string
			var severity int
			switch behaviorType {
			case student.BehaviorPositive:
				descriptions, severity = positiveDescriptions, 1
			case student.BehaviorNegative:
				descriptions, severity = negativeDescriptions, g.randInt(2, 5)
			default:
				descriptions, severity = neutralDescriptions, g.randInt(1, 3)
			}

			records = append(records, student.BehaviorRecord{
				ID:          uuid.New().String(),
				StudentID:   st.ID,
				Date:        g.daysAgo(g.randInt(1, 30)),
				Type:        behaviorType,
				Description: g.choice(descriptions),
				Severity:    severity,
				ReportedBy:  g.choice(reporters),
			})
		}
	}
	return records
}

func pickType(draw, positiveCutoff, neutralCutoff float64) student.BehaviorType {
	switch {
	case draw < positiveCutoff:
		return student.BehaviorPositive
	case draw < neutralCutoff:
		return student.BehaviorNeutral
	default:
		return student.BehaviorNegative
	}
}

// Alerts are generated probabilistically for existing high/medium-risk
// students: 80% and 40% respectively. Those odds are fixed here, independent
// of the configurable risk thresholds.
func (g *Generator) Alerts(students []student.Student) []alert.Alert {
	var alerts []alert.Alert
	for _, st := range students {
		switch st.RiskLevel {
		case student.RiskHigh:
			if g.rnd.Float64() < 0.8 {
				alerts = append(alerts, alert.Alert{
					ID:           uuid.New().String(),
					StudentID:    st.ID,
					Type:         alert.TypeRiskLevelChange,
					Message:      fmt.Sprintf("%s has been classified as High Risk. Immediate intervention recommended.", st.Name),
					Severity:     alert.SeverityHigh,
					Timestamp:    g.now.Add(-time.Duration(g.randInt(1, 72)) * time.Hour),
					Acknowledged: g.rnd.Float64() < 0.3,
				})
			}
		case student.RiskMedium:
			if g.rnd.Float64() < 0.4 {
				alerts = append(alerts, alert.Alert{
					ID:           uuid.New().String(),
					StudentID:    st.ID,
					Type:         alert.TypeAttendanceWarning,
					Message:      fmt.Sprintf("%s attendance rate has dropped to %v%%.", st.Name, st.AttendanceRate),
					Severity:     alert.SeverityMedium,
					Timestamp:    g.now.Add(-time.Duration(g.randInt(1, 48)) * time.Hour),
					Acknowledged: g.rnd.Float64() < 0.6,
				})
			}
		}
	}
	return alerts
}

func (g *Generator) Predictions(students []student.Student) []prediction.RiskPrediction {
	predictions := make([]prediction.RiskPrediction, 0, len(students))
	for _, st := range students {
		attImpact := g.randFloat(-0.2, 0.1)
		if st.AttendanceRate < 80 {
			attImpact = g.randFloat(0.3, 0.6)
		}
		gpaImpact := g.randFloat(-0.3, 0.1)
		if st.CurrentGPA < 2.5 {
			gpaImpact = g.randFloat(0.2, 0.5)
		}
		behaviorImpact := g.randFloat(0.1, 0.4)
		if st.BehaviorScore > 3 {
			behaviorImpact = g.randFloat(-0.2, 0.1)
		}

		predictions = append(predictions, prediction.RiskPrediction{
			StudentID:  st.ID,
			RiskScore:  st.RiskScore,
			RiskLevel:  st.RiskLevel,
			Confidence: g.randFloat(0.7, 0.95),
			Factors: []prediction.Factor{
				{
					Feature:     "Attendance Rate",
					Impact:      attImpact,
					Description: fmt.Sprintf("Current attendance: %v%%", st.AttendanceRate),
				},
				{
					Feature:     "Academic Performance",
					Impact:      gpaImpact,
					Description: fmt.Sprintf("Current GPA: %v", st.CurrentGPA),
				},
				{
					Feature:     "Behavioral Indicators",
					Impact:      behaviorImpact,
					Description: fmt.Sprintf("Behavior score: %v/5", st.BehaviorScore),
				},
			},
			ModelVersion: "1.0.0",
			PredictedAt:  g.now,
		})
	}
	return predictions
}

func (g *Generator) ModelMetadata(sampleSize int) prediction.ModelMetadata {
	return prediction.ModelMetadata{
		Version:      "1.0.0",
		TrainingDate: g.now,
		SampleSize:   sampleSize,
		Accuracy:     0.87,
		Thresholds:   student.Thresholds{Low: 0.3, Medium: 0.6, High: 0.8},
	}
}

// Seed fills the store with a complete demo dataset.
func Seed(
	studentRepo student.Repository,
	alertRepo alert.Repository,
	predRepo prediction.Repository,
	count int,
	seed int64,
) error {
	if count <= 0 {
		count = DefaultStudentCount
	}
	g := NewGenerator(seed)

	students := g.Students(count)
	if err := studentRepo.SaveStudents(students); err != nil {
		return err
	}
	if err := studentRepo.SaveAttendanceRecords(g.AttendanceRecords(students)); err != nil {
		return err
	}
	if err := studentRepo.SaveGradeRecords(g.GradeRecords(students)); err != nil {
		return err
	}
	if err := studentRepo.SaveBehaviorRecords(g.BehaviorRecords(students)); err != nil {
		return err
	}
	if err := alertRepo.SaveAlerts(g.Alerts(students)); err != nil {
		return err
	}
	if err := predRepo.SavePredictions(g.Predictions(students)); err != nil {
		return err
	}
	return predRepo.SaveModelMetadata(g.ModelMetadata(count))
}
