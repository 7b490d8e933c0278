package prediction

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/trezcool/hatari/core"
	"github.com/trezcool/hatari/core/student"
)

const (
	remoteModelVersion   = "1.0.0-gemini"
	fallbackModelVersion = "1.0.0-fallback"
	fallbackConfidence   = 0.75

	// batch controls: a crude rate limit for the remote endpoint, not real
	// backpressure.
	batchSize  = 5
	batchDelay = time.Second
)

var (
	nowFunc   = time.Now  // mockable
	sleepFunc = time.Sleep
)

type (
	// TextGenerator is any client that can turn a prompt into generated
	// text; the Gemini client in services/ai implements it.
	TextGenerator interface {
		Generate(ctx context.Context, prompt string) (string, error)
	}

	Service struct {
		gen    TextGenerator
		logger core.Logger
	}
)

func NewService(gen TextGenerator, logger core.Logger) *Service {
	return &Service{gen: gen, logger: logger}
}

// Predict produces a risk assessment for one student. It first asks the
// remote model; on any failure (transport, HTTP status, unusable response)
// it silently falls back to the deterministic rule-based formula, so it
// never returns a hard failure to the caller.
func (svc *Service) Predict(
	ctx context.Context,
	st student.Student,
	attendance []student.AttendanceRecord,
	grades []student.GradeRecord,
	behavior []student.BehaviorRecord,
) RiskPrediction {
	snap := snapshot(st, attendance, grades, behavior)

	text, err := svc.gen.Generate(ctx, buildPrompt(snap))
	if err != nil {
		svc.logger.Warn(fmt.Sprintf("remote prediction failed for student %s, using fallback", st.ID), err)
		return svc.Fallback(st)
	}
	pred, err := parseModelAnswer(st.ID, text)
	if err != nil {
		svc.logger.Warn(fmt.Sprintf("unusable model response for student %s, using fallback", st.ID), err)
		return svc.Fallback(st)
	}
	return pred
}

// Fallback is the deterministic rule-based prediction used whenever the
// remote model cannot be reached or understood.
func (svc *Service) Fallback(st student.Student) RiskPrediction {
	attendanceNorm := st.AttendanceRate / 100
	gpaNorm := st.CurrentGPA / 4.0
	score := student.RiskScore(st.AttendanceRate, st.CurrentGPA, st.BehaviorScore)

	attImpact := -0.1
	if attendanceNorm < 0.8 {
		attImpact = 0.3
	}
	gpaImpact := -0.2
	if gpaNorm < 0.6 {
		gpaImpact = 0.4
	}
	behaviorImpact := -0.1
	if (5-st.BehaviorScore)/5 > 0.6 {
		behaviorImpact = 0.2
	}

	return RiskPrediction{
		StudentID:  st.ID,
		RiskScore:  score,
		RiskLevel:  student.RiskLevelFor(score),
		Confidence: fallbackConfidence,
		Factors: []Factor{
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
		ModelVersion: fallbackModelVersion,
		PredictedAt:  nowFunc().UTC(),
	}
}

// BatchPredict runs predictions for all students in fixed-size batches:
// concurrent within a batch, with a delay between successive batches to
// respect the remote endpoint's rate limits. Results are returned in input
// order regardless of completion order.
func (svc *Service) BatchPredict(
	ctx context.Context,
	students []student.Student,
	allAttendance []student.AttendanceRecord,
	allGrades []student.GradeRecord,
	allBehavior []student.BehaviorRecord,
) []RiskPrediction {
	attendanceByStudent := make(map[string][]student.AttendanceRecord)
	for _, r := range allAttendance {
		attendanceByStudent[r.StudentID] = append(attendanceByStudent[r.StudentID], r)
	}
	gradesByStudent := make(map[string][]student.GradeRecord)
	for _, r := range allGrades {
		gradesByStudent[r.StudentID] = append(gradesByStudent[r.StudentID], r)
	}
	behaviorByStudent := make(map[string][]student.BehaviorRecord)
	for _, r := range allBehavior {
		behaviorByStudent[r.StudentID] = append(behaviorByStudent[r.StudentID], r)
	}

	predictions := make([]RiskPrediction, len(students))
	for start := 0; start < len(students); start += batchSize {
		end := start + batchSize
		if end > len(students) {
			end = len(students)
		}

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			i := i
			st := students[i]
			g.Go(func() error {
				predictions[i] = svc.Predict(
					gctx, st,
					attendanceByStudent[st.ID],
					gradesByStudent[st.ID],
					behaviorByStudent[st.ID],
				)
				return nil
			})
		}
		_ = g.Wait() // Predict never fails; it substitutes a fallback instead

		if end < len(students) {
			sleepFunc(batchDelay)
		}
	}
	return predictions
}
