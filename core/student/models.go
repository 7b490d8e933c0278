package student

import (
	"errors"
	"time"

	"github.com/trezcool/hatari/core"
)

var (
	// errors
	ErrNotFound = errors.New("student not found")
)

// Risk levels, derived from a normalized risk score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Thresholds are the risk score cutoffs for each level.
type Thresholds struct {
	Low    float64 `json:"low" validate:"gte=0,lte=1"`
	Medium float64 `json:"medium" validate:"gte=0,lte=1,gtfield=Low"`
	High   float64 `json:"high" validate:"gte=0,lte=1,gtfield=Medium"`
}

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceLate    AttendanceStatus = "Late"
	AttendanceExcused AttendanceStatus = "Excused"
)

type GradeCategory string

const (
	CategoryHomework      GradeCategory = "Homework"
	CategoryQuiz          GradeCategory = "Quiz"
	CategoryTest          GradeCategory = "Test"
	CategoryProject       GradeCategory = "Project"
	CategoryParticipation GradeCategory = "Participation"
)

type BehaviorType string

const (
	BehaviorPositive BehaviorType = "Positive"
	BehaviorNegative BehaviorType = "Negative"
	BehaviorNeutral  BehaviorType = "Neutral"
)

type Student struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Grade          string    `json:"grade"`
	EnrollmentDate time.Time `json:"enrollment_date"`
	AttendanceRate float64   `json:"attendance_rate"` // percentage, 0-100
	CurrentGPA     float64   `json:"current_gpa"`     // 0-4
	BehaviorScore  float64   `json:"behavior_score"`  // 1-5, higher is better
	RiskLevel      RiskLevel `json:"risk_level"`
	RiskScore      float64   `json:"risk_score"`
	LastUpdated    time.Time `json:"last_updated"` // UTC
}

type AttendanceRecord struct {
	ID        string           `json:"id"`
	StudentID string           `json:"student_id"`
	Date      time.Time        `json:"date"`
	Status    AttendanceStatus `json:"status"`
	Notes     string           `json:"notes,omitempty"`
}

type GradeRecord struct {
	ID         string        `json:"id"`
	StudentID  string        `json:"student_id"`
	Subject    string        `json:"subject"`
	Assignment string        `json:"assignment"`
	Score      float64       `json:"score"`
	MaxScore   float64       `json:"max_score"`
	Date       time.Time     `json:"date"`
	Category   GradeCategory `json:"category"`
}

type BehaviorRecord struct {
	ID          string       `json:"id"`
	StudentID   string       `json:"student_id"`
	Date        time.Time    `json:"date"`
	Type        BehaviorType `json:"type"`
	Description string       `json:"description"`
	Severity    int          `json:"severity"` // 1-5
	ReportedBy  string       `json:"reported_by"`
}

// NewStudent contains information needed to enroll a new Student.
type NewStudent struct {
	Name           string    `json:"name" validate:"required"`
	Email          string    `json:"email" validate:"required,email"`
	Grade          string    `json:"grade" validate:"required"`
	EnrollmentDate time.Time `json:"enrollment_date"`
	AttendanceRate float64   `json:"attendance_rate" validate:"gte=0,lte=100"`
	CurrentGPA     float64   `json:"current_gpa" validate:"gte=0,lte=4"`
	BehaviorScore  float64   `json:"behavior_score" validate:"gte=1,lte=5"`
}

func (ns *NewStudent) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true)
	return core.TranslateValidationError(core.Validate.Struct(ns))
}

// UpdateStudent defines what information may be provided to modify an
// existing Student. Nil fields are left untouched.
type UpdateStudent struct {
	Name           *string  `json:"name"`
	Email          *string  `json:"email" validate:"omitempty,email"`
	Grade          *string  `json:"grade"`
	AttendanceRate *float64 `json:"attendance_rate" validate:"omitempty,gte=0,lte=100"`
	CurrentGPA     *float64 `json:"current_gpa" validate:"omitempty,gte=0,lte=4"`
	BehaviorScore  *float64 `json:"behavior_score" validate:"omitempty,gte=1,lte=5"`

	// derived; recomputed by the service whenever a rolling metric changes
	RiskLevel *RiskLevel `json:"-"`
	RiskScore *float64   `json:"-"`
}

func (us *UpdateStudent) Validate() error {
	return core.TranslateValidationError(core.Validate.Struct(us))
}

// NewAttendanceRecord contains information needed to record attendance.
type NewAttendanceRecord struct {
	StudentID string           `json:"student_id" validate:"required"`
	Date      time.Time        `json:"date" validate:"required"`
	Status    AttendanceStatus `json:"status" validate:"required,oneof=Present Absent Late Excused"`
	Notes     string           `json:"notes"`
}

func (nr *NewAttendanceRecord) Validate() error {
	return core.TranslateValidationError(core.Validate.Struct(nr))
}

// NewGradeRecord contains information needed to record a grade.
type NewGradeRecord struct {
	StudentID  string        `json:"student_id" validate:"required"`
	Subject    string        `json:"subject" validate:"required"`
	Assignment string        `json:"assignment" validate:"required"`
	Score      float64       `json:"score" validate:"gte=0"`
	MaxScore   float64       `json:"max_score" validate:"gt=0"`
	Date       time.Time     `json:"date" validate:"required"`
	Category   GradeCategory `json:"category" validate:"required,oneof=Homework Quiz Test Project Participation"`
}

func (nr *NewGradeRecord) Validate() error {
	return core.TranslateValidationError(core.Validate.Struct(nr))
}

// NewBehaviorRecord contains information needed to record a behavior incident.
type NewBehaviorRecord struct {
	StudentID   string       `json:"student_id" validate:"required"`
	Date        time.Time    `json:"date" validate:"required"`
	Type        BehaviorType `json:"type" validate:"required,oneof=Positive Negative Neutral"`
	Description string       `json:"description" validate:"required"`
	Severity    int          `json:"severity" validate:"gte=1,lte=5"`
	ReportedBy  string       `json:"reported_by" validate:"required"`
}

func (nr *NewBehaviorRecord) Validate() error {
	nr.Description = core.CleanString(nr.Description)
	return core.TranslateValidationError(core.Validate.Struct(nr))
}
