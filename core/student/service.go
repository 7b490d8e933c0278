package student

import (
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/hatari/core"
)

type (
	// Repository is the storage contract for students and their related
	// records. Saves are upserts by primary key; queries for an absent
	// collection return an empty list.
	Repository interface {
		QueryAllStudents() ([]Student, error)
		GetStudentByID(id string) (Student, error)
		SaveStudent(s Student) error
		SaveStudents(students []Student) error
		// UpdateStudent merges set fields into the stored record and
		// refreshes LastUpdated.
		UpdateStudent(id string, up UpdateStudent) (Student, error)
		// DeleteStudent removes the student only; related attendance, grade
		// and behavior records are NOT cascaded (known gap, kept for
		// compatibility with stored data).
		DeleteStudent(id string) error

		// QueryAttendanceRecords returns all records, or only those of the
		// given student when studentID is non-empty. Same for grades and
		// behavior below.
		QueryAttendanceRecords(studentID string) ([]AttendanceRecord, error)
		SaveAttendanceRecord(r AttendanceRecord) error
		SaveAttendanceRecords(records []AttendanceRecord) error
		QueryGradeRecords(studentID string) ([]GradeRecord, error)
		SaveGradeRecord(r GradeRecord) error
		SaveGradeRecords(records []GradeRecord) error
		QueryBehaviorRecords(studentID string) ([]BehaviorRecord, error)
		SaveBehaviorRecord(r BehaviorRecord) error
		SaveBehaviorRecords(records []BehaviorRecord) error
	}

	Service struct {
		repo   Repository
		logger core.Logger
	}
)

var nowFunc = time.Now // mockable

func NewService(repo Repository, logger core.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Enroll creates a new Student with its risk classification derived from the
// provided rolling metrics.
func (svc *Service) Enroll(ns NewStudent) (Student, error) {
	now := nowFunc().UTC()
	enrolled := ns.EnrollmentDate
	if enrolled.IsZero() {
		enrolled = now
	}
	score := RiskScore(ns.AttendanceRate, ns.CurrentGPA, ns.BehaviorScore)
	st := Student{
		ID:             uuid.New().String(),
		Name:           ns.Name,
		Email:          ns.Email,
		Grade:          ns.Grade,
		EnrollmentDate: enrolled,
		AttendanceRate: ns.AttendanceRate,
		CurrentGPA:     ns.CurrentGPA,
		BehaviorScore:  ns.BehaviorScore,
		RiskScore:      score,
		RiskLevel:      RiskLevelFor(score),
		LastUpdated:    now,
	}
	if err := svc.repo.SaveStudent(st); err != nil {
		return Student{}, err
	}
	return st, nil
}

func (svc *Service) QueryAll() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

func (svc *Service) GetByID(id string) (Student, error) {
	return svc.repo.GetStudentByID(id)
}

// Update merges the set fields into the student. Whenever a rolling metric
// changes, the risk score and level are recomputed so the stored
// classification stays consistent with the active formula.
func (svc *Service) Update(id string, up UpdateStudent) (Student, error) {
	orig, err := svc.repo.GetStudentByID(id)
	if err != nil {
		return Student{}, err
	}

	if up.AttendanceRate != nil || up.CurrentGPA != nil || up.BehaviorScore != nil {
		att, gpa, behavior := orig.AttendanceRate, orig.CurrentGPA, orig.BehaviorScore
		if up.AttendanceRate != nil {
			att = *up.AttendanceRate
		}
		if up.CurrentGPA != nil {
			gpa = *up.CurrentGPA
		}
		if up.BehaviorScore != nil {
			behavior = *up.BehaviorScore
		}
		score := RiskScore(att, gpa, behavior)
		level := RiskLevelFor(score)
		up.RiskScore = &score
		up.RiskLevel = &level
	}
	return svc.repo.UpdateStudent(id, up)
}

func (svc *Service) Delete(id string) error {
	return svc.repo.DeleteStudent(id)
}

func (svc *Service) QueryAttendance(studentID string) ([]AttendanceRecord, error) {
	return svc.repo.QueryAttendanceRecords(studentID)
}

func (svc *Service) RecordAttendance(nr NewAttendanceRecord) (AttendanceRecord, error) {
	r := AttendanceRecord{
		ID:        uuid.New().String(),
		StudentID: nr.StudentID,
		Date:      nr.Date,
		Status:    nr.Status,
		Notes:     nr.Notes,
	}
	if err := svc.repo.SaveAttendanceRecord(r); err != nil {
		return AttendanceRecord{}, err
	}
	return r, nil
}

func (svc *Service) QueryGrades(studentID string) ([]GradeRecord, error) {
	return svc.repo.QueryGradeRecords(studentID)
}

func (svc *Service) RecordGrade(nr NewGradeRecord) (GradeRecord, error) {
	r := GradeRecord{
		ID:         uuid.New().String(),
		StudentID:  nr.StudentID,
		Subject:    nr.Subject,
		Assignment: nr.Assignment,
		Score:      nr.Score,
		MaxScore:   nr.MaxScore,
		Date:       nr.Date,
		Category:   nr.Category,
	}
	if err := svc.repo.SaveGradeRecord(r); err != nil {
		return GradeRecord{}, err
	}
	return r, nil
}

func (svc *Service) QueryBehavior(studentID string) ([]BehaviorRecord, error) {
	return svc.repo.QueryBehaviorRecords(studentID)
}

func (svc *Service) RecordBehavior(nr NewBehaviorRecord) (BehaviorRecord, error) {
	r := BehaviorRecord{
		ID:          uuid.New().String(),
		StudentID:   nr.StudentID,
		Date:        nr.Date,
		Type:        nr.Type,
		Description: nr.Description,
		Severity:    nr.Severity,
		ReportedBy:  nr.ReportedBy,
	}
	if err := svc.repo.SaveBehaviorRecord(r); err != nil {
		return BehaviorRecord{}, err
	}
	return r, nil
}
