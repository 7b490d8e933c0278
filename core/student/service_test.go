package student

import (
	"testing"
	"time"
)

// fakeRepository is a minimal in-memory Repository for service tests.
type fakeRepository struct {
	students   map[string]Student
	attendance []AttendanceRecord
	grades     []GradeRecord
	behavior   []BehaviorRecord
}

var _ Repository = (*fakeRepository)(nil)

func newFakeRepository() *fakeRepository {
	return &fakeRepository{students: make(map[string]Student)}
}

func (r *fakeRepository) QueryAllStudents() ([]Student, error) {
	students := make([]Student, 0, len(r.students))
	for _, st := range r.students {
		students = append(students, st)
	}
	return students, nil
}

func (r *fakeRepository) GetStudentByID(id string) (Student, error) {
	st, ok := r.students[id]
	if !ok {
		return Student{}, ErrNotFound
	}
	return st, nil
}

func (r *fakeRepository) SaveStudent(s Student) error {
	r.students[s.ID] = s
	return nil
}

func (r *fakeRepository) SaveStudents(students []Student) error {
	for _, st := range students {
		r.students[st.ID] = st
	}
	return nil
}

func (r *fakeRepository) UpdateStudent(id string, up UpdateStudent) (Student, error) {
	st, ok := r.students[id]
	if !ok {
		return Student{}, ErrNotFound
	}
	if up.Name != nil {
		st.Name = *up.Name
	}
	if up.Email != nil {
		st.Email = *up.Email
	}
	if up.Grade != nil {
		st.Grade = *up.Grade
	}
	if up.AttendanceRate != nil {
		st.AttendanceRate = *up.AttendanceRate
	}
	if up.CurrentGPA != nil {
		st.CurrentGPA = *up.CurrentGPA
	}
	if up.BehaviorScore != nil {
		st.BehaviorScore = *up.BehaviorScore
	}
	if up.RiskScore != nil {
		st.RiskScore = *up.RiskScore
	}
	if up.RiskLevel != nil {
		st.RiskLevel = *up.RiskLevel
	}
	st.LastUpdated = time.Now().UTC()
	r.students[id] = st
	return st, nil
}

func (r *fakeRepository) DeleteStudent(id string) error {
	if _, ok := r.students[id]; !ok {
		return ErrNotFound
	}
	delete(r.students, id)
	return nil
}

func (r *fakeRepository) QueryAttendanceRecords(studentID string) ([]AttendanceRecord, error) {
	if studentID == "" {
		return r.attendance, nil
	}
	var records []AttendanceRecord
	for _, rec := range r.attendance {
		if rec.StudentID == studentID {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (r *fakeRepository) SaveAttendanceRecord(rec AttendanceRecord) error {
	r.attendance = append(r.attendance, rec)
	return nil
}

func (r *fakeRepository) SaveAttendanceRecords(records []AttendanceRecord) error {
	r.attendance = append(r.attendance, records...)
	return nil
}

func (r *fakeRepository) QueryGradeRecords(studentID string) ([]GradeRecord, error) {
	if studentID == "" {
		return r.grades, nil
	}
	var records []GradeRecord
	for _, rec := range r.grades {
		if rec.StudentID == studentID {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (r *fakeRepository) SaveGradeRecord(rec GradeRecord) error {
	r.grades = append(r.grades, rec)
	return nil
}

func (r *fakeRepository) SaveGradeRecords(records []GradeRecord) error {
	r.grades = append(r.grades, records...)
	return nil
}

func (r *fakeRepository) QueryBehaviorRecords(studentID string) ([]BehaviorRecord, error) {
	if studentID == "" {
		return r.behavior, nil
	}
	var records []BehaviorRecord
	for _, rec := range r.behavior {
		if rec.StudentID == studentID {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (r *fakeRepository) SaveBehaviorRecord(rec BehaviorRecord) error {
	r.behavior = append(r.behavior, rec)
	return nil
}

func (r *fakeRepository) SaveBehaviorRecords(records []BehaviorRecord) error {
	r.behavior = append(r.behavior, records...)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestService_Enroll(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nopLogger{})

	st, err := svc.Enroll(NewStudent{
		Name:           "Emma Johnson",
		Email:          "emma@test.cd",
		Grade:          "9th",
		AttendanceRate: 95,
		CurrentGPA:     3.8,
		BehaviorScore:  4.5,
	})
	if err != nil {
		t.Fatalf("Enroll() failed: %v", err)
	}
	if st.ID == "" {
		t.Error("Enroll() did not assign an id")
	}
	if st.RiskScore != 0.22 {
		t.Errorf("Enroll() RiskScore = %v; want 0.22", st.RiskScore)
	}
	if st.RiskLevel != RiskLow {
		t.Errorf("Enroll() RiskLevel = %v; want %v", st.RiskLevel, RiskLow)
	}
	if st.EnrollmentDate.IsZero() {
		t.Error("Enroll() did not default the enrollment date")
	}

	saved, err := repo.GetStudentByID(st.ID)
	if err != nil {
		t.Fatalf("GetStudentByID() failed: %v", err)
	}
	if saved != st {
		t.Errorf("saved student = %+v; want %+v", saved, st)
	}
}

func TestService_Update_recomputesRisk(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nopLogger{})

	st, err := svc.Enroll(NewStudent{
		Name: "Liam Williams", Email: "liam@test.cd", Grade: "10th",
		AttendanceRate: 95, CurrentGPA: 3.8, BehaviorScore: 4.5,
	})
	if err != nil {
		t.Fatalf("Enroll() failed: %v", err)
	}

	att, gpa := 50.0, 2.0
	behavior := 3.0
	updated, err := svc.Update(st.ID, UpdateStudent{
		AttendanceRate: &att,
		CurrentGPA:     &gpa,
		BehaviorScore:  &behavior,
	})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if updated.RiskScore != 0.52 {
		t.Errorf("Update() RiskScore = %v; want 0.52", updated.RiskScore)
	}
	if updated.RiskLevel != RiskMedium {
		t.Errorf("Update() RiskLevel = %v; want %v", updated.RiskLevel, RiskMedium)
	}

	// a metric-free update must not touch the classification
	name := "Liam W."
	updated, err = svc.Update(st.ID, UpdateStudent{Name: &name})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if updated.RiskScore != 0.52 || updated.RiskLevel != RiskMedium {
		t.Errorf("Update() changed risk without metric change: score=%v level=%v", updated.RiskScore, updated.RiskLevel)
	}
}

func TestService_Update_notFound(t *testing.T) {
	svc := NewService(newFakeRepository(), nopLogger{})
	name := "ghost"
	if _, err := svc.Update("nope", UpdateStudent{Name: &name}); err != ErrNotFound {
		t.Errorf("Update() err = %v; want ErrNotFound", err)
	}
}

func TestService_RecordAttendance(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nopLogger{})

	r, err := svc.RecordAttendance(NewAttendanceRecord{
		StudentID: "s1",
		Date:      time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Status:    AttendanceLate,
		Notes:     "Overslept",
	})
	if err != nil {
		t.Fatalf("RecordAttendance() failed: %v", err)
	}
	if r.ID == "" {
		t.Error("RecordAttendance() did not assign an id")
	}

	records, _ := svc.QueryAttendance("s1")
	if len(records) != 1 || records[0] != r {
		t.Errorf("QueryAttendance() = %+v; want [%+v]", records, r)
	}
	if records, _ := svc.QueryAttendance("other"); len(records) != 0 {
		t.Errorf("QueryAttendance(other) = %+v; want empty", records)
	}
}

func TestNewStudent_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ns      NewStudent
		wantErr bool
	}{
		{
			name: "valid",
			ns: NewStudent{
				Name: "Ava", Email: "ava@test.cd", Grade: "11th",
				AttendanceRate: 88, CurrentGPA: 3.1, BehaviorScore: 4,
			},
		},
		{
			name: "missing name",
			ns: NewStudent{
				Email: "ava@test.cd", Grade: "11th",
				AttendanceRate: 88, CurrentGPA: 3.1, BehaviorScore: 4,
			},
			wantErr: true,
		},
		{
			name: "bad email",
			ns: NewStudent{
				Name: "Ava", Email: "not-an-email", Grade: "11th",
				AttendanceRate: 88, CurrentGPA: 3.1, BehaviorScore: 4,
			},
			wantErr: true,
		},
		{
			name: "attendance out of range",
			ns: NewStudent{
				Name: "Ava", Email: "ava@test.cd", Grade: "11th",
				AttendanceRate: 120, CurrentGPA: 3.1, BehaviorScore: 4,
			},
			wantErr: true,
		},
		{
			name: "gpa out of range",
			ns: NewStudent{
				Name: "Ava", Email: "ava@test.cd", Grade: "11th",
				AttendanceRate: 88, CurrentGPA: 4.5, BehaviorScore: 4,
			},
			wantErr: true,
		},
		{
			name: "behavior below minimum",
			ns: NewStudent{
				Name: "Ava", Email: "ava@test.cd", Grade: "11th",
				AttendanceRate: 88, CurrentGPA: 3.1, BehaviorScore: 0.5,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ns.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v; wantErr %v", err, tt.wantErr)
			}
		})
	}
}
