package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/hatari/core/alert"
	"github.com/trezcool/hatari/core/prediction"
	"github.com/trezcool/hatari/core/setting"
	"github.com/trezcool/hatari/core/student"
	inmemkv "github.com/trezcool/hatari/storage/kv/inmem"
)

func date(day int) time.Time {
	return time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC)
}

func sampleStudent(id string) student.Student {
	return student.Student{
		ID:             id,
		Name:           "Emma Johnson",
		Email:          "emma@test.cd",
		Grade:          "9th",
		EnrollmentDate: date(1),
		AttendanceRate: 95,
		CurrentGPA:     3.8,
		BehaviorScore:  4.5,
		RiskScore:      0.22,
		RiskLevel:      student.RiskLow,
		LastUpdated:    date(2),
	}
}

func TestStudentRepository_roundTrip(t *testing.T) {
	repo := NewStudentRepository(inmemkv.Open())

	if _, err := repo.GetStudentByID("nope"); err != student.ErrNotFound {
		t.Errorf("GetStudentByID() err = %v; want ErrNotFound", err)
	}
	students, err := repo.QueryAllStudents()
	if err != nil {
		t.Fatalf("QueryAllStudents() failed: %v", err)
	}
	if len(students) != 0 {
		t.Errorf("QueryAllStudents() on empty store = %+v; want empty", students)
	}

	st := sampleStudent("s1")
	if err := repo.SaveStudent(st); err != nil {
		t.Fatalf("SaveStudent() failed: %v", err)
	}
	got, err := repo.GetStudentByID("s1")
	if err != nil {
		t.Fatalf("GetStudentByID() failed: %v", err)
	}
	assert.Equal(t, st, got, "round trip mismatch")

	// saving the same id replaces, not appends
	st.Name = "Emma J."
	if err := repo.SaveStudent(st); err != nil {
		t.Fatalf("SaveStudent() failed: %v", err)
	}
	students, _ = repo.QueryAllStudents()
	if len(students) != 1 {
		t.Fatalf("QueryAllStudents() = %d students; want 1", len(students))
	}
	if students[0].Name != "Emma J." {
		t.Errorf("upsert did not replace: name = %v", students[0].Name)
	}
}

func TestStudentRepository_UpdateStudent(t *testing.T) {
	repo := NewStudentRepository(inmemkv.Open())
	st := sampleStudent("s1")
	if err := repo.SaveStudent(st); err != nil {
		t.Fatalf("SaveStudent() failed: %v", err)
	}

	gpa := 2.5
	updated, err := repo.UpdateStudent("s1", student.UpdateStudent{CurrentGPA: &gpa})
	if err != nil {
		t.Fatalf("UpdateStudent() failed: %v", err)
	}
	if updated.CurrentGPA != 2.5 {
		t.Errorf("CurrentGPA = %v; want 2.5", updated.CurrentGPA)
	}
	// unset fields are left untouched
	if updated.Name != st.Name || updated.AttendanceRate != st.AttendanceRate {
		t.Errorf("UpdateStudent() touched unset fields: %+v", updated)
	}
	if !updated.LastUpdated.After(st.LastUpdated) {
		t.Errorf("LastUpdated = %v; want refreshed", updated.LastUpdated)
	}

	if _, err := repo.UpdateStudent("nope", student.UpdateStudent{CurrentGPA: &gpa}); err != student.ErrNotFound {
		t.Errorf("UpdateStudent() err = %v; want ErrNotFound", err)
	}
}

// Deleting a student keeps its attendance, grade and behavior records around.
func TestStudentRepository_DeleteStudent_noCascade(t *testing.T) {
	repo := NewStudentRepository(inmemkv.Open())
	if err := repo.SaveStudent(sampleStudent("s1")); err != nil {
		t.Fatalf("SaveStudent() failed: %v", err)
	}
	if err := repo.SaveAttendanceRecord(student.AttendanceRecord{
		ID: "a1", StudentID: "s1", Date: date(2), Status: student.AttendancePresent,
	}); err != nil {
		t.Fatalf("SaveAttendanceRecord() failed: %v", err)
	}

	if err := repo.DeleteStudent("s1"); err != nil {
		t.Fatalf("DeleteStudent() failed: %v", err)
	}
	if _, err := repo.GetStudentByID("s1"); err != student.ErrNotFound {
		t.Errorf("GetStudentByID() err = %v; want ErrNotFound", err)
	}
	records, err := repo.QueryAttendanceRecords("s1")
	if err != nil {
		t.Fatalf("QueryAttendanceRecords() failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("attendance records after delete = %d; want 1", len(records))
	}
}

func TestStudentRepository_queryRecordsByStudent(t *testing.T) {
	repo := NewStudentRepository(inmemkv.Open())
	records := []student.GradeRecord{
		{ID: "g1", StudentID: "s1", Subject: "Math", Assignment: "Quiz 1", Score: 9, MaxScore: 10, Date: date(3), Category: student.CategoryQuiz},
		{ID: "g2", StudentID: "s2", Subject: "Math", Assignment: "Quiz 1", Score: 7, MaxScore: 10, Date: date(3), Category: student.CategoryQuiz},
		{ID: "g3", StudentID: "s1", Subject: "English", Assignment: "Essay", Score: 80, MaxScore: 100, Date: date(4), Category: student.CategoryHomework},
	}
	if err := repo.SaveGradeRecords(records); err != nil {
		t.Fatalf("SaveGradeRecords() failed: %v", err)
	}

	all, err := repo.QueryGradeRecords("")
	if err != nil {
		t.Fatalf("QueryGradeRecords() failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("QueryGradeRecords(\"\") = %d records; want 3", len(all))
	}

	s1, err := repo.QueryGradeRecords("s1")
	if err != nil {
		t.Fatalf("QueryGradeRecords(s1) failed: %v", err)
	}
	if len(s1) != 2 {
		t.Errorf("QueryGradeRecords(s1) = %d records; want 2", len(s1))
	}
	for _, r := range s1 {
		if r.StudentID != "s1" {
			t.Errorf("got record for student %v; want s1", r.StudentID)
		}
	}
}

func TestAlertRepository_UpdateAlert(t *testing.T) {
	repo := NewAlertRepository(inmemkv.Open())
	a := alert.Alert{
		ID: "a1", StudentID: "s1", Type: alert.TypeManual,
		Message: "check in with Emma", Severity: alert.SeverityMedium, Timestamp: date(5),
	}
	if err := repo.SaveAlert(a); err != nil {
		t.Fatalf("SaveAlert() failed: %v", err)
	}

	ackAt := date(6)
	updated, err := repo.UpdateAlert("a1", alert.UpdateAlert{
		Acknowledged: true, AcknowledgedBy: "Ms. Davis", AcknowledgedAt: ackAt,
	})
	if err != nil {
		t.Fatalf("UpdateAlert() failed: %v", err)
	}
	if !updated.Acknowledged || updated.AcknowledgedBy != "Ms. Davis" {
		t.Errorf("UpdateAlert() = %+v; want acknowledged by Ms. Davis", updated)
	}
	if updated.AcknowledgedAt == nil || !updated.AcknowledgedAt.Equal(ackAt) {
		t.Errorf("AcknowledgedAt = %v; want %v", updated.AcknowledgedAt, ackAt)
	}

	if _, err := repo.UpdateAlert("nope", alert.UpdateAlert{}); err != alert.ErrNotFound {
		t.Errorf("UpdateAlert() err = %v; want ErrNotFound", err)
	}
}

// A new prediction for the same student replaces the stored one.
func TestPredictionRepository_upsertByStudent(t *testing.T) {
	repo := NewPredictionRepository(inmemkv.Open())

	if _, err := repo.GetPredictionByStudentID("s1"); err != prediction.ErrNotFound {
		t.Errorf("GetPredictionByStudentID() err = %v; want ErrNotFound", err)
	}

	p1 := prediction.RiskPrediction{
		StudentID: "s1", RiskScore: 0.3, RiskLevel: student.RiskMedium,
		Confidence: 0.8, Factors: []prediction.Factor{}, ModelVersion: "1.0.0-gemini", PredictedAt: date(7),
	}
	if err := repo.SavePrediction(p1); err != nil {
		t.Fatalf("SavePrediction() failed: %v", err)
	}

	p2 := p1
	p2.RiskScore = 0.7
	p2.RiskLevel = student.RiskHigh
	p2.PredictedAt = date(8)
	if err := repo.SavePrediction(p2); err != nil {
		t.Fatalf("SavePrediction() failed: %v", err)
	}

	predictions, err := repo.QueryAllPredictions()
	if err != nil {
		t.Fatalf("QueryAllPredictions() failed: %v", err)
	}
	if len(predictions) != 1 {
		t.Fatalf("QueryAllPredictions() = %d predictions; want 1", len(predictions))
	}
	got, err := repo.GetPredictionByStudentID("s1")
	if err != nil {
		t.Fatalf("GetPredictionByStudentID() failed: %v", err)
	}
	assert.Equal(t, p2, got, "latest prediction must win")
}

func TestPredictionRepository_modelMetadata(t *testing.T) {
	repo := NewPredictionRepository(inmemkv.Open())

	if _, err := repo.GetModelMetadata(); err != prediction.ErrNoMetadata {
		t.Errorf("GetModelMetadata() err = %v; want ErrNoMetadata", err)
	}

	meta := prediction.ModelMetadata{
		Version: "1.0.0", TrainingDate: date(9), SampleSize: 200, Accuracy: 0.87,
		Thresholds: student.Thresholds{Low: 0.3, Medium: 0.6, High: 0.8},
	}
	if err := repo.SaveModelMetadata(meta); err != nil {
		t.Fatalf("SaveModelMetadata() failed: %v", err)
	}
	got, err := repo.GetModelMetadata()
	if err != nil {
		t.Fatalf("GetModelMetadata() failed: %v", err)
	}
	assert.Equal(t, meta, got)
}

func TestSettingRepository(t *testing.T) {
	repo := NewSettingRepository(inmemkv.Open())

	// reads before any save return the defaults
	s, err := repo.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() failed: %v", err)
	}
	assert.Equal(t, setting.Defaults(), s, "empty store must serve defaults")

	s.AlertSettings.EnableEmailAlerts = true
	s.RiskThresholds.High = 0.9
	if err := repo.SaveSettings(s); err != nil {
		t.Fatalf("SaveSettings() failed: %v", err)
	}
	got, err := repo.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() failed: %v", err)
	}
	assert.Equal(t, s, got)

	key, err := repo.GetAPIKey()
	if err != nil {
		t.Fatalf("GetAPIKey() failed: %v", err)
	}
	if key != "" {
		t.Errorf("GetAPIKey() on empty store = %q; want empty", key)
	}
	if err := repo.SaveAPIKey("gm-test-key"); err != nil {
		t.Fatalf("SaveAPIKey() failed: %v", err)
	}
	if key, _ = repo.GetAPIKey(); key != "gm-test-key" {
		t.Errorf("GetAPIKey() = %q; want gm-test-key", key)
	}
}
