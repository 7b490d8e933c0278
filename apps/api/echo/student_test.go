package echoapi

import (
	"net/http"
	"testing"

	"github.com/trezcool/hatari/core/alert"
	"github.com/trezcool/hatari/core/student"
)

func Test_studentApi_studentCreate(t *testing.T) {
	app := setup(t)

	rec := app.request(t, http.MethodPost, "/v1/students", map[string]interface{}{
		"name":            "Emma Johnson",
		"email":           "emma@test.cd",
		"grade":           "9th",
		"attendance_rate": 95,
		"current_gpa":     3.8,
		"behavior_score":  4.5,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %d; want 201; body %s", rec.Code, rec.Body.String())
	}

	var st student.Student
	decode(t, rec, &st)
	if st.ID == "" {
		t.Error("response missing id")
	}
	if st.RiskScore != 0.22 || st.RiskLevel != student.RiskLow {
		t.Errorf("risk = %v/%v; want 0.22/Low", st.RiskScore, st.RiskLevel)
	}
}

func Test_studentApi_studentCreate_invalid(t *testing.T) {
	app := setup(t)

	rec := app.request(t, http.MethodPost, "/v1/students", map[string]interface{}{
		"name":  "Emma Johnson",
		"email": "not-an-email",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("code = %d; want 400; body %s", rec.Code, rec.Body.String())
	}

	var fldErrs map[string]string
	decode(t, rec, &fldErrs)
	if _, ok := fldErrs["email"]; !ok {
		t.Errorf("field errors = %v; want an email entry", fldErrs)
	}
	if _, ok := fldErrs["grade"]; !ok {
		t.Errorf("field errors = %v; want a grade entry", fldErrs)
	}
}

func Test_studentApi_studentRetrieve(t *testing.T) {
	app := setup(t)
	st := app.enroll(t, "Liam Williams", "liam@test.cd")

	rec := app.request(t, http.MethodGet, "/v1/students/"+st.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d; want 200", rec.Code)
	}
	var got student.Student
	decode(t, rec, &got)
	if got.ID != st.ID || got.Name != st.Name {
		t.Errorf("got %+v; want %+v", got, st)
	}

	if rec = app.request(t, http.MethodGet, "/v1/students/nope", nil); rec.Code != http.StatusNotFound {
		t.Errorf("code = %d; want 404", rec.Code)
	}
}

func Test_studentApi_studentUpdate(t *testing.T) {
	app := setup(t)
	st := app.enroll(t, "Ava Brown", "ava@test.cd")

	rec := app.request(t, http.MethodPatch, "/v1/students/"+st.ID, map[string]interface{}{
		"attendance_rate": 50,
		"current_gpa":     2.0,
		"behavior_score":  3,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d; want 200; body %s", rec.Code, rec.Body.String())
	}
	var got student.Student
	decode(t, rec, &got)
	if got.RiskScore != 0.52 || got.RiskLevel != student.RiskMedium {
		t.Errorf("risk = %v/%v; want 0.52/Medium", got.RiskScore, got.RiskLevel)
	}
	// untouched fields survive
	if got.Name != st.Name || got.Email != st.Email {
		t.Errorf("update touched unset fields: %+v", got)
	}
}

func Test_studentApi_studentDelete(t *testing.T) {
	app := setup(t)
	st := app.enroll(t, "Noah Jones", "noah@test.cd")

	rec := app.request(t, http.MethodDelete, "/v1/students/"+st.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("code = %d; want 204", rec.Code)
	}
	if rec = app.request(t, http.MethodGet, "/v1/students/"+st.ID, nil); rec.Code != http.StatusNotFound {
		t.Errorf("code after delete = %d; want 404", rec.Code)
	}
}

func Test_studentApi_attendanceCreate(t *testing.T) {
	app := setup(t)
	st := app.enroll(t, "Mia Garcia", "mia@test.cd")

	body := map[string]interface{}{
		"date":   "2026-03-02T00:00:00Z",
		"status": "Late",
		"notes":  "Overslept",
	}
	rec := app.request(t, http.MethodPost, "/v1/students/"+st.ID+"/attendance", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %d; want 201; body %s", rec.Code, rec.Body.String())
	}
	var r student.AttendanceRecord
	decode(t, rec, &r)
	if r.StudentID != st.ID {
		t.Errorf("StudentID = %v; want %v (path wins)", r.StudentID, st.ID)
	}

	rec = app.request(t, http.MethodGet, "/v1/students/"+st.ID+"/attendance", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d; want 200", rec.Code)
	}
	var records []student.AttendanceRecord
	decode(t, rec, &records)
	if len(records) != 1 {
		t.Errorf("got %d records; want 1", len(records))
	}

	// unknown student
	rec = app.request(t, http.MethodPost, "/v1/students/nope/attendance", body)
	if rec.Code != http.StatusNotFound {
		t.Errorf("code = %d; want 404", rec.Code)
	}

	// bad status
	rec = app.request(t, http.MethodPost, "/v1/students/"+st.ID+"/attendance", map[string]interface{}{
		"date":   "2026-03-02T00:00:00Z",
		"status": "Sleeping",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("code = %d; want 400", rec.Code)
	}
}

// Recording a behavior incident also raises a Behavior Incident alert.
func Test_studentApi_behaviorCreate(t *testing.T) {
	app := setup(t)
	st := app.enroll(t, "Lucas Miller", "lucas@test.cd")

	rec := app.request(t, http.MethodPost, "/v1/students/"+st.ID+"/behavior", map[string]interface{}{
		"date":        "2026-03-02T00:00:00Z",
		"type":        "Negative",
		"description": "Disrupted class",
		"severity":    3,
		"reported_by": "Ms. Davis",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %d; want 201; body %s", rec.Code, rec.Body.String())
	}

	alerts, err := app.alertSvc.QueryByStudent(st.ID)
	if err != nil {
		t.Fatalf("QueryByStudent() failed: %v", err)
	}
	if len(alerts) != 1 {
		t.Fatalf("got %d alerts; want 1", len(alerts))
	}
	if alerts[0].Type != alert.TypeBehaviorIncident {
		t.Errorf("alert type = %v; want %v", alerts[0].Type, alert.TypeBehaviorIncident)
	}
}
