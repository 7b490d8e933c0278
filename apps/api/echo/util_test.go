package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/trezcool/hatari/core"
	"github.com/trezcool/hatari/core/alert"
	"github.com/trezcool/hatari/core/prediction"
	"github.com/trezcool/hatari/core/setting"
	"github.com/trezcool/hatari/core/student"
	"github.com/trezcool/hatari/sampledata"
	"github.com/trezcool/hatari/storage"
	inmemkv "github.com/trezcool/hatari/storage/kv/inmem"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type nopMailService struct{}

func (nopMailService) SendMessages(...*core.EmailMessage) {}

type nopSMSService struct{}

func (nopSMSService) SendMessages(...*core.SMSMessage) {}

type nopNotifier struct{}

func (nopNotifier) Notify(string, string) {}

// failingGenerator stands in for the remote model; every prediction degrades
// to the rule-based fallback.
type failingGenerator struct{}

func (failingGenerator) Generate(context.Context, string) (string, error) {
	return "", errors.New("remote model unavailable")
}

type testApp struct {
	server     Server
	studentSvc *student.Service
	alertSvc   *alert.Service
	settingSvc *setting.Service
	predRepo   prediction.Repository
}

func setup(t *testing.T) *testApp {
	t.Helper()
	store := inmemkv.Open()

	studentRepo := storage.NewStudentRepository(store)
	alertRepo := storage.NewAlertRepository(store)
	predRepo := storage.NewPredictionRepository(store)
	settingSvc := setting.NewService(storage.NewSettingRepository(store))

	logger := nopLogger{}
	studentSvc := student.NewService(studentRepo, logger)
	predSvc := prediction.NewService(failingGenerator{}, logger)
	alertSvc := alert.NewService(
		alertRepo, studentRepo, predRepo, settingSvc, predSvc,
		nopMailService{}, nopSMSService{}, nopNotifier{}, logger,
	)

	conf := &core.Config{Env: "TEST", TestMode: true}
	conf.Server.Addr = ":0"

	app := &testApp{
		studentSvc: studentSvc,
		alertSvc:   alertSvc,
		settingSvc: settingSvc,
		predRepo:   predRepo,
	}
	app.server = NewServer(&Options{
		Conf:           conf,
		DisableReqLogs: true,
		StudentSvc:     studentSvc,
		AlertSvc:       alertSvc,
		SettingSvc:     settingSvc,
		PredRepo:       predRepo,
		Logger:         logger,
		SeedFunc: func(count int) error {
			return sampledata.Seed(studentRepo, alertRepo, predRepo, count, 1)
		},
	})
	return app
}

func (app *testApp) request(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body failed: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.server.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decoding response %q failed: %v", rec.Body.String(), err)
	}
}

func (app *testApp) enroll(t *testing.T, name, email string) student.Student {
	t.Helper()
	st, err := app.studentSvc.Enroll(student.NewStudent{
		Name: name, Email: email, Grade: "9th",
		AttendanceRate: 95, CurrentGPA: 3.8, BehaviorScore: 4.5,
	})
	if err != nil {
		t.Fatalf("Enroll() failed: %v", err)
	}
	return st
}
