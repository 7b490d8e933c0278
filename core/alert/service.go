package alert

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/hatari/core"
	"github.com/trezcool/hatari/core/prediction"
	"github.com/trezcool/hatari/core/setting"
	"github.com/trezcool/hatari/core/student"
)

// Numeric cutoffs for escalating attendance/GPA alerts to High severity.
// These are intentionally separate from the configurable risk thresholds in
// AppSettings; the dashboard has always treated them as fixed.
const (
	highSeverityAttendanceCutoff = 70.0
	highSeverityGPACutoff        = 2.0
)

var nowFunc = time.Now // mockable

type (
	Repository interface {
		QueryAllAlerts() ([]Alert, error)
		GetAlertByID(id string) (Alert, error)
		SaveAlert(a Alert) error
		SaveAlerts(alerts []Alert) error
		// UpdateAlert sets the acknowledgment fields and returns the
		// updated record.
		UpdateAlert(id string, up UpdateAlert) (Alert, error)
	}

	// Predictor produces risk predictions for a set of students; the
	// prediction service implements it.
	Predictor interface {
		BatchPredict(
			ctx context.Context,
			students []student.Student,
			allAttendance []student.AttendanceRecord,
			allGrades []student.GradeRecord,
			allBehavior []student.BehaviorRecord,
		) []prediction.RiskPrediction
	}

	Service struct {
		repo        Repository
		studentRepo student.Repository
		predRepo    prediction.Repository
		settings    *setting.Service
		predictor   Predictor
		mailSvc     core.EmailService
		smsSvc      core.SMSService
		notifier    core.Notifier
		logger      core.Logger
	}
)

func NewService(
	repo Repository,
	studentRepo student.Repository,
	predRepo prediction.Repository,
	settings *setting.Service,
	predictor Predictor,
	mailSvc core.EmailService,
	smsSvc core.SMSService,
	notifier core.Notifier,
	logger core.Logger,
) *Service {
	return &Service{
		repo:        repo,
		studentRepo: studentRepo,
		predRepo:    predRepo,
		settings:    settings,
		predictor:   predictor,
		mailSvc:     mailSvc,
		smsSvc:      smsSvc,
		notifier:    notifier,
		logger:      logger,
	}
}

// Create assigns an id and timestamp, persists the alert and fires the
// best-effort notification side effects. Side-effect failures never fail
// alert creation; only persistence errors do.
func (svc *Service) Create(na NewAlert) (Alert, error) {
	if err := na.Validate(); err != nil {
		return Alert{}, err
	}
	a := Alert{
		ID:        uuid.New().String(),
		StudentID: na.StudentID,
		Type:      na.Type,
		Message:   na.Message,
		Severity:  na.Severity,
		Timestamp: nowFunc().UTC(),
	}
	if err := svc.repo.SaveAlert(a); err != nil {
		return Alert{}, err
	}
	svc.dispatch(a)
	return a, nil
}

// dispatch pushes the alert through whichever notification channels the
// settings enable. All channels are fire-and-forget.
func (svc *Service) dispatch(a Alert) {
	settings, err := svc.settings.Get()
	if err != nil {
		svc.logger.Warn("loading settings for alert dispatch", err)
		return
	}
	if settings.AlertSettings.EnableBrowserNotifications {
		svc.notifier.Notify(fmt.Sprintf("Student Risk Alert - %s", a.Severity), a.Message)
	}
	if settings.AlertSettings.EnableEmailAlerts {
		if st, err := svc.studentRepo.GetStudentByID(a.StudentID); err == nil {
			svc.SendEmailAlert(a, st.Email)
		}
	}
	if settings.AlertSettings.EnableSMSAlerts {
		svc.SendSMSAlert(a, "") // no phone numbers on file yet
	}
}

func (svc *Service) CreateRiskLevelChangeAlert(st student.Student, oldLevel, newLevel student.RiskLevel) (Alert, error) {
	severity := SeverityLow
	switch newLevel {
	case student.RiskHigh:
		severity = SeverityHigh
	case student.RiskMedium:
		severity = SeverityMedium
	}
	return svc.Create(NewAlert{
		StudentID: st.ID,
		Type:      TypeRiskLevelChange,
		Message:   fmt.Sprintf("%s's risk level changed from %s to %s", st.Name, oldLevel, newLevel),
		Severity:  severity,
	})
}

func (svc *Service) CreateAttendanceAlert(st student.Student) (Alert, error) {
	severity := SeverityMedium
	if st.AttendanceRate < highSeverityAttendanceCutoff {
		severity = SeverityHigh
	}
	return svc.Create(NewAlert{
		StudentID: st.ID,
		Type:      TypeAttendanceWarning,
		Message:   fmt.Sprintf("%s's attendance rate has dropped to %v%%", st.Name, st.AttendanceRate),
		Severity:  severity,
	})
}

func (svc *Service) CreateGradeAlert(st student.Student) (Alert, error) {
	severity := SeverityMedium
	if st.CurrentGPA < highSeverityGPACutoff {
		severity = SeverityHigh
	}
	return svc.Create(NewAlert{
		StudentID: st.ID,
		Type:      TypeGradeDrop,
		Message:   fmt.Sprintf("%s's GPA has dropped to %v", st.Name, st.CurrentGPA),
		Severity:  severity,
	})
}

func (svc *Service) CreateBehaviorAlert(st student.Student, incident string) (Alert, error) {
	return svc.Create(NewAlert{
		StudentID: st.ID,
		Type:      TypeBehaviorIncident,
		Message:   fmt.Sprintf("%s: %s", st.Name, incident),
		Severity:  SeverityMedium,
	})
}

func (svc *Service) CreateManualAlert(ma ManualAlert) (Alert, error) {
	if err := ma.Validate(); err != nil {
		return Alert{}, err
	}
	if ma.Severity == "" {
		ma.Severity = SeverityMedium
	}
	return svc.Create(NewAlert{
		StudentID: ma.StudentID,
		Type:      TypeManual,
		Message:   ma.Message,
		Severity:  ma.Severity,
	})
}

// Acknowledge marks an alert as reviewed by the given actor. Re-acknowledging
// is idempotent: the actor and time are simply overwritten.
func (svc *Service) Acknowledge(id, actor string) (Alert, error) {
	return svc.repo.UpdateAlert(id, UpdateAlert{
		Acknowledged:   true,
		AcknowledgedBy: actor,
		AcknowledgedAt: nowFunc().UTC(),
	})
}

func (svc *Service) QueryAll() ([]Alert, error) {
	return svc.repo.QueryAllAlerts()
}

func (svc *Service) GetByID(id string) (Alert, error) {
	return svc.repo.GetAlertByID(id)
}

func (svc *Service) QueryUnacknowledged() ([]Alert, error) {
	alerts, err := svc.repo.QueryAllAlerts()
	if err != nil {
		return nil, err
	}
	unacked := make([]Alert, 0, len(alerts))
	for _, a := range alerts {
		if !a.Acknowledged {
			unacked = append(unacked, a)
		}
	}
	return unacked, nil
}

func (svc *Service) QueryByStudent(studentID string) ([]Alert, error) {
	alerts, err := svc.repo.QueryAllAlerts()
	if err != nil {
		return nil, err
	}
	matched := make([]Alert, 0, len(alerts))
	for _, a := range alerts {
		if a.StudentID == studentID {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

// ProcessRiskPredictions compares each new prediction against the stored one
// for that student and emits alerts on risk-level transitions; every
// prediction is persisted regardless of the alerting outcome.
func (svc *Service) ProcessRiskPredictions(predictions []prediction.RiskPrediction) error {
	students, err := svc.studentRepo.QueryAllStudents()
	if err != nil {
		return err
	}
	studentsByID := make(map[string]student.Student, len(students))
	for _, st := range students {
		studentsByID[st.ID] = st
	}

	existing, err := svc.predRepo.QueryAllPredictions()
	if err != nil {
		return err
	}
	existingByStudent := make(map[string]prediction.RiskPrediction, len(existing))
	for _, p := range existing {
		existingByStudent[p.StudentID] = p
	}

	for _, pred := range predictions {
		st, ok := studentsByID[pred.StudentID]
		if !ok {
			continue
		}
		prior, hadPrior := existingByStudent[pred.StudentID]

		if hadPrior && prior.RiskLevel != pred.RiskLevel {
			if _, err := svc.CreateRiskLevelChangeAlert(st, prior.RiskLevel, pred.RiskLevel); err != nil {
				svc.logger.Error(fmt.Sprintf("creating risk change alert for student %s", st.ID), err)
			}
		}
		// newly High students always get a High severity alert, even when
		// the transition alert above already fired
		if pred.RiskLevel == student.RiskHigh && (!hadPrior || prior.RiskLevel != student.RiskHigh) {
			_, err := svc.Create(NewAlert{
				StudentID: st.ID,
				Type:      TypeRiskLevelChange,
				Message:   fmt.Sprintf("%s has been classified as High Risk. Immediate intervention recommended.", st.Name),
				Severity:  SeverityHigh,
			})
			if err != nil {
				svc.logger.Error(fmt.Sprintf("creating high risk alert for student %s", st.ID), err)
			}
		}

		if err := svc.predRepo.SavePrediction(pred); err != nil {
			return err
		}
	}
	return nil
}

// RunPredictions predicts risk for every student and processes the results,
// returning the predictions in student order.
func (svc *Service) RunPredictions(ctx context.Context) ([]prediction.RiskPrediction, error) {
	students, err := svc.studentRepo.QueryAllStudents()
	if err != nil {
		return nil, err
	}
	attendance, err := svc.studentRepo.QueryAttendanceRecords("")
	if err != nil {
		return nil, err
	}
	grades, err := svc.studentRepo.QueryGradeRecords("")
	if err != nil {
		return nil, err
	}
	behavior, err := svc.studentRepo.QueryBehaviorRecords("")
	if err != nil {
		return nil, err
	}

	predictions := svc.predictor.BatchPredict(ctx, students, attendance, grades, behavior)
	if err := svc.ProcessRiskPredictions(predictions); err != nil {
		return nil, err
	}
	return predictions, nil
}

// AcknowledgeStale acknowledges unacknowledged alerts older than the
// configured auto-acknowledge window. Returns how many were acknowledged;
// a zero window disables the sweep.
func (svc *Service) AcknowledgeStale(actor string) (int, error) {
	settings, err := svc.settings.Get()
	if err != nil {
		return 0, err
	}
	hours := settings.AlertSettings.AutoAcknowledgeAfterHours
	if hours <= 0 {
		return 0, nil
	}
	cutoff := nowFunc().UTC().Add(-time.Duration(hours) * time.Hour)

	alerts, err := svc.repo.QueryAllAlerts()
	if err != nil {
		return 0, err
	}
	var count int
	for _, a := range alerts {
		if a.Acknowledged || a.Timestamp.After(cutoff) {
			continue
		}
		if _, err := svc.Acknowledge(a.ID, actor); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// SendSMSAlert hands the alert to the SMS service. Delivery is an external
// collaborator's responsibility; the default implementation only logs.
func (svc *Service) SendSMSAlert(a Alert, phoneNumber string) {
	svc.smsSvc.SendMessages(&core.SMSMessage{To: phoneNumber, Body: a.Message})
}

// SendEmailAlert hands the alert to the email service; delivery failures are
// swallowed by the service itself.
func (svc *Service) SendEmailAlert(a Alert, email string) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Address: email}},
		Subject: fmt.Sprintf("Student Risk Alert - %s", a.Severity),
		Body:    a.Message,
	})
}
