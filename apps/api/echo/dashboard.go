package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/hatari/core/alert"
	"github.com/trezcool/hatari/core/student"
)

type dashboardApi struct {
	studentSvc *student.Service
	alertSvc   *alert.Service
	seedFunc   func(count int) error
}

func registerDashboardAPI(g *echo.Group, studentSvc *student.Service, alertSvc *alert.Service, seedFunc func(count int) error) {
	api := &dashboardApi{studentSvc: studentSvc, alertSvc: alertSvc, seedFunc: seedFunc}

	g.GET("/dashboard/summary", api.summary)
	g.POST("/seed", api.seed)
}

type dashboardSummary struct {
	TotalStudents        int     `json:"total_students"`
	HighRisk             int     `json:"high_risk"`
	MediumRisk           int     `json:"medium_risk"`
	LowRisk              int     `json:"low_risk"`
	AverageAttendance    float64 `json:"average_attendance"`
	AverageGPA           float64 `json:"average_gpa"`
	UnacknowledgedAlerts int     `json:"unacknowledged_alerts"`
}

func (api *dashboardApi) summary(ctx echo.Context) error {
	students, err := api.studentSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	unacked, err := api.alertSvc.QueryUnacknowledged()
	if err != nil {
		return errors.Wrap(err, "querying alerts")
	}

	s := dashboardSummary{
		TotalStudents:        len(students),
		UnacknowledgedAlerts: len(unacked),
	}
	for _, st := range students {
		switch st.RiskLevel {
		case student.RiskHigh:
			s.HighRisk++
		case student.RiskMedium:
			s.MediumRisk++
		default:
			s.LowRisk++
		}
		s.AverageAttendance += st.AttendanceRate
		s.AverageGPA += st.CurrentGPA
	}
	if len(students) > 0 {
		s.AverageAttendance /= float64(len(students))
		s.AverageGPA /= float64(len(students))
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *dashboardApi) seed(ctx echo.Context) error {
	var data struct {
		Students int `json:"students"`
	}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding request data")
	}

	if err := api.seedFunc(data.Students); err != nil {
		return errors.Wrap(err, "seeding sample data")
	}
	return ctx.NoContent(http.StatusCreated)
}
