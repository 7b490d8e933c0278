package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/hatari/core/alert"
	"github.com/trezcool/hatari/core/student"
)

type studentApi struct {
	svc      *student.Service
	alertSvc *alert.Service
}

func registerStudentAPI(g *echo.Group, svc *student.Service, alertSvc *alert.Service) {
	api := &studentApi{svc: svc, alertSvc: alertSvc}

	sg := g.Group("/students")
	sg.GET("", api.studentQuery)
	sg.POST("", api.studentCreate)
	sg.GET("/:id", api.studentRetrieve)
	sg.PATCH("/:id", api.studentUpdate)
	sg.DELETE("/:id", api.studentDelete)

	sg.GET("/:id/attendance", api.attendanceQuery)
	sg.POST("/:id/attendance", api.attendanceCreate)
	sg.GET("/:id/grades", api.gradeQuery)
	sg.POST("/:id/grades", api.gradeCreate)
	sg.GET("/:id/behavior", api.behaviorQuery)
	sg.POST("/:id/behavior", api.behaviorCreate)
}

func (api *studentApi) studentQuery(ctx echo.Context) error {
	students, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) studentCreate(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding request data")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	st, err := api.svc.Enroll(data)
	if err != nil {
		return errors.Wrap(err, "enrolling student")
	}
	return ctx.JSON(http.StatusCreated, st)
}

func (api *studentApi) studentRetrieve(ctx echo.Context) error {
	st, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, st)
}

func (api *studentApi) studentUpdate(ctx echo.Context) error {
	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding request data")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	st, err := api.svc.Update(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, st)
}

func (api *studentApi) studentDelete(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) attendanceQuery(ctx echo.Context) error {
	records, err := api.svc.QueryAttendance(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying attendance")
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *studentApi) attendanceCreate(ctx echo.Context) error {
	if _, err := api.svc.GetByID(ctx.Param("id")); err != nil {
		return err
	}

	var data student.NewAttendanceRecord
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding request data")
	}
	data.StudentID = ctx.Param("id")
	if err := data.Validate(); err != nil {
		return err
	}

	r, err := api.svc.RecordAttendance(data)
	if err != nil {
		return errors.Wrap(err, "recording attendance")
	}
	return ctx.JSON(http.StatusCreated, r)
}

func (api *studentApi) gradeQuery(ctx echo.Context) error {
	records, err := api.svc.QueryGrades(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying grades")
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *studentApi) gradeCreate(ctx echo.Context) error {
	if _, err := api.svc.GetByID(ctx.Param("id")); err != nil {
		return err
	}

	var data student.NewGradeRecord
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding request data")
	}
	data.StudentID = ctx.Param("id")
	if err := data.Validate(); err != nil {
		return err
	}

	r, err := api.svc.RecordGrade(data)
	if err != nil {
		return errors.Wrap(err, "recording grade")
	}
	return ctx.JSON(http.StatusCreated, r)
}

func (api *studentApi) behaviorQuery(ctx echo.Context) error {
	records, err := api.svc.QueryBehavior(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying behavior records")
	}
	return ctx.JSON(http.StatusOK, records)
}

// behaviorCreate records the incident and raises a behavior alert for it.
// Alerting is best-effort; a failed alert never fails the recording.
func (api *studentApi) behaviorCreate(ctx echo.Context) error {
	st, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}

	var data student.NewBehaviorRecord
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding request data")
	}
	data.StudentID = st.ID
	if err := data.Validate(); err != nil {
		return err
	}

	r, err := api.svc.RecordBehavior(data)
	if err != nil {
		return errors.Wrap(err, "recording behavior incident")
	}
	_, _ = api.alertSvc.CreateBehaviorAlert(st, r.Description)
	return ctx.JSON(http.StatusCreated, r)
}
