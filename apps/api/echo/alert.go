package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/hatari/core/alert"
)

type alertApi struct {
	svc *alert.Service
}

func registerAlertAPI(g *echo.Group, svc *alert.Service) {
	api := &alertApi{svc: svc}

	ag := g.Group("/alerts")
	ag.GET("", api.alertQuery)
	ag.POST("", api.alertCreate)
	ag.GET("/:id", api.alertRetrieve)
	ag.POST("/:id/ack", api.alertAcknowledge)
}

// alertQuery lists alerts, optionally filtered by the `acknowledged` query
// parameter ("true"/"false").
func (api *alertApi) alertQuery(ctx echo.Context) error {
	alerts, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying alerts")
	}

	if param := ctx.QueryParam("acknowledged"); param != "" {
		acked, err := strconv.ParseBool(param)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid `acknowledged` parameter")
		}
		filtered := make([]alert.Alert, 0, len(alerts))
		for _, a := range alerts {
			if a.Acknowledged == acked {
				filtered = append(filtered, a)
			}
		}
		alerts = filtered
	}
	return ctx.JSON(http.StatusOK, alerts)
}

func (api *alertApi) alertCreate(ctx echo.Context) error {
	var data alert.ManualAlert
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding request data")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	a, err := api.svc.CreateManualAlert(data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *alertApi) alertRetrieve(ctx echo.Context) error {
	a, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *alertApi) alertAcknowledge(ctx echo.Context) error {
	var data struct {
		AcknowledgedBy string `json:"acknowledged_by"`
	}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding request data")
	}
	if data.AcknowledgedBy == "" {
		data.AcknowledgedBy = "system"
	}

	a, err := api.svc.Acknowledge(ctx.Param("id"), data.AcknowledgedBy)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, a)
}
