package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/hatari/core/setting"
)

type settingApi struct {
	svc *setting.Service
}

func registerSettingAPI(g *echo.Group, svc *setting.Service) {
	api := &settingApi{svc: svc}

	sg := g.Group("/settings")
	sg.GET("", api.settingsRetrieve)
	sg.PUT("", api.settingsSave)
	sg.PUT("/apikey", api.apiKeySave)
}

func (api *settingApi) settingsRetrieve(ctx echo.Context) error {
	settings, err := api.svc.Get()
	if err != nil {
		return errors.Wrap(err, "loading settings")
	}
	return ctx.JSON(http.StatusOK, settings)
}

func (api *settingApi) settingsSave(ctx echo.Context) error {
	var data setting.AppSettings
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding request data")
	}
	if err := api.svc.Save(data); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, data)
}

// apiKeySave stores the prediction API key. The key is write-only; it is
// never echoed back by any endpoint.
func (api *settingApi) apiKeySave(ctx echo.Context) error {
	var data struct {
		APIKey string `json:"api_key"`
	}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding request data")
	}
	if err := api.svc.SaveAPIKey(data.APIKey); err != nil {
		return errors.Wrap(err, "saving API key")
	}
	return ctx.NoContent(http.StatusNoContent)
}
