package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/hatari/core/alert"
	"github.com/trezcool/hatari/core/prediction"
)

type predictionApi struct {
	alertSvc *alert.Service
	repo     prediction.Repository
}

func registerPredictionAPI(g *echo.Group, alertSvc *alert.Service, repo prediction.Repository) {
	api := &predictionApi{alertSvc: alertSvc, repo: repo}

	pg := g.Group("/predictions")
	pg.GET("", api.predictionQuery)
	pg.GET("/model", api.modelRetrieve)
	pg.GET("/:studentID", api.predictionRetrieve)
	pg.POST("/run", api.predictionRun)
}

func (api *predictionApi) predictionQuery(ctx echo.Context) error {
	predictions, err := api.repo.QueryAllPredictions()
	if err != nil {
		return errors.Wrap(err, "querying predictions")
	}
	return ctx.JSON(http.StatusOK, predictions)
}

func (api *predictionApi) predictionRetrieve(ctx echo.Context) error {
	p, err := api.repo.GetPredictionByStudentID(ctx.Param("studentID"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *predictionApi) modelRetrieve(ctx echo.Context) error {
	m, err := api.repo.GetModelMetadata()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, m)
}

// predictionRun predicts risk for every enrolled student and processes the
// results into alerts. Long-running when many students are enrolled.
func (api *predictionApi) predictionRun(ctx echo.Context) error {
	predictions, err := api.alertSvc.RunPredictions(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "running predictions")
	}
	return ctx.JSON(http.StatusOK, predictions)
}
