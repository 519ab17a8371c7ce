package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/matrusri/standup/core"
	"github.com/matrusri/standup/core/doubt"
)

type doubtApi struct {
	svc *doubt.Service
}

func registerDoubtAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *doubt.Service) {
	api := doubtApi{svc: svc}

	dg := g.Group("/doubts")

	// un-authed endpoint: the submission form
	dg.POST("", api.create)

	// tech lead endpoints
	tg := dg.Group("", jwt, roleMiddleware(core.RoleTechLead))
	tg.GET("", api.queryActive)
	tg.GET("/resolved", api.queryResolved)
	tg.PUT("/:timestamp/comment", api.comment)
	tg.POST("/:timestamp/resolve", api.resolve)
	tg.DELETE("", api.clear)
}

// Handlers

func (api *doubtApi) create(ctx echo.Context) error {
	var data doubt.NewDoubt
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewDoubt")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	if err := api.svc.Submit(data); err != nil {
		return errors.Wrap(err, "submitting doubt")
	}
	return ctx.JSON(http.StatusCreated, SuccessResponse{
		Success: "Your doubt has been submitted! A TechLead will respond soon.",
	})
}

func (api *doubtApi) queryActive(ctx echo.Context) error {
	return api.queryStatus(ctx, doubt.StatusActive)
}

func (api *doubtApi) queryResolved(ctx echo.Context) error {
	return api.queryStatus(ctx, doubt.StatusResolved)
}

func (api *doubtApi) queryStatus(ctx echo.Context, status doubt.Status) error {
	doubts, err := api.svc.Query(status)
	if err != nil {
		return errors.Wrap(err, "querying doubts")
	}
	if doubts == nil {
		doubts = []doubt.Doubt{}
	}
	return ctx.JSON(http.StatusOK, doubts)
}

func (api *doubtApi) comment(ctx echo.Context) error {
	status, err := bindStatus(ctx)
	if err != nil {
		return err
	}

	var data CommentRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CommentRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	if err := api.svc.Comment(status, pathParam(ctx, "timestamp"), data.Comment); err != nil {
		return errors.Wrap(err, "commenting doubt")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Comment saved!"})
}

// resolve moves a doubt to the resolved table; there is no way back.
func (api *doubtApi) resolve(ctx echo.Context) error {
	if err := api.svc.Resolve(pathParam(ctx, "timestamp")); err != nil {
		if errors.Cause(err) == doubt.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "resolving doubt")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Doubt resolved."})
}

func (api *doubtApi) clear(ctx echo.Context) error {
	status, err := bindStatus(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Clear(status); err != nil {
		return errors.Wrap(err, "clearing doubts")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// bindStatus reads the optional ?status= param; active by default.
func bindStatus(ctx echo.Context) (doubt.Status, error) {
	status := doubt.Status(core.CleanString(ctx.QueryParam("status"), true /* lower */))
	if status == "" {
		return doubt.StatusActive, nil
	}
	if !status.IsValid() {
		return "", core.NewValidationError(nil, core.FieldError{Field: "status", Error: "must be active or resolved"})
	}
	return status, nil
}
