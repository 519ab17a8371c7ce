package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/matrusri/standup/core"
	"github.com/matrusri/standup/core/assignment"
)

type assignmentApi struct {
	svc *assignment.Service
}

func registerAssignmentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *assignment.Service) {
	api := assignmentApi{svc: svc}

	ag := g.Group("/assignments", jwt, roleMiddleware(core.RoleTechLead))
	ag.POST("", api.create)
	ag.GET("", api.query)
}

// Handlers

func (api *assignmentApi) create(ctx echo.Context) error {
	var data assignment.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}

	// default the assigner to the authenticated role
	if core.CleanString(data.AssignedBy) == "" {
		if claims, err := getContextClaims(ctx); err == nil {
			data.AssignedBy = string(claims.Role)
		}
	}
	if err := data.Validate(); err != nil {
		return err
	}

	if err := api.svc.Assign(data); err != nil {
		return errors.Wrap(err, "creating assignment")
	}
	return ctx.JSON(http.StatusCreated, SuccessResponse{Success: "Task assigned."})
}

func (api *assignmentApi) query(ctx echo.Context) error {
	var (
		assignments []assignment.Assignment
		err         error
	)
	if assignee := ctx.QueryParam("assignee"); assignee != "" {
		assignments, err = api.svc.QueryForAssignee(assignee)
	} else {
		assignments, err = api.svc.QueryAll()
	}
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	if assignments == nil {
		assignments = []assignment.Assignment{}
	}
	return ctx.JSON(http.StatusOK, assignments)
}
