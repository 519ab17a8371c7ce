package echoapi

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/matrusri/standup/core"
	"github.com/matrusri/standup/core/report"
	searchsvc "github.com/matrusri/standup/services/search"
)

type reportApi struct {
	svc *report.Service
}

func registerReportAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *report.Service) {
	api := reportApi{svc: svc}

	rg := g.Group("/reports")

	// un-authed endpoints: the submission form
	rg.POST("", api.create)
	rg.GET("", api.query)
	rg.GET("/check", api.check)

	// admin endpoints
	ag := rg.Group("", jwt, roleMiddleware(core.RoleAdmin))
	ag.GET("/search", api.search)
	ag.GET("/stats", api.stats)
	ag.GET("/export", api.export)
	ag.PUT("/:timestamp/comment", api.comment)
	ag.DELETE("", api.clear)
}

// Handlers

// create submits a report, gated by the one-per-day pre-check. The
// check-then-append sequence is not atomic: near-simultaneous submits
// can both pass the gate. Best effort, same as the store contract.
func (api *reportApi) create(ctx echo.Context) error {
	var data report.NewReport
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewReport")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	submitted, err := api.svc.HasSubmittedToday(data.Username)
	if err != nil {
		return errors.Wrap(err, "checking today's submissions")
	}
	if submitted {
		return errAlreadySubmitted
	}

	if err := api.svc.Submit(data); err != nil {
		return errors.Wrap(err, "submitting report")
	}
	return ctx.JSON(http.StatusCreated, SuccessResponse{
		Success: fmt.Sprintf("Report submitted successfully for %s!", data.Username),
	})
}

func (api *reportApi) query(ctx echo.Context) error {
	reports, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying reports")
	}

	// presentation filters; the store itself always returns everything
	if uname := core.CleanString(ctx.QueryParam("username"), true /* lower */); uname != "" {
		filtered := make([]report.Report, 0, len(reports))
		for _, r := range reports {
			if strings.Contains(strings.ToLower(r.Username), uname) {
				filtered = append(filtered, r)
			}
		}
		reports = filtered
	}

	if ctx.QueryParam("order") != "oldest" { // newest first by default
		for i, j := 0, len(reports)-1; i < j; i, j = i+1, j-1 {
			reports[i], reports[j] = reports[j], reports[i]
		}
	}

	if limitStr := ctx.QueryParam("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit < len(reports) {
			reports = reports[:limit]
		}
	}

	if reports == nil {
		reports = []report.Report{}
	}
	return ctx.JSON(http.StatusOK, reports)
}

// check is the form UI's pre-submit gate.
func (api *reportApi) check(ctx echo.Context) error {
	uname := core.CleanString(ctx.QueryParam("username"))
	if uname == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "username", Error: "this field is required"})
	}

	submitted, err := api.svc.HasSubmittedToday(uname)
	if err != nil {
		return errors.Wrap(err, "checking today's submissions")
	}
	return ctx.JSON(http.StatusOK, CheckResponse{Username: uname, Submitted: submitted})
}

func (api *reportApi) search(ctx echo.Context) error {
	q := core.CleanString(ctx.QueryParam("q"))
	if q == "" {
		return ctx.JSON(http.StatusOK, []report.Report{})
	}

	limit := 20
	if limitStr := ctx.QueryParam("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	reports, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying reports")
	}
	matches, err := searchsvc.SearchReports(reports, q, limit)
	if err != nil {
		return errors.Wrap(err, "searching reports")
	}
	return ctx.JSON(http.StatusOK, matches)
}

func (api *reportApi) stats(ctx echo.Context) error {
	stats, err := api.svc.TodayStats()
	if err != nil {
		return errors.Wrap(err, "computing stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}

// export streams the whole table as a CSV attachment.
func (api *reportApi) export(ctx echo.Context) error {
	reports, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying reports")
	}

	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"Timestamp", "Date", "Team", "GitLab Username", "Standup Report", "Comment"})
	for _, r := range reports {
		_ = w.Write([]string{r.Timestamp, r.Date, r.Team, r.Username, r.Body, r.Comment})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrap(err, "rendering csv")
	}

	filename := fmt.Sprintf("standup_reports_%s.csv", time.Now().Format("20060102_150405"))
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return ctx.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

func (api *reportApi) comment(ctx echo.Context) error {
	var data CommentRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CommentRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	if err := api.svc.Comment(pathParam(ctx, "timestamp"), data.Comment); err != nil {
		return errors.Wrap(err, "commenting report")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Comment saved!"})
}

func (api *reportApi) clear(ctx echo.Context) error {
	if err := api.svc.Clear(); err != nil {
		return errors.Wrap(err, "clearing reports")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type (
	CheckResponse struct {
		Username  string `json:"username"`
		Submitted bool   `json:"submitted"`
	}

	CommentRequest struct {
		Comment string `json:"comment" validate:"max=2000"`
	}
)

func (cr *CommentRequest) Validate() error {
	cr.Comment = core.CleanString(cr.Comment)
	return core.Validate.Struct(cr)
}
