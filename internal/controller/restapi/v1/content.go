package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/andreyxaxa/portfolio-dashboard/internal/controller/restapi/v1/response"
	"github.com/andreyxaxa/portfolio-dashboard/internal/draft"
	"github.com/andreyxaxa/portfolio-dashboard/internal/usecase"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func paramID(ctx *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, false
	}

	return id, true
}

// @Summary 	List projects
// @Tags 		projects
// @Produce 	json
// @Success 	200 {object} response.Projects
// @Failure 	500 {object} response.Error
// @Router 		/v1/projects [get]
func (r *V1) listProjects(ctx *fiber.Ctx) error {
	projects, err := r.content.ListProjects(ctx.UserContext())
	if err != nil {
		return r.useCaseError(ctx, err, "listProjects", nil)
	}

	return ctx.JSON(response.Projects{Projects: projects})
}

// @Summary 	List project titles
// @Description Title and slug pairs for the journey project selector
// @Tags 		projects
// @Produce 	json
// @Success 	200 {object} response.ProjectTitles
// @Router 		/v1/projects/titles [get]
func (r *V1) listProjectTitles(ctx *fiber.Ctx) error {
	titles, err := r.content.ListProjectTitles(ctx.UserContext())
	if err != nil {
		return r.useCaseError(ctx, err, "listProjectTitles", nil)
	}

	return ctx.JSON(response.ProjectTitles{Titles: titles})
}

// @Summary 	Get project
// @Tags 		projects
// @Produce 	json
// @Param 		id path string true "Project ID(uuid)"
// @Success 	200 {object} entity.Project
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	404 {object} response.Error "Project not found"
// @Router 		/v1/projects/{id} [get]
func (r *V1) getProject(ctx *fiber.Ctx) error {
	id, ok := paramID(ctx)
	if !ok {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	p, err := r.content.GetProject(ctx.UserContext(), id)
	if err != nil {
		return r.useCaseError(ctx, err, "getProject", nil)
	}

	return ctx.JSON(p)
}

// @Summary 	Download project markdown
// @Tags 		projects
// @Produce 	text/markdown
// @Param 		id path string true "Project ID(uuid)"
// @Success 	200 {file} binary
// @Failure 	404 {object} response.Error "Project not found or has no markdown"
// @Router 		/v1/projects/{id}/markdown [get]
func (r *V1) downloadProjectMarkdown(ctx *fiber.Ctx) error {
	id, ok := paramID(ctx)
	if !ok {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	p, err := r.content.GetProject(ctx.UserContext(), id)
	if err != nil {
		return r.useCaseError(ctx, err, "downloadProjectMarkdown", nil)
	}

	if p.MarkdownContent == "" {
		return errorResponse(ctx, http.StatusNotFound, "project has no markdown content")
	}

	filename := p.MarkdownFile
	if filename == "" {
		filename = draft.MarkdownFilename(p.Title)
	}

	ctx.Set(fiber.HeaderContentType, "text/markdown; charset=utf-8")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))

	return ctx.SendString(p.MarkdownContent)
}

// @Summary 	Delete project
// @Description Deletes the project images, then the record. Requires confirm=true.
// @Tags 		projects
// @Produce 	json
// @Param		id 		path	string true  "Project ID(uuid)"
// @Param		confirm query	bool   false "Confirm deletion"
// @Success		200 {object} response.Deleted
// @Failure 	404 {object} response.Error "Project not found"
// @Failure 	409 {object} response.Error "Confirmation required"
// @Router 		/v1/projects/{id} [delete]
func (r *V1) deleteProject(ctx *fiber.Ctx) error {
	return r.deleteContent(ctx, "project", r.content.DeleteProject)
}

// @Summary 	List journey entries
// @Tags 		journey
// @Produce 	json
// @Param		month_id query string false "Month ID(uuid)"
// @Param		year 	 query int 	  false "Year"
// @Success 	200 {object} response.Journey
// @Router 		/v1/journey [get]
func (r *V1) listJourney(ctx *fiber.Ctx) error {
	var filter usecase.JourneyFilter

	if s := ctx.Query("month_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return errorResponse(ctx, http.StatusBadRequest, "invalid month_id")
		}
		filter.MonthID = &id
	}

	if ctx.Query("year") != "" {
		year := ctx.QueryInt("year")
		if year <= 0 {
			return errorResponse(ctx, http.StatusBadRequest, "invalid year")
		}
		filter.Year = &year
	}

	entries, err := r.content.ListJourney(ctx.UserContext(), filter)
	if err != nil {
		return r.useCaseError(ctx, err, "listJourney", nil)
	}

	return ctx.JSON(response.Journey{Entries: entries})
}

// @Summary 	Get journey entry
// @Tags 		journey
// @Produce 	json
// @Param 		id path string true "Entry ID(uuid)"
// @Success 	200 {object} entity.JourneyEntry
// @Failure 	404 {object} response.Error "Entry not found"
// @Router 		/v1/journey/{id} [get]
func (r *V1) getJourney(ctx *fiber.Ctx) error {
	id, ok := paramID(ctx)
	if !ok {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	e, err := r.content.GetJourney(ctx.UserContext(), id)
	if err != nil {
		return r.useCaseError(ctx, err, "getJourney", nil)
	}

	return ctx.JSON(e)
}

// @Summary 	Delete journey entry
// @Tags 		journey
// @Produce 	json
// @Param		id 		path	string true  "Entry ID(uuid)"
// @Param		confirm query	bool   false "Confirm deletion"
// @Success		200 {object} response.Deleted
// @Failure 	409 {object} response.Error "Confirmation required"
// @Router 		/v1/journey/{id} [delete]
func (r *V1) deleteJourney(ctx *fiber.Ctx) error {
	return r.deleteContent(ctx, "journey entry", r.content.DeleteJourney)
}

func (r *V1) deleteContent(
	ctx *fiber.Ctx,
	what string,
	del func(ctx context.Context, id uuid.UUID, n usecase.Notifier) error,
) error {
	id, ok := paramID(ctx)
	if !ok {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	confirmed, err := confirmerFrom(ctx).Confirm(ctx.UserContext(), usecase.Prompt{
		Title:   "Delete " + what + "?",
		Message: "This also deletes its images and cannot be undone.",
	})
	if err != nil || !confirmed {
		return r.useCaseError(ctx, errs.ErrConfirmationRequired, "deleteContent", nil)
	}

	n := &notifier{}
	if err = del(ctx.UserContext(), id, n); err != nil {
		return r.useCaseError(ctx, err, "deleteContent", n.messages)
	}

	return ctx.JSON(response.Deleted{Messages: n.messages})
}

// @Summary 	List months
// @Tags 		months
// @Produce 	json
// @Param		year query int false "Year"
// @Success 	200 {object} response.Months
// @Router 		/v1/months [get]
func (r *V1) listMonths(ctx *fiber.Ctx) error {
	var year *int

	if ctx.Query("year") != "" {
		y := ctx.QueryInt("year")
		if y <= 0 {
			return errorResponse(ctx, http.StatusBadRequest, "invalid year")
		}
		year = &y
	}

	months, err := r.content.ListMonths(ctx.UserContext(), year)
	if err != nil {
		return r.useCaseError(ctx, err, "listMonths", nil)
	}

	return ctx.JSON(response.Months{Months: months})
}

// @Summary 	Available years
// @Tags 		months
// @Produce 	json
// @Success 	200 {object} response.Years
// @Router 		/v1/months/years [get]
func (r *V1) availableYears(ctx *fiber.Ctx) error {
	years, err := r.content.AvailableYears(ctx.UserContext())
	if err != nil {
		return r.useCaseError(ctx, err, "availableYears", nil)
	}

	return ctx.JSON(response.Years{Years: years})
}
