package v1

import (
	"github.com/andreyxaxa/portfolio-dashboard/internal/usecase"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

func NewRoutes(
	apiV1Group fiber.Router,
	content usecase.ContentUseCase,
	forms usecase.FormsUseCase,
	images usecase.ImagesUseCase,
	l logger.Interface,
) {
	r := &V1{content: content, forms: forms, images: images, logger: l}

	projects := apiV1Group.Group("/projects")
	{
		projects.Get("/", r.listProjects)
		projects.Get("/titles", r.listProjectTitles)
		projects.Get("/:id", r.getProject)
		projects.Get("/:id/markdown", r.downloadProjectMarkdown)
		projects.Delete("/:id", r.deleteProject)
	}

	journey := apiV1Group.Group("/journey")
	{
		journey.Get("/", r.listJourney)
		journey.Get("/:id", r.getJourney)
		journey.Delete("/:id", r.deleteJourney)
	}

	months := apiV1Group.Group("/months")
	{
		months.Get("/", r.listMonths)
		months.Get("/years", r.availableYears)
	}

	formsGroup := apiV1Group.Group("/forms")
	{
		formsGroup.Post("/", r.openForm)
		formsGroup.Get("/:id", r.getForm)
		formsGroup.Patch("/:id", r.setFormFields)
		formsGroup.Put("/:id/slots/:slot", r.stageFile)
		formsGroup.Delete("/:id/slots/:slot", r.removeFile)
		formsGroup.Post("/:id/slots/:slot/restore", r.restoreFile)
		formsGroup.Put("/:id/markdown", r.loadMarkdown)
		formsGroup.Delete("/:id/markdown", r.clearMarkdown)
		formsGroup.Post("/:id/submit", r.submitForm)
		formsGroup.Delete("/:id", r.discardForm)
	}

	imgs := apiV1Group.Group("/images")
	{
		imgs.Get("/", r.listImages)
		imgs.Post("/", r.uploadImage)
		imgs.Delete("/*", r.deleteImage)
	}
}
