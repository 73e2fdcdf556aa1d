package restapi

import (
	"github.com/andreyxaxa/portfolio-dashboard/config"
	"github.com/andreyxaxa/portfolio-dashboard/internal/controller/restapi/middleware"
	v1 "github.com/andreyxaxa/portfolio-dashboard/internal/controller/restapi/v1"
	"github.com/andreyxaxa/portfolio-dashboard/internal/usecase"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// @title Portfolio dashboard
// @version 1.0.0
// @host localhost:8080
// @BasePath /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func NewRouter(
	app *fiber.App,
	cfg *config.Config,
	content usecase.ContentUseCase,
	forms usecase.FormsUseCase,
	images usecase.ImagesUseCase,
	gatherer prometheus.Gatherer,
	l logger.Interface,
) {
	// Metrics
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// Swagger
	if cfg.Swagger.Enabled {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	// Routers
	apiV1Group := app.Group("/v1")
	if cfg.Auth.JWTSecret != "" {
		apiV1Group.Use(middleware.Auth([]byte(cfg.Auth.JWTSecret)))
	} else {
		l.Warn("AUTH_JWT_SECRET is empty, /v1 is not protected")
	}
	{
		v1.NewRoutes(apiV1Group, content, forms, images, l)
	}
}
