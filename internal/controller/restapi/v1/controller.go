package v1

import (
	"github.com/andreyxaxa/portfolio-dashboard/internal/usecase"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/logger"
)

type V1 struct {
	content usecase.ContentUseCase
	forms   usecase.FormsUseCase
	images  usecase.ImagesUseCase
	logger  logger.Interface
}
