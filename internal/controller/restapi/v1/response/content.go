package response

import (
	"github.com/andreyxaxa/portfolio-dashboard/internal/entity"
	"github.com/andreyxaxa/portfolio-dashboard/internal/usecase"
)

// Message is one progress notification emitted by a workflow.
type Message struct {
	Level string `json:"level" example:"success"`
	Text  string `json:"text" example:"Project saved"`
}

type Projects struct {
	Projects []entity.Project `json:"projects"`
}

type ProjectTitles struct {
	Titles []entity.ProjectTitle `json:"titles"`
}

type Journey struct {
	Entries []entity.JourneyEntry `json:"entries"`
}

type Months struct {
	Months []entity.Month `json:"months"`
}

type Years struct {
	Years []int `json:"years"`
}

type Images struct {
	Images []entity.BlobMetadata `json:"images"`
}

type Submit struct {
	Result   *usecase.SubmitResult `json:"result"`
	Messages []Message             `json:"messages"`
}

type Deleted struct {
	Messages []Message `json:"messages"`
}
