package entity

import (
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionStarted  Action = "started"
	ActionLearned  Action = "learned"
	ActionBuilt    Action = "built"
	ActionShipped  Action = "shipped"
	ActionAchieved Action = "achieved"
	ActionJoined   Action = "joined"
)

func (a Action) Valid() bool {
	switch a {
	case ActionStarted, ActionLearned, ActionBuilt, ActionShipped, ActionAchieved, ActionJoined:
		return true
	default:
		return false
	}
}

type JourneyEntry struct {
	ID      uuid.UUID `json:"id"`
	MonthID uuid.UUID `json:"month_id"`

	Title           string `json:"title"`
	Description     string `json:"description"`
	TypeIcon1       string `json:"type_icon1"`
	TypeIcon2       string `json:"type_icon2"`
	Action          Action `json:"action"`
	ProjectSlug     string `json:"project_slug"`
	MarkdownFile    string `json:"markdown_file"`
	MarkdownContent string `json:"markdown_content"`

	Image1 AssetRef `json:"image_1"`
	Image2 AssetRef `json:"image_2"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
