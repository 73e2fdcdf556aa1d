package entity

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID uuid.UUID `json:"id"`

	Slug            string `json:"slug"`
	Title           string `json:"title"`
	Date            string `json:"date"`
	Description     string `json:"description"`
	MarkdownFile    string `json:"markdown_file"`
	MarkdownContent string `json:"markdown_content"`
	ToolIcon1       string `json:"tool_icon1"`
	ToolIcon2       string `json:"tool_icon2"`

	Image AssetRef `json:"image"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProjectTitle feeds the project selector of the journey form.
type ProjectTitle struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}
