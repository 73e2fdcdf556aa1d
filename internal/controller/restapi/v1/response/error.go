package response

type Error struct {
	Error    string    `json:"error" example:"message"`
	Fields   []string  `json:"fields,omitempty" example:"title"`
	Messages []Message `json:"messages,omitempty"`
}
