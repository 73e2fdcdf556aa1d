package request

type OpenForm struct {
	Kind     string `json:"kind" example:"project"`
	EntityID string `json:"entity_id,omitempty" example:"4f1c2b0e-8f4e-4b7a-9a51-1b3c0e6f2d11"`
}

type SetFields struct {
	Fields map[string]string `json:"fields"`
}
