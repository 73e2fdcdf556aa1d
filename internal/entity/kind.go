package entity

type Kind string

const (
	KindProject Kind = "project"
	KindJourney Kind = "journey"
)

func (k Kind) Valid() bool {
	return k == KindProject || k == KindJourney
}

// Folder is the blob store folder images of this kind are uploaded to.
func (k Kind) Folder() string {
	switch k {
	case KindJourney:
		return "journey_imgs"
	default:
		return "project_imgs"
	}
}
