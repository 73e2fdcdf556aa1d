package entity

// AssetRef points at an image used by an entity. AssetID is set only when the
// URL was produced by the blob store; pasted external URLs never carry one and
// must never be passed to a blob delete.
type AssetRef struct {
	URL              string `json:"url"`
	AssetID          string `json:"asset_id"`
	OriginalFilename string `json:"original_filename"`
}

// Managed reports whether the blob store owns the referenced object.
func (a AssetRef) Managed() bool {
	return a.AssetID != ""
}

func (a AssetRef) Empty() bool {
	return a.URL == "" && a.AssetID == ""
}
