package models

// AssetRef is the stored pair of Cloudinary public ID and retrievable URL
// for one uploaded binary. A zero PublicID means "no asset", never
// "upload pending".
type AssetRef struct {
	PublicID string `json:"public_id,omitempty" bson:"public_id,omitempty"`
	URL      string `json:"url,omitempty" bson:"url,omitempty"`
}

func (a AssetRef) IsZero() bool {
	return a.PublicID == ""
}
