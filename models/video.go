package models

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video is a course lecture. Priority is the sole ordering key among
// siblings; each video carries up to two assets, the primary file and a
// cover image.
type Video struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Duration    float64            `json:"duration" bson:"duration"`
	Priority    int                `json:"priority" bson:"priority"`
	Course      primitive.ObjectID `json:"course,omitempty" bson:"course,omitempty"`
	VideoFile   AssetRef           `json:"videoFile,omitempty" bson:"videoFile,omitempty"`
	CoverImage  AssetRef           `json:"coverImage,omitempty" bson:"coverImage,omitempty"`
}

// VideoDescriptor is one entry of the client-supplied videosData JSON
// list. Pointer fields distinguish "absent" from an explicit zero value
// so updates only touch fields the client actually sent.
type VideoDescriptor struct {
	ID          string   `json:"_id"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Duration    *float64 `json:"duration"`
	Priority    *int     `json:"priority"`
}

// ParseVideoDescriptors decodes the videosData form field. Malformed
// JSON is treated as an empty list, not an error.
func ParseVideoDescriptors(raw string) []VideoDescriptor {
	if raw == "" {
		return nil
	}
	var out []VideoDescriptor
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}
