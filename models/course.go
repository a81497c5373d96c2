package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course owns an ordered list of Video documents. VideoIDs is what gets
// persisted; Videos is filled in by the repository when populating a
// response and never written back.
type Course struct {
	ID               primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	Title            string               `json:"title" bson:"title"`
	Description      string               `json:"description,omitempty" bson:"description,omitempty"`
	Instructor       string               `json:"instructor,omitempty" bson:"instructor,omitempty"`
	Price            float64              `json:"price" bson:"price"`
	Rating           float64              `json:"rating" bson:"rating"`
	Reviews          int                  `json:"reviews" bson:"reviews"`
	IsFeatured       bool                 `json:"isFeatured" bson:"isFeatured"`
	DifficultyLevel  string               `json:"difficultyLevel" bson:"difficultyLevel"`
	Language         string               `json:"language" bson:"language"`
	Topics           []string             `json:"topics" bson:"topics"`
	TotalDuration    float64              `json:"totalDuration" bson:"totalDuration"`
	NumberOfLectures int                  `json:"numberOfLectures" bson:"numberOfLectures"`
	Category         string               `json:"category,omitempty" bson:"category,omitempty"`
	Tags             []string             `json:"tags" bson:"tags"`
	Requirements     []string             `json:"requirements" bson:"requirements"`
	WhatYouWillLearn []string             `json:"whatYouWillLearn" bson:"whatYouWillLearn"`
	SaleEnabled      bool                 `json:"saleEnabled" bson:"saleEnabled"`
	SalePrice        float64              `json:"salePrice,omitempty" bson:"salePrice,omitempty"`
	Image            AssetRef             `json:"image,omitempty" bson:"image,omitempty"`
	ShortVideoLink   AssetRef             `json:"shortVideoLink,omitempty" bson:"shortVideoLink,omitempty"`
	VideoIDs         []primitive.ObjectID `json:"-" bson:"videos"`
	Videos           []Video              `json:"videos" bson:"-"`
	FirstVideoURL    string               `json:"firstVideoUrl,omitempty" bson:"-"`
	CreatedAt        time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// ApplyDefaults fills the catalog defaults for fields the client left
// blank at creation time.
func (c *Course) ApplyDefaults() {
	if c.DifficultyLevel == "" {
		c.DifficultyLevel = "Beginner"
	}
	if c.Language == "" {
		c.Language = "English"
	}
}

// SplitList turns comma-separated form input into a trimmed list,
// dropping empty entries.
func SplitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := []string{}
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
