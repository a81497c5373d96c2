package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ad is a promotional card. AdProdType plus AdProdID form a loose
// pointer to the promoted Product or Course; it is not enforced as a
// foreign key.
type Ad struct {
	ID                 primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Title              string             `json:"title" bson:"title"`
	Subtitle           string             `json:"subtitle" bson:"subtitle"`
	Description        string             `json:"description,omitempty" bson:"description,omitempty"`
	Link               string             `json:"link,omitempty" bson:"link,omitempty"`
	Category           string             `json:"category,omitempty" bson:"category,omitempty"`
	TemplateID         string             `json:"templateId" bson:"templateId"`
	Price              string             `json:"price,omitempty" bson:"price,omitempty"`
	StartDate          *time.Time         `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate            *time.Time         `json:"endDate,omitempty" bson:"endDate,omitempty"`
	TargetAudience     string             `json:"targetAudience,omitempty" bson:"targetAudience,omitempty"`
	CtaText            string             `json:"ctaText,omitempty" bson:"ctaText,omitempty"`
	Priority           int                `json:"priority" bson:"priority"`
	CardDesign         string             `json:"cardDesign" bson:"cardDesign"`
	PromoCode          string             `json:"promoCode,omitempty" bson:"promoCode,omitempty"`
	LimitedOffer       string             `json:"limitedOffer,omitempty" bson:"limitedOffer,omitempty"`
	Instructor         string             `json:"instructor,omitempty" bson:"instructor,omitempty"`
	CourseInfo         string             `json:"courseInfo,omitempty" bson:"courseInfo,omitempty"`
	Rating             string             `json:"rating,omitempty" bson:"rating,omitempty"`
	OriginalPrice      string             `json:"originalPrice,omitempty" bson:"originalPrice,omitempty"`
	SalePrice          string             `json:"salePrice,omitempty" bson:"salePrice,omitempty"`
	DiscountPercentage string             `json:"discountPercentage,omitempty" bson:"discountPercentage,omitempty"`
	SaleEnds           string             `json:"saleEnds,omitempty" bson:"saleEnds,omitempty"`
	EventDate          string             `json:"eventDate,omitempty" bson:"eventDate,omitempty"`
	EventLocation      string             `json:"eventLocation,omitempty" bson:"eventLocation,omitempty"`
	CustomStyles       string             `json:"customStyles,omitempty" bson:"customStyles,omitempty"`
	AdProdType         string             `json:"adProdtype" bson:"adProdtype"`
	AdProdID           string             `json:"adProdId,omitempty" bson:"adProdId,omitempty"`
	Image              AssetRef           `json:"image" bson:"image"`
	CreatedAt          time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ApplyDefaults fills the template, design and promoted-type defaults
// for fields the client left blank at creation time.
func (a *Ad) ApplyDefaults() {
	if a.TemplateID == "" {
		a.TemplateID = "newCourse"
	}
	if a.CardDesign == "" {
		a.CardDesign = "basic"
	}
	if a.AdProdType == "" {
		a.AdProdType = "Product"
	}
}
