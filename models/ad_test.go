package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdApplyDefaults(t *testing.T) {
	ad := Ad{Title: "Summer Sale", Subtitle: "All exams 20% off"}
	ad.ApplyDefaults()

	assert.Equal(t, "newCourse", ad.TemplateID)
	assert.Equal(t, "basic", ad.CardDesign)
	assert.Equal(t, "Product", ad.AdProdType)
}

func TestAdApplyDefaultsKeepsClientValues(t *testing.T) {
	ad := Ad{
		Title:      "Course launch",
		Subtitle:   "New calculus series",
		TemplateID: "sale",
		CardDesign: "hero",
		AdProdType: "Course",
	}
	ad.ApplyDefaults()

	assert.Equal(t, "sale", ad.TemplateID)
	assert.Equal(t, "hero", ad.CardDesign)
	assert.Equal(t, "Course", ad.AdProdType)
}
