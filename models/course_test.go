package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCourseApplyDefaults(t *testing.T) {
	course := Course{Title: "Algebra Basics"}
	course.ApplyDefaults()

	assert.Equal(t, "Beginner", course.DifficultyLevel)
	assert.Equal(t, "English", course.Language)
}

func TestCourseApplyDefaultsKeepsClientValues(t *testing.T) {
	course := Course{
		Title:           "Advanced Topology",
		DifficultyLevel: "Advanced",
		Language:        "German",
	}
	course.ApplyDefaults()

	assert.Equal(t, "Advanced", course.DifficultyLevel)
	assert.Equal(t, "German", course.Language)
}
