package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVideoDescriptors(t *testing.T) {
	raw := `[{"_id":"64f000000000000000000001","title":"Intro","priority":2},{"title":"","duration":90.5}]`

	descriptors := ParseVideoDescriptors(raw)
	require.Len(t, descriptors, 2)

	assert.Equal(t, "64f000000000000000000001", descriptors[0].ID)
	require.NotNil(t, descriptors[0].Title)
	assert.Equal(t, "Intro", *descriptors[0].Title)
	require.NotNil(t, descriptors[0].Priority)
	assert.Equal(t, 2, *descriptors[0].Priority)
	assert.Nil(t, descriptors[0].Duration)

	assert.Empty(t, descriptors[1].ID)
	require.NotNil(t, descriptors[1].Title)
	assert.Empty(t, *descriptors[1].Title)
	require.NotNil(t, descriptors[1].Duration)
	assert.Equal(t, 90.5, *descriptors[1].Duration)
}

func TestParseVideoDescriptorsMalformed(t *testing.T) {
	assert.Nil(t, ParseVideoDescriptors("{broken"))
	assert.Nil(t, ParseVideoDescriptors(""))
	assert.Nil(t, ParseVideoDescriptors(`{"_id":"not-a-list"}`))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"go", "mongo", "redis"}, SplitList(" go, mongo ,redis "))
	assert.Equal(t, []string{"solo"}, SplitList("solo"))
	assert.Empty(t, SplitList(""))
	assert.Empty(t, SplitList(" , ,"))
}
