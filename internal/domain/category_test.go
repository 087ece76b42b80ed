package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategory_Label(t *testing.T) {
	assert.Equal(t, "Pubsub", CategoryPubsub.Label())
	assert.Equal(t, "Shreds", CategoryShreds.Label())
	assert.Equal(t, "algo", Category("algo").Label())
}

func TestCategory_IsValid(t *testing.T) {
	assert.True(t, CategoryPubsub.IsValid())
	assert.True(t, CategoryShreds.IsValid())
	assert.False(t, Category("").IsValid())
}
