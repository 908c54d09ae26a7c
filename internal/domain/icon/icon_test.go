package icon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	ic, ok := Lookup("run_icon")
	assert.True(t, ok)
	assert.Equal(t, "Run", ic.Name)
	assert.Equal(t, "bg-card-green", ic.CardClass)

	ic, ok = Lookup("moon_icon")
	assert.True(t, ok)
	assert.Equal(t, "text-habit-indigo", ic.TextClass)
}

func TestLookup_UnknownFallsBack(t *testing.T) {
	ic, ok := Lookup("spaceship_icon")
	assert.False(t, ok)
	assert.Equal(t, "spaceship_icon", ic.ID)
	assert.Equal(t, DefaultEmoji, ic.Emoji)
	assert.Equal(t, DefaultName, ic.Name)
	assert.Equal(t, "bg-card-green", ic.CardClass)
}

func TestAll(t *testing.T) {
	icons := All()
	assert.Len(t, icons, 18)
	assert.Equal(t, "prayer_icon", icons[0].ID)
	for _, ic := range icons {
		assert.NotEmpty(t, ic.CardClass, ic.ID)
	}
}
