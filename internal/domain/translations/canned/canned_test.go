package canned

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_CoversEverySpecies(t *testing.T) {
	table := Default()

	for _, sp := range []string{"dog", "cat", "bird", "rabbit", "hamster", "other"} {
		for _, mood := range []string{"", "hungry", "playful", "moody", "sleepy"} {
			assert.NotEmpty(t, table.Phrases(sp, mood), "species=%s mood=%s", sp, mood)
		}
	}
}

func TestDefault_DogHungry(t *testing.T) {
	got := Default().Phrases("dog", "hungry")
	assert.Equal(t, []string{
		"Is that food? I smell food. Please share your food with me!",
		"My bowl is empty and my heart is breaking. Feed me, human!",
		"I promise I'll be a good boy if you give me a treat right now.",
		"Dinner time was five minutes ago. I've been counting!",
	}, got)
}

func TestPhrases_Fallbacks(t *testing.T) {
	table, err := Parse([]byte(`
dog:
  default: ["woof"]
  hungry: ["feed me"]
other:
  default: ["..."]
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"feed me"}, table.Phrases("dog", "hungry"))
	assert.Equal(t, []string{"feed me"}, table.Phrases("DOG", " Hungry "))
	assert.Equal(t, []string{"woof"}, table.Phrases("dog", ""))
	assert.Equal(t, []string{"woof"}, table.Phrases("dog", "grumpy"))
	assert.Equal(t, []string{"..."}, table.Phrases("lizard", "hungry"))
}

func TestPhrases_UnknownSpeciesWithoutOther(t *testing.T) {
	table, err := Parse([]byte("dog:\n  default: [\"woof\"]\n"))
	require.NoError(t, err)

	assert.Nil(t, table.Phrases("cat", ""))
	_, ok := table.Pick("cat", "")
	assert.False(t, ok)
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"invalid yaml":       "dog: [",
		"empty table":        "",
		"missing default":    "dog:\n  hungry: [\"feed me\"]\n",
		"blank default only": "dog:\n  default: [\"  \"]\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src))
			assert.Error(t, err)
		})
	}
}

func TestPick_UsesRandomSource(t *testing.T) {
	table := Default().WithRand(func(n int) int { return n - 1 })

	got, ok := table.Pick("dog", "hungry")
	require.True(t, ok)
	assert.Equal(t, "Dinner time was five minutes ago. I've been counting!", got)

	first := Default().WithRand(func(int) int { return 0 })
	got, ok = first.Pick("dog", "hungry")
	require.True(t, ok)
	assert.Equal(t, "Is that food? I smell food. Please share your food with me!", got)
}

func TestSpeciesAndMoods(t *testing.T) {
	table := Default()

	assert.Equal(t, []string{"bird", "cat", "dog", "hamster", "other", "rabbit"}, table.Species())
	assert.Equal(t, []string{"default", "hungry", "moody", "playful", "sleepy"}, table.Moods(" Dog "))
	assert.Empty(t, table.Moods("fish"))
}
