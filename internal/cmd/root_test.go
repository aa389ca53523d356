package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	paths := []string{
		"auth login", "auth callback", "auth token", "auth logout", "auth me", "auth status",
		"target list", "target inc", "target dec", "target set", "target toggle", "target heading-toggle",
		"heading add", "heading edit", "heading delete",
		"step add", "step edit", "step status", "step delete",
		"icons", "report",
		"friends add", "friends remove", "friends today",
		"todo add", "todo done", "todo heading add", "todo heading delete",
		"reminder add", "reminder edit",
		"feedback add", "feedback status",
		"deserve add", "deserve edit",
		"tui", "version", "completion",
	}
	for _, p := range paths {
		c, _, err := rootCmd.Find(strings.Fields(p))
		require.NoError(t, err, p)
		want := strings.Fields(p)
		assert.Equal(t, want[len(want)-1], c.Name(), p)
	}
}

func TestStepInputOnlyCarriesSetFlags(t *testing.T) {
	require.NoError(t, stepEditCmd.Flags().Parse([]string{"--title", "Run", "--days", "Mon,Fri"}))

	in := stepInput(stepEditCmd)
	require.NotNil(t, in.Title)
	assert.Equal(t, "Run", *in.Title)
	assert.True(t, in.DaysSet)
	assert.Equal(t, []string{"Mon", "Fri"}, in.Days)
	assert.Nil(t, in.Public)
	assert.Nil(t, in.Heading)
	assert.Nil(t, in.Icon)
	assert.Nil(t, in.Type)
}

func TestReminderInputOnlyCarriesSetFlags(t *testing.T) {
	require.NoError(t, reminderAddCmd.Flags().Parse([]string{"--time", "07:30", "--repeat", "daily"}))

	in := reminderInput(reminderAddCmd)
	require.NotNil(t, in.Time)
	assert.Equal(t, "07:30", *in.Time)
	require.NotNil(t, in.Repeat)
	assert.Equal(t, "daily", *in.Repeat)
	assert.Nil(t, in.Description)
	assert.False(t, in.DaysSet)
}

func TestTUISkipsTerminalNotifications(t *testing.T) {
	assert.NotEmpty(t, tuiCmd.Annotations[annotationFullscreen])
	assert.Empty(t, targetListCmd.Annotations[annotationFullscreen])
}
