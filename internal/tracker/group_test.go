package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/api"
)

func ids(steps []api.Step) []string {
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		out = append(out, s.ID)
	}
	return out
}

func TestGroupStepsIsTotal(t *testing.T) {
	headings := []api.Heading{{ID: "h1", Name: "Health"}, {ID: "h2", Name: "Work"}, {ID: "h3", Name: "Empty"}}
	steps := []api.Step{
		{ID: "a", TargetHeadingID: strptr("h2")},
		{ID: "b"},
		{ID: "c", TargetHeadingID: strptr("gone")},
		{ID: "d", TargetHeadingID: strptr("h1")},
		{ID: "e", TargetHeading: &api.Heading{ID: "h1", Name: "Health"}},
	}

	groups := GroupSteps(headings, steps)
	require.Len(t, groups, 4)

	assert.Equal(t, "h1", groups[0].Heading.ID)
	assert.Equal(t, []string{"d", "e"}, ids(groups[0].Steps))
	assert.Equal(t, "h2", groups[1].Heading.ID)
	assert.Equal(t, []string{"a"}, ids(groups[1].Steps))
	assert.Equal(t, "h3", groups[2].Heading.ID, "empty headings are kept")
	assert.Empty(t, groups[2].Steps)

	last := groups[3]
	assert.True(t, last.Others)
	assert.Equal(t, OthersID, last.Heading.ID)
	assert.Equal(t, OthersName, last.Heading.Name)
	assert.Equal(t, []string{"b", "c"}, ids(last.Steps))

	seen := map[string]int{}
	for _, g := range groups {
		for _, s := range g.Steps {
			seen[s.ID]++
		}
	}
	assert.Len(t, seen, len(steps))
	for id, n := range seen {
		assert.Equal(t, 1, n, id)
	}
}

func TestGroupStepsWithoutOthers(t *testing.T) {
	groups := GroupSteps([]api.Heading{{ID: "h1"}}, []api.Step{{ID: "a", TargetHeadingID: strptr("h1")}})
	require.Len(t, groups, 1)
	assert.False(t, groups[0].Others)

	assert.Empty(t, GroupSteps(nil, nil))
}

func TestGroupStepsOrder(t *testing.T) {
	steps := []api.Step{
		{ID: "x"},
		{ID: "b", Order: intptr(2)},
		{ID: "y"},
		{ID: "a", Order: intptr(1)},
	}
	groups := GroupSteps(nil, steps)
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"a", "b", "x", "y"}, ids(groups[0].Steps))
}

func TestGroupFriendSteps(t *testing.T) {
	steps := []api.Step{
		{ID: "1", TargetHeading: &api.Heading{ID: "w", Name: "work"}},
		{ID: "2"},
		{ID: "3", TargetHeading: &api.Heading{ID: "h", Name: "Health"}},
		{ID: "4", TargetHeading: &api.Heading{ID: "w", Name: "work"}},
	}
	groups := GroupFriendSteps(steps)
	require.Len(t, groups, 3)

	assert.Equal(t, "Health", groups[0].Heading.Name)
	assert.Equal(t, "work", groups[1].Heading.Name)
	assert.Equal(t, []string{"1", "4"}, ids(groups[1].Steps))
	assert.True(t, groups[2].Others)
	assert.Equal(t, []string{"2"}, ids(groups[2].Steps))
}
