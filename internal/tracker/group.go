package tracker

import (
	"sort"
	"strings"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/api"
)

const (
	// OthersID identifies the synthetic group for steps without a known heading.
	OthersID = "no-heading"
	// OthersName is the synthetic group's display name.
	OthersName = "Others"
)

// Group is a heading and the steps filed under it.
type Group struct {
	Heading api.Heading
	Others  bool
	Steps   []api.Step
}

// OthersHeading returns the synthetic heading.
func OthersHeading() api.Heading {
	return api.Heading{ID: OthersID, Name: OthersName}
}

// GroupSteps files every step under exactly one group. Headings keep server
// order, including headings with no steps. Steps whose heading is missing or
// unknown go to Others, which comes last and only exists when non-empty.
func GroupSteps(headings []api.Heading, steps []api.Step) []Group {
	groups := make([]Group, 0, len(headings)+1)
	index := make(map[string]int, len(headings))
	for _, h := range headings {
		if _, dup := index[h.ID]; dup || h.ID == "" || h.ID == OthersID {
			continue
		}
		index[h.ID] = len(groups)
		groups = append(groups, Group{Heading: h})
	}

	var others []api.Step
	for _, s := range steps {
		if i, ok := index[s.HeadingID()]; ok {
			groups[i].Steps = append(groups[i].Steps, s)
			continue
		}
		others = append(others, s)
	}
	if len(others) > 0 {
		groups = append(groups, Group{Heading: OthersHeading(), Others: true, Steps: others})
	}

	for i := range groups {
		sortByOrder(groups[i].Steps)
	}
	return groups
}

// GroupFriendSteps groups a friend's public steps by their embedded heading.
// Groups sort by heading name with Others last.
func GroupFriendSteps(steps []api.Step) []Group {
	index := map[string]int{}
	var groups []Group
	var others []api.Step

	for _, s := range steps {
		id := s.HeadingID()
		if id == "" || id == OthersID {
			others = append(others, s)
			continue
		}
		i, ok := index[id]
		if !ok {
			h := api.Heading{ID: id, Name: OthersName}
			if s.TargetHeading != nil {
				h = *s.TargetHeading
				h.ID = id
			}
			i = len(groups)
			index[id] = i
			groups = append(groups, Group{Heading: h})
		}
		groups[i].Steps = append(groups[i].Steps, s)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return strings.ToLower(groups[i].Heading.Name) < strings.ToLower(groups[j].Heading.Name)
	})
	if len(others) > 0 {
		groups = append(groups, Group{Heading: OthersHeading(), Others: true, Steps: others})
	}
	for i := range groups {
		sortByOrder(groups[i].Steps)
	}
	return groups
}

// sortByOrder puts steps with an explicit order first, ascending, and keeps
// the rest in server order after them.
func sortByOrder(steps []api.Step) {
	sort.SliceStable(steps, func(i, j int) bool {
		a, b := steps[i].Order, steps[j].Order
		switch {
		case a != nil && b != nil:
			return *a < *b
		case a != nil:
			return true
		default:
			return false
		}
	})
}
