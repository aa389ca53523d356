package tracker

import (
	"strconv"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/api"
)

// Tone is how a value should be emphasized.
type Tone int

const (
	ToneNormal Tone = iota
	ToneZero
	ToneKudos
	ToneStatus
)

// Labels for bool steps.
const (
	LabelAbsent  = "Absent"
	LabelPresent = "Present"
	LabelKudos   = "Kudos"
)

// Display is the presentation of a step's current value.
type Display struct {
	Label    string
	Tone     Tone
	Kudos    bool
	Controls bool
}

// Seed derives the initial pending value from the most recent datum. Count
// steps start at count+kudos; bool steps at 1 when count is truthy. Steps
// that are not tracked seed to 0.
func Seed(step api.Step) int {
	if !Tracked(step) {
		return 0
	}
	latest, ok := step.Latest()
	if !ok {
		return 0
	}
	switch step.Type {
	case api.StepCount:
		return (latest.Count + latest.Kudos).Int()
	case api.StepBool:
		if latest.Count != 0 {
			return 1
		}
	}
	return 0
}

// Tracked reports whether a step takes daily input.
func Tracked(step api.Step) bool {
	if !step.Status.Tracked() {
		return false
	}
	return step.Type == api.StepCount || step.Type == api.StepBool
}

// IsKudos reports whether a value earns kudos: the step is restricted to
// certain weekdays, today is not one of them, and something was recorded.
func IsKudos(step api.Step, pending int, today api.Weekday) bool {
	if step.Type != api.StepCount && step.Type != api.StepBool {
		return false
	}
	if len(step.Days) == 0 || pending <= 0 {
		return false
	}
	for _, d := range step.Days {
		if d == today {
			return false
		}
	}
	return true
}

// Derive computes how a step with the given pending value is shown today.
func Derive(step api.Step, pending int, today api.Weekday) Display {
	if !step.Status.Tracked() {
		return Display{Label: string(step.Status), Tone: ToneStatus}
	}

	kudos := IsKudos(step, pending, today)
	d := Display{Kudos: kudos, Controls: Tracked(step)}

	switch {
	case kudos:
		d.Tone = ToneKudos
	case pending == 0:
		d.Tone = ToneZero
	default:
		d.Tone = ToneNormal
	}

	if step.Type == api.StepBool {
		switch {
		case pending == 0:
			d.Label = LabelAbsent
		case kudos:
			d.Label = LabelKudos
		default:
			d.Label = LabelPresent
		}
		return d
	}

	d.Label = strconv.Itoa(pending)
	return d
}
