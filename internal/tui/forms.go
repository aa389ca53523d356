package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/api"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/icons"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/service"
)

func notEmpty(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(what + " cannot be empty")
		}
		return nil
	}
}

func confirmForm(prompt string, value *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Affirmative("Delete").
				Negative("Cancel").
				Value(value),
		),
	)
}

func textForm(title string, value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Value(value).
				Validate(notEmpty(title)),
		),
	)
}

func tokenForm(title, description string, value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description(description).
				EchoMode(huh.EchoModePassword).
				Value(value).
				Validate(notEmpty("token")),
		),
	)
}

type headingInput struct {
	Name  string
	Color string
}

func newHeadingForm(in *headingInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Heading name").
				Value(&in.Name).
				Validate(notEmpty("heading name")),
			huh.NewInput().
				Title("Color").
				Description("Hex color such as #5C6BC0; empty for the default").
				Value(&in.Color),
		),
	)
}

// stepInput backs the step form.
type stepInput struct {
	Title       string
	Description string
	Type        api.StepType
	Days        []api.Weekday
	Public      bool
	Heading     string
	Icon        string
}

func newStepInput(s *api.Step) *stepInput {
	if s == nil {
		return &stepInput{Type: api.StepCount, Icon: string(icons.Default)}
	}
	name, _ := icons.Parse(s.Icon)
	return &stepInput{
		Title:       s.Title,
		Description: s.Description,
		Type:        s.Type,
		Days:        append([]api.Weekday(nil), s.Days...),
		Public:      s.IsPublic,
		Heading:     s.HeadingID(),
		Icon:        string(name),
	}
}

// Build validates the form the same way the step commands do.
func (in *stepInput) Build(base api.StepRequest, creating bool) (api.StepRequest, error) {
	days := make([]string, len(in.Days))
	for i, d := range in.Days {
		days[i] = string(d)
	}
	si := service.StepInput{
		Title:       &in.Title,
		Description: &in.Description,
		Days:        days,
		DaysSet:     true,
		Public:      &in.Public,
		Heading:     &in.Heading,
		Icon:        &in.Icon,
	}
	if creating {
		typ := string(in.Type)
		si.Type = &typ
	}
	return si.Build(base, creating)
}

func newStepForm(in *stepInput, headings []api.Heading, creating bool) *huh.Form {
	headingOpts := []huh.Option[string]{huh.NewOption("None", "")}
	for _, h := range headings {
		headingOpts = append(headingOpts, huh.NewOption(h.Name, h.ID))
	}

	var iconOpts []huh.Option[string]
	for _, n := range icons.All() {
		iconOpts = append(iconOpts, huh.NewOption(n.Glyph()+"  "+string(n), string(n)))
	}

	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Value(&in.Title).
			Validate(notEmpty("step title")),
		huh.NewText().
			Title("Description").
			Value(&in.Description),
	}
	if creating {
		fields = append(fields, huh.NewSelect[api.StepType]().
			Title("Type").
			Description("Cannot be changed later").
			Options(
				huh.NewOption("Count", api.StepCount),
				huh.NewOption("Yes / no", api.StepBool),
			).
			Value(&in.Type))
	}
	fields = append(fields,
		huh.NewMultiSelect[api.Weekday]().
			Title("Days").
			Description("None selected means every day").
			Options(huh.NewOptions(api.Weekdays...)...).
			Value(&in.Days),
		huh.NewSelect[string]().
			Title("Heading").
			Options(headingOpts...).
			Value(&in.Heading),
		huh.NewSelect[string]().
			Title("Icon").
			Options(iconOpts...).
			Height(8).
			Value(&in.Icon),
		huh.NewConfirm().
			Title("Visible to friends").
			Value(&in.Public),
	)
	return huh.NewForm(huh.NewGroup(fields...))
}

type todoInput struct {
	Title   string
	Heading string
}

func newTodoForm(in *todoInput, headings []api.TodoHeading) *huh.Form {
	opts := []huh.Option[string]{huh.NewOption("None", "")}
	for _, h := range headings {
		opts = append(opts, huh.NewOption(h.Name, h.ID))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Todo").
				Value(&in.Title).
				Validate(notEmpty("todo title")),
			huh.NewSelect[string]().
				Title("Heading").
				Options(opts...).
				Value(&in.Heading),
		),
	)
}

// reminderInput backs the reminder form.
type reminderInput struct {
	Title       string
	Description string
	Time        string
	Repeat      api.Repeat
	Days        []api.Weekday
}

func (in *reminderInput) Input() service.ReminderInput {
	repeat := string(in.Repeat)
	days := make([]string, len(in.Days))
	for i, d := range in.Days {
		days[i] = string(d)
	}
	return service.ReminderInput{
		Title:       &in.Title,
		Description: &in.Description,
		Time:        &in.Time,
		Repeat:      &repeat,
		Days:        days,
		DaysSet:     true,
	}
}

func newReminderForm(in *reminderInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&in.Title).
				Validate(notEmpty("reminder title")),
			huh.NewInput().
				Title("Description").
				Value(&in.Description),
			huh.NewInput().
				Title("Time").
				Description("HH:MM today, or YYYY-MM-DD HH:MM").
				Value(&in.Time).
				Validate(notEmpty("time")),
			huh.NewSelect[api.Repeat]().
				Title("Repeat").
				Options(huh.NewOptions(api.RepeatNone, api.RepeatDaily, api.RepeatWeekly, api.RepeatCustom)...).
				Value(&in.Repeat),
			huh.NewMultiSelect[api.Weekday]().
				Title("Days").
				Description("Only used for custom repeats").
				Options(huh.NewOptions(api.Weekdays...)...).
				Value(&in.Days),
		),
	)
}

type feedbackInput struct {
	Title       string
	Description string
	Tag         api.FeedbackTag
}

func newFeedbackForm(in *feedbackInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&in.Title).
				Validate(notEmpty("feedback title")),
			huh.NewText().
				Title("Description").
				Value(&in.Description),
			huh.NewSelect[api.FeedbackTag]().
				Title("Tag").
				Options(huh.NewOptions(api.FeedbackTags...)...).
				Value(&in.Tag),
		),
	)
}

func newStatusForm(value *api.FeedbackStatus) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[api.FeedbackStatus]().
				Title("Status").
				Options(huh.NewOptions(api.FeedbackStatuses...)...).
				Value(value),
		),
	)
}
