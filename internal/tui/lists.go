package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/VisheshVGR/do-i-deserve-it-website/internal/tracker"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/api"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/formatter"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/notify"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/output"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/service"
)

// item is one row of a simple list view.
type item struct {
	id     string
	title  string
	detail string
	// group is printed above the first item of each run.
	group string
	raw   interface{}
}

type listState struct {
	items  []item
	cursor int
	loaded bool
	// extra carries side data such as todo headings for forms.
	extra interface{}
}

func (m Model) list(v view) *listState {
	ls, ok := m.lists[v]
	if !ok {
		ls = &listState{}
		m.lists[v] = ls
	}
	return ls
}

func (m Model) current() (item, bool) {
	ls := m.list(m.view)
	if ls.cursor < 0 || ls.cursor >= len(ls.items) {
		return item{}, false
	}
	return ls.items[ls.cursor], true
}

// fetch loads the items of v in the background.
func (m Model) fetch(v view) tea.Cmd {
	return func() tea.Msg {
		var items []item
		var extra interface{}
		var err error
		switch v {
		case viewFriends:
			err = m.call("Failed to load friends", func(ctx context.Context) error {
				friends, err := m.app.API.ListFriends(ctx)
				items = friendItems(friends)
				return err
			})
		case viewTodos:
			err = m.call("Failed to load todos", func(ctx context.Context) error {
				headings, err := m.app.API.ListTodoHeadings(ctx)
				if err != nil {
					return err
				}
				todos, err := m.app.API.ListTodos(ctx)
				items = todoItems(service.GroupTodos(headings, todos))
				extra = headings
				return err
			})
		case viewReminders:
			err = m.call("Failed to load reminders", func(ctx context.Context) error {
				reminders, err := m.app.API.ListReminders(ctx)
				items = reminderItems(reminders)
				return err
			})
		case viewFeedback:
			err = m.call("Failed to load feedback", func(ctx context.Context) error {
				fb, err := m.app.API.ListFeedback(ctx)
				items = feedbackItems(fb)
				return err
			})
		case viewDeserve:
			err = m.call("Failed to load list", func(ctx context.Context) error {
				entries, err := m.app.API.ListDeserve(ctx)
				items = deserveItems(entries)
				return err
			})
		default:
			return nil
		}
		if err != nil {
			return nil
		}
		return itemsMsg{view: v, items: items, extra: extra}
	}
}

func friendItems(friends []api.UserFriend) []item {
	items := make([]item, 0, len(friends))
	for _, f := range friends {
		email := ""
		if f.Friend != nil {
			email = f.Friend.Email
		}
		items = append(items, item{id: f.FriendUserID, title: f.Name(), detail: email, raw: f})
	}
	return items
}

func todoItems(groups []service.TodoGroup) []item {
	var items []item
	for _, g := range groups {
		name := "No heading"
		if g.Heading != nil {
			name = g.Heading.Name
		}
		for _, t := range g.Todos {
			check := "[ ]"
			if t.IsDone {
				check = "[x]"
			}
			items = append(items, item{id: t.ID, title: check + " " + t.Title, group: name, raw: t})
		}
	}
	return items
}

func reminderItems(reminders []api.Reminder) []item {
	items := make([]item, 0, len(reminders))
	for _, r := range reminders {
		repeat := string(r.Repeat)
		if r.Repeat == api.RepeatCustom {
			repeat = formatter.Days(r.Days)
		}
		items = append(items, item{id: r.ID, title: r.Title, detail: formatter.Time(r.Time) + " · " + repeat, raw: r})
	}
	return items
}

func feedbackItems(fb []api.Feedback) []item {
	items := make([]item, 0, len(fb))
	for _, f := range fb {
		detail := string(f.Tag)
		if f.Status != "" {
			detail += " · " + string(f.Status)
		}
		items = append(items, item{id: f.ID, title: f.Title, detail: detail, raw: f})
	}
	return items
}

func deserveItems(entries []api.DeserveEntry) []item {
	items := make([]item, 0, len(entries))
	for _, e := range entries {
		items = append(items, item{id: e.ID, title: e.Title, raw: e})
	}
	return items
}

func (m Model) listKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	ls := m.list(m.view)

	switch {
	case key.Matches(msg, k.Up):
		if ls.cursor > 0 {
			ls.cursor--
		}
		return m, nil
	case key.Matches(msg, k.Down):
		if ls.cursor < len(ls.items)-1 {
			ls.cursor++
		}
		return m, nil
	case key.Matches(msg, k.Add):
		return m.addItem()
	case key.Matches(msg, k.AddGroup) && m.view == viewTodos:
		in := &headingInput{}
		return m.showForm(newHeadingForm(in), func() tea.Cmd {
			req := api.TodoHeadingRequest{Name: strings.TrimSpace(in.Name), Color: strings.TrimSpace(in.Color)}
			if req.Color == "" {
				req.Color = api.DefaultTodoHeadingColor
			}
			return m.mutation("Failed to add todo heading", "Todo heading added", viewTodos, func(ctx context.Context) error {
				_, err := m.app.API.CreateTodoHeading(ctx, req)
				return err
			})
		})
	}

	it, ok := m.current()
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(msg, k.Select):
		return m.selectItem(it)
	case key.Matches(msg, k.Edit):
		return m.editItem(it)
	case key.Matches(msg, k.Delete):
		return m.deleteItem(it)
	case key.Matches(msg, k.Status) && m.view == viewFeedback:
		if !m.app.Session.IsAdmin() {
			m.app.Notify.Notify("Only the admin can change feedback status", notify.Warning)
			return m, nil
		}
		status := new(api.FeedbackStatus)
		*status = it.raw.(api.Feedback).Status
		return m.showForm(newStatusForm(status), func() tea.Cmd {
			return m.mutation("Failed to update status", "Status updated", viewFeedback, func(ctx context.Context) error {
				return m.app.API.UpdateFeedbackStatus(ctx, it.id, *status)
			})
		})
	}
	return m, nil
}

func (m Model) selectItem(it item) (tea.Model, tea.Cmd) {
	switch m.view {
	case viewFriends:
		name := it.title
		return m, func() tea.Msg {
			var today *api.FriendToday
			if err := m.call("Failed to load friend's progress", func(ctx context.Context) error {
				var err error
				today, err = m.app.API.FriendToday(ctx, it.id)
				return err
			}); err != nil {
				return nil
			}
			return friendTodayMsg{name: name, view: tracker.ReadOnly(today.Steps, api.WeekdayOf(time.Now()))}
		}
	case viewTodos:
		t := it.raw.(api.Todo)
		done := !t.IsDone
		req := api.TodoRequest{Title: t.Title, TodoHeadingID: t.TodoHeadingID, IsDone: &done}
		return m, m.mutation("Failed to update todo", "", viewTodos, func(ctx context.Context) error {
			_, err := m.app.API.UpdateTodo(ctx, t.ID, req)
			return err
		})
	case viewFeedback:
		f := it.raw.(api.Feedback)
		width := m.width - 4
		return m, func() tea.Msg {
			body, err := output.RenderMarkdownWithWidth(service.FeedbackMarkdown(f), width)
			if err != nil {
				body = service.FeedbackMarkdown(f)
			}
			return detailMsg{title: f.Title, body: body}
		}
	}
	return m, nil
}

func (m Model) addItem() (tea.Model, tea.Cmd) {
	switch m.view {
	case viewFriends:
		uid := new(string)
		return m.showForm(textForm("Friend user id", uid), func() tea.Cmd {
			if u := m.app.Session.User(); u != nil && u.UID == strings.TrimSpace(*uid) {
				m.app.Notify.Notify("You cannot add yourself as a friend", notify.Error)
				return nil
			}
			return m.mutation("Failed to add friend", "Friend added", viewFriends, func(ctx context.Context) error {
				return m.app.API.AddFriend(ctx, strings.TrimSpace(*uid))
			})
		})
	case viewTodos:
		in := &todoInput{}
		headings, _ := m.list(viewTodos).extra.([]api.TodoHeading)
		return m.showForm(newTodoForm(in, headings), func() tea.Cmd {
			req := api.TodoRequest{Title: strings.TrimSpace(in.Title)}
			if in.Heading != "" {
				req.TodoHeadingID = &in.Heading
			}
			return m.mutation("Failed to add todo", "Todo added", viewTodos, func(ctx context.Context) error {
				_, err := m.app.API.CreateTodo(ctx, req)
				return err
			})
		})
	case viewReminders:
		return m.reminderForm(nil)
	case viewFeedback:
		return m.feedbackForm(nil)
	case viewDeserve:
		title := new(string)
		return m.showForm(textForm("Title", title), func() tea.Cmd {
			return m.mutation("Failed to add entry", "Entry added", viewDeserve, func(ctx context.Context) error {
				_, err := m.app.API.CreateDeserve(ctx, strings.TrimSpace(*title))
				return err
			})
		})
	}
	return m, nil
}

func (m Model) editItem(it item) (tea.Model, tea.Cmd) {
	switch m.view {
	case viewTodos:
		t := it.raw.(api.Todo)
		in := &todoInput{Title: t.Title}
		if t.TodoHeadingID != nil {
			in.Heading = *t.TodoHeadingID
		}
		headings, _ := m.list(viewTodos).extra.([]api.TodoHeading)
		return m.showForm(newTodoForm(in, headings), func() tea.Cmd {
			done := t.IsDone
			req := api.TodoRequest{Title: strings.TrimSpace(in.Title), IsDone: &done}
			if in.Heading != "" {
				req.TodoHeadingID = &in.Heading
			}
			return m.mutation("Failed to update todo", "Todo updated", viewTodos, func(ctx context.Context) error {
				_, err := m.app.API.UpdateTodo(ctx, t.ID, req)
				return err
			})
		})
	case viewReminders:
		r := it.raw.(api.Reminder)
		return m.reminderForm(&r)
	case viewFeedback:
		f := it.raw.(api.Feedback)
		return m.feedbackForm(&f)
	case viewDeserve:
		title := new(string)
		*title = it.title
		return m.showForm(textForm("Title", title), func() tea.Cmd {
			return m.mutation("Failed to update entry", "Entry updated", viewDeserve, func(ctx context.Context) error {
				_, err := m.app.API.UpdateDeserve(ctx, it.id, strings.TrimSpace(*title))
				return err
			})
		})
	}
	return m, nil
}

func (m Model) deleteItem(it item) (tea.Model, tea.Cmd) {
	var fallback, success string
	var fn func(ctx context.Context) error
	switch m.view {
	case viewFriends:
		fallback, success = "Failed to remove friend", "Friend removed"
		fn = func(ctx context.Context) error { return m.app.API.RemoveFriend(ctx, it.id) }
	case viewTodos:
		fallback, success = "Failed to delete todo", "Todo deleted"
		fn = func(ctx context.Context) error { return m.app.API.DeleteTodo(ctx, it.id) }
	case viewReminders:
		fallback, success = "Failed to delete reminder", "Reminder deleted"
		fn = func(ctx context.Context) error { return m.app.API.DeleteReminder(ctx, it.id) }
	case viewFeedback:
		fallback, success = "Failed to delete feedback", "Feedback deleted"
		fn = func(ctx context.Context) error { return m.app.API.DeleteFeedback(ctx, it.id) }
	case viewDeserve:
		fallback, success = "Failed to delete entry", "Entry deleted"
		fn = func(ctx context.Context) error { return m.app.API.DeleteDeserve(ctx, it.id) }
	default:
		return m, nil
	}
	return m.confirmDelete(fmt.Sprintf("Delete %q?", it.title), fallback, success, fn)
}

func (m Model) reminderForm(r *api.Reminder) (tea.Model, tea.Cmd) {
	in := &reminderInput{Repeat: api.RepeatNone}
	if r != nil {
		in.Title, in.Description, in.Repeat = r.Title, r.Description, r.Repeat
		in.Days = append([]api.Weekday(nil), r.Days...)
		if t, err := time.Parse(time.RFC3339, r.Time); err == nil {
			in.Time = t.Local().Format("2006-01-02 15:04")
		}
	}
	return m.showForm(newReminderForm(in), func() tea.Cmd {
		req, err := in.Input().Build(api.ReminderRequest{}, time.Now())
		if err != nil {
			m.app.Notify.Notify(err.Error(), notify.Error)
			return nil
		}
		if r == nil {
			return m.mutation("Failed to add reminder", "Reminder added", viewReminders, func(ctx context.Context) error {
				_, err := m.app.API.CreateReminder(ctx, req)
				return err
			})
		}
		id := r.ID
		return m.mutation("Failed to update reminder", "Reminder updated", viewReminders, func(ctx context.Context) error {
			_, err := m.app.API.UpdateReminder(ctx, id, req)
			return err
		})
	})
}

func (m Model) feedbackForm(f *api.Feedback) (tea.Model, tea.Cmd) {
	in := &feedbackInput{Tag: api.FeedbackTags[0]}
	if f != nil {
		in.Title, in.Description, in.Tag = f.Title, f.Description, f.Tag
	}
	return m.showForm(newFeedbackForm(in), func() tea.Cmd {
		req := api.FeedbackRequest{Title: strings.TrimSpace(in.Title), Description: strings.TrimSpace(in.Description), Tag: in.Tag}
		if f == nil {
			return m.mutation("Failed to submit feedback", "Thanks for the feedback!", viewFeedback, func(ctx context.Context) error {
				_, err := m.app.API.CreateFeedback(ctx, req)
				return err
			})
		}
		id := f.ID
		return m.mutation("Failed to update feedback", "Feedback updated", viewFeedback, func(ctx context.Context) error {
			_, err := m.app.API.UpdateFeedback(ctx, id, req)
			return err
		})
	})
}

func (m Model) viewList(title string) string {
	ls := m.list(m.view)
	if !ls.loaded {
		return titleStyle.Render(title) + "\n" + faintStyle.Render("Loading…")
	}
	if len(ls.items) == 0 {
		return titleStyle.Render(title) + "\n" + faintStyle.Render("Nothing here yet. Press a to add.")
	}

	var b strings.Builder
	group := ""
	for i, it := range ls.items {
		if it.group != "" && it.group != group {
			group = it.group
			b.WriteString(titleStyle.UnsetMarginBottom().Render(group) + "\n")
		}
		pointer := "  "
		line := it.title
		if i == ls.cursor {
			pointer = cursorStyle.Render("> ")
			line = cursorStyle.Render(line)
		}
		if it.detail != "" {
			line += "  " + faintStyle.Render(it.detail)
		}
		b.WriteString(pointer + line + "\n")
	}
	return titleStyle.Render(title) + "\n" + strings.TrimRight(b.String(), "\n")
}
