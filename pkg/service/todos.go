package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/api"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/formatter"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/output"
)

// TodoService manages one-off todos and their headings.
type TodoService struct {
	*Env
}

// NewTodoService creates a new todo service
func NewTodoService(env *Env) *TodoService {
	return &TodoService{Env: env}
}

// TodoGroup is a todo heading with its todos. Todos without a known
// heading are grouped under a nil Heading, listed last.
type TodoGroup struct {
	Heading *api.TodoHeading `json:"heading,omitempty"`
	Todos   []api.Todo       `json:"todos"`
}

// GroupTodos files todos under their heading. Open todos sort before done ones.
func GroupTodos(headings []api.TodoHeading, todos []api.Todo) []TodoGroup {
	index := make(map[string]int, len(headings))
	groups := make([]TodoGroup, 0, len(headings)+1)
	for i := range headings {
		index[headings[i].ID] = len(groups)
		groups = append(groups, TodoGroup{Heading: &headings[i]})
	}

	var loose []api.Todo
	for _, t := range todos {
		if t.TodoHeadingID != nil {
			if i, ok := index[*t.TodoHeadingID]; ok {
				groups[i].Todos = append(groups[i].Todos, t)
				continue
			}
		}
		loose = append(loose, t)
	}
	if len(loose) > 0 {
		groups = append(groups, TodoGroup{Todos: loose})
	}

	for i := range groups {
		todos := groups[i].Todos
		sort.SliceStable(todos, func(a, b int) bool { return !todos[a].IsDone && todos[b].IsDone })
	}
	return groups
}

// List prints todos grouped by heading.
func (s *TodoService) List(ctx context.Context) error {
	if _, err := s.require(ctx); err != nil {
		return err
	}

	var headings []api.TodoHeading
	var todos []api.Todo
	if err := s.call(ctx, "Failed to load todos", func(ctx context.Context) error {
		var err error
		if headings, err = s.API.ListTodoHeadings(ctx); err != nil {
			return err
		}
		todos, err = s.API.ListTodos(ctx)
		return err
	}); err != nil {
		return err
	}

	groups := GroupTodos(headings, todos)
	var rows [][]string
	for _, g := range groups {
		name := "No heading"
		if g.Heading != nil {
			name = g.Heading.Name
		}
		for i, t := range g.Todos {
			heading := ""
			if i == 0 {
				heading = formatter.Bold.Sprint(name)
			}
			rows = append(rows, []string{heading, formatter.Check(t.IsDone), t.Title, t.ID})
		}
	}
	return s.Out.List("Todos", groups, []string{"HEADING", "DONE", "TODO", "ID"}, rows)
}

// Add creates a todo, optionally under a heading.
func (s *TodoService) Add(ctx context.Context, title, headingID string) error {
	req := api.TodoRequest{Title: strings.TrimSpace(title)}
	if req.Title == "" {
		return errors.New("todo title cannot be empty")
	}
	if h := strings.TrimSpace(headingID); h != "" {
		req.TodoHeadingID = &h
	}
	if _, err := s.require(ctx); err != nil {
		return err
	}

	var todo *api.Todo
	if err := s.call(ctx, "Failed to add todo", func(ctx context.Context) error {
		var err error
		todo, err = s.API.CreateTodo(ctx, req)
		return err
	}); err != nil {
		return err
	}
	s.Notify.Notify("Todo added", "")
	return s.Out.Record("", todo, []output.Field{{Key: "ID", Value: todo.ID}, {Key: "Title", Value: todo.Title}})
}

// Edit changes a todo's title or heading. Nil leaves a field unchanged; an
// empty heading moves the todo out of its heading.
func (s *TodoService) Edit(ctx context.Context, id string, title, headingID *string) error {
	if _, err := s.require(ctx); err != nil {
		return err
	}
	return s.update(ctx, id, "Todo updated", func(req *api.TodoRequest) {
		if title != nil && strings.TrimSpace(*title) != "" {
			req.Title = strings.TrimSpace(*title)
		}
		if headingID != nil {
			if h := strings.TrimSpace(*headingID); h == "" {
				req.TodoHeadingID = nil
			} else {
				req.TodoHeadingID = &h
			}
		}
	})
}

// SetDone marks a todo done or open.
func (s *TodoService) SetDone(ctx context.Context, id string, done bool) error {
	if _, err := s.require(ctx); err != nil {
		return err
	}
	msg := "Todo reopened"
	if done {
		msg = "Todo done"
	}
	return s.update(ctx, id, msg, func(req *api.TodoRequest) {
		req.IsDone = &done
	})
}

func (s *TodoService) update(ctx context.Context, id, success string, change func(*api.TodoRequest)) error {
	if err := s.call(ctx, "Failed to update todo", func(ctx context.Context) error {
		cur, err := s.API.GetTodo(ctx, id)
		if err != nil {
			return err
		}
		done := cur.IsDone
		req := api.TodoRequest{Title: cur.Title, TodoHeadingID: cur.TodoHeadingID, IsDone: &done}
		change(&req)
		_, err = s.API.UpdateTodo(ctx, id, req)
		return err
	}); err != nil {
		return err
	}
	s.Notify.Notify(success, "")
	return nil
}

// Delete removes a todo.
func (s *TodoService) Delete(ctx context.Context, id string, force bool) error {
	if _, err := s.require(ctx); err != nil {
		return err
	}
	if err := s.confirm(force, "Delete todo %s?", id); err != nil {
		return err
	}
	if err := s.call(ctx, "Failed to delete todo", func(ctx context.Context) error {
		return s.API.DeleteTodo(ctx, id)
	}); err != nil {
		return err
	}
	s.Notify.Notify("Todo deleted", "")
	return nil
}

// ListHeadings prints todo headings.
func (s *TodoService) ListHeadings(ctx context.Context) error {
	if _, err := s.require(ctx); err != nil {
		return err
	}

	var headings []api.TodoHeading
	if err := s.call(ctx, "Failed to load todo headings", func(ctx context.Context) error {
		var err error
		headings, err = s.API.ListTodoHeadings(ctx)
		return err
	}); err != nil {
		return err
	}

	rows := make([][]string, 0, len(headings))
	for _, h := range headings {
		rows = append(rows, []string{h.ID, h.Name, h.Color})
	}
	return s.Out.List("Todo headings", headings, []string{"ID", "NAME", "COLOR"}, rows)
}

// AddHeading creates a todo heading. An empty color uses the default.
func (s *TodoService) AddHeading(ctx context.Context, name, color string) error {
	req := api.TodoHeadingRequest{Name: strings.TrimSpace(name), Color: strings.TrimSpace(color)}
	if req.Name == "" {
		return errors.New("heading name cannot be empty")
	}
	if _, err := s.require(ctx); err != nil {
		return err
	}
	if err := s.call(ctx, "Failed to add todo heading", func(ctx context.Context) error {
		_, err := s.API.CreateTodoHeading(ctx, req)
		return err
	}); err != nil {
		return err
	}
	s.Notify.Notify("Todo heading added", "")
	return nil
}

// EditHeading renames or recolors a todo heading.
func (s *TodoService) EditHeading(ctx context.Context, id, name, color string) error {
	if _, err := s.require(ctx); err != nil {
		return err
	}
	if err := s.call(ctx, "Failed to update todo heading", func(ctx context.Context) error {
		headings, err := s.API.ListTodoHeadings(ctx)
		if err != nil {
			return err
		}
		var cur *api.TodoHeading
		for i := range headings {
			if headings[i].ID == id {
				cur = &headings[i]
			}
		}
		if cur == nil {
			return &api.APIError{StatusCode: 404, Message: "Todo heading not found"}
		}
		req := api.TodoHeadingRequest{Name: cur.Name, Color: cur.Color}
		if v := strings.TrimSpace(name); v != "" {
			req.Name = v
		}
		if v := strings.TrimSpace(color); v != "" {
			req.Color = v
		}
		_, err = s.API.UpdateTodoHeading(ctx, id, req)
		return err
	}); err != nil {
		return err
	}
	s.Notify.Notify("Todo heading updated", "")
	return nil
}

// DeleteHeading removes a todo heading.
func (s *TodoService) DeleteHeading(ctx context.Context, id string, force bool) error {
	if _, err := s.require(ctx); err != nil {
		return err
	}
	if err := s.confirm(force, "Delete todo heading %s?", id); err != nil {
		return err
	}
	if err := s.call(ctx, "Failed to delete todo heading", func(ctx context.Context) error {
		return s.API.DeleteTodoHeading(ctx, id)
	}); err != nil {
		return err
	}
	s.Notify.Notify("Todo heading deleted", "")
	return nil
}
