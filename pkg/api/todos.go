package api

import (
	"context"
	"fmt"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/logger"
)

// ListTodos retrieves every todo
func (c *Client) ListTodos(ctx context.Context) ([]Todo, error) {
	logger.Debug("Listing todos")

	var todos []Todo
	if err := c.get(ctx, "todos", &todos); err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// GetTodo retrieves one todo
func (c *Client) GetTodo(ctx context.Context, id string) (*Todo, error) {
	var todo Todo
	if err := c.get(ctx, "todos/"+id, &todo); err != nil {
		return nil, fmt.Errorf("failed to fetch todo: %w", err)
	}
	return &todo, nil
}

// CreateTodo creates a todo
func (c *Client) CreateTodo(ctx context.Context, req TodoRequest) (*Todo, error) {
	logger.Debug("Creating todo", "title", req.Title)

	var todo Todo
	if err := c.post(ctx, "todos", req, &todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	return &todo, nil
}

// UpdateTodo edits a todo
func (c *Client) UpdateTodo(ctx context.Context, id string, req TodoRequest) (*Todo, error) {
	logger.Debug("Updating todo", "todo_id", id)

	var todo Todo
	if err := c.put(ctx, "todos/"+id, req, &todo); err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}
	return &todo, nil
}

// DeleteTodo deletes a todo
func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	logger.Debug("Deleting todo", "todo_id", id)

	if err := c.delete(ctx, "todos/"+id); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}
