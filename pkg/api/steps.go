package api

import (
	"context"
	"fmt"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/logger"
)

// ListSteps retrieves every step with its embedded daily data
func (c *Client) ListSteps(ctx context.Context) ([]Step, error) {
	logger.Debug("Listing steps")

	var steps []Step
	if err := c.get(ctx, "targetSteps", &steps); err != nil {
		return nil, fmt.Errorf("failed to list steps: %w", err)
	}
	return steps, nil
}

// GetStep retrieves one step
func (c *Client) GetStep(ctx context.Context, id string) (*Step, error) {
	logger.Debug("Fetching step", "step_id", id)

	var step Step
	if err := c.get(ctx, "targetSteps/"+id, &step); err != nil {
		return nil, fmt.Errorf("failed to fetch step: %w", err)
	}
	return &step, nil
}

// CreateStep creates a step
func (c *Client) CreateStep(ctx context.Context, req StepRequest) (*Step, error) {
	logger.Debug("Creating step", "title", req.Title, "type", req.Type)

	var step Step
	if err := c.post(ctx, "targetSteps", req, &step); err != nil {
		return nil, fmt.Errorf("failed to create step: %w", err)
	}
	return &step, nil
}

// UpdateStep edits a step. The type is sent back unchanged by callers.
func (c *Client) UpdateStep(ctx context.Context, id string, req StepRequest) (*Step, error) {
	logger.Debug("Updating step", "step_id", id)

	var step Step
	if err := c.put(ctx, "targetSteps/"+id, req, &step); err != nil {
		return nil, fmt.Errorf("failed to update step: %w", err)
	}
	return &step, nil
}

// UpdateStepStatus moves a step through its lifecycle
func (c *Client) UpdateStepStatus(ctx context.Context, id string, status StepStatus) error {
	logger.Debug("Updating step status", "step_id", id, "status", status)

	body := map[string]StepStatus{"status": status}
	if err := c.patch(ctx, "targetSteps/"+id+"/status", body); err != nil {
		return fmt.Errorf("failed to update step status: %w", err)
	}
	return nil
}

// RecordStepData records a step's value for a date
func (c *Client) RecordStepData(ctx context.Context, id string, req StepDataRequest) error {
	logger.Debug("Recording step data", "step_id", id, "date", req.Date, "count", req.Count)

	if err := c.post(ctx, "targetSteps/"+id+"/data", req, nil); err != nil {
		return fmt.Errorf("failed to record step data: %w", err)
	}
	return nil
}

// DeleteStep deletes a step
func (c *Client) DeleteStep(ctx context.Context, id string) error {
	logger.Debug("Deleting step", "step_id", id)

	if err := c.delete(ctx, "targetSteps/"+id); err != nil {
		return fmt.Errorf("failed to delete step: %w", err)
	}
	return nil
}
