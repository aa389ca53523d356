package api

import (
	"context"
	"fmt"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/logger"
)

// GetReport retrieves a step's data for the given period
func (c *Client) GetReport(ctx context.Context, stepID string, period Period) (*Report, error) {
	logger.Debug("Fetching report", "step_id", stepID, "period", period)

	var report Report
	path := fmt.Sprintf("/reports/targetStep/%s/%s", stepID, period)
	if err := c.get(ctx, path, &report); err != nil {
		return nil, fmt.Errorf("failed to fetch report: %w", err)
	}
	return &report, nil
}
