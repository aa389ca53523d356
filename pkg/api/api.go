// Package api wraps the backend's REST resources, one file per resource.
package api

import (
	"context"

	"github.com/go-resty/resty/v2"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/client"
)

// Client issues typed calls against the backend.
type Client struct {
	http *client.Client
}

// New wraps an authenticated HTTP client.
func New(c *client.Client) *Client {
	return &Client{http: c}
}

func (c *Client) r(ctx context.Context) *resty.Request {
	if ctx == nil {
		ctx = context.Background()
	}
	return c.http.R().SetContext(ctx)
}

func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	return CheckResponse(c.r(ctx).SetResult(result).Get(path))
}

func (c *Client) post(ctx context.Context, path string, body, result interface{}) error {
	req := c.r(ctx).SetBody(body)
	if result != nil {
		req.SetResult(result)
	}
	return CheckResponse(req.Post(path))
}

func (c *Client) put(ctx context.Context, path string, body, result interface{}) error {
	req := c.r(ctx).SetBody(body)
	if result != nil {
		req.SetResult(result)
	}
	return CheckResponse(req.Put(path))
}

func (c *Client) patch(ctx context.Context, path string, body interface{}) error {
	return CheckResponse(c.r(ctx).SetBody(body).Patch(path))
}

func (c *Client) delete(ctx context.Context, path string) error {
	return CheckResponse(c.r(ctx).Delete(path))
}
