package zesty

import (
	"context"
	"fmt"
	"net/url"

	"gardencam/internal/core/domain"
	"gardencam/internal/core/ports"
)

// CreateItem creates a content item for modelZUID.
func (c *Client) CreateItem(ctx context.Context, modelZUID string, item ports.ItemPayload) (*domain.Record, error) {
	endpoint := fmt.Sprintf("%s/content/models/%s/items", c.endpoints.InstanceURL, url.PathEscape(modelZUID))

	var result struct {
		Data struct {
			ZUID string `json:"ZUID"`
		} `json:"data"`
	}
	if err := c.postJSON(ctx, "create item", endpoint, item, &result); err != nil {
		return nil, err
	}
	if result.Data.ZUID == "" {
		return nil, fmt.Errorf("zesty create item: missing ZUID in response")
	}

	return &domain.Record{ZUID: result.Data.ZUID, Version: 1}, nil
}

// PublishItem publishes version of itemZUID immediately, with no unpublish date.
func (c *Client) PublishItem(ctx context.Context, modelZUID, itemZUID string, version int) error {
	endpoint := fmt.Sprintf("%s/content/models/%s/items/%s/publishings",
		c.endpoints.InstanceURL, url.PathEscape(modelZUID), url.PathEscape(itemZUID))

	body := map[string]any{
		"version":     version,
		"publishAt":   "now",
		"unpublishAt": "never",
	}
	return c.postJSON(ctx, "publish item", endpoint, body, nil)
}
