// Package mastodon posts plain-text statuses to a Mastodon-compatible server
// using a static access token.
package mastodon

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/GrantCuster/extra-grantcuster-com/config"
	"github.com/GrantCuster/extra-grantcuster-com/publish"
)

type Client struct {
	server      string
	accessToken string
	httpClient  *http.Client
}

func New(cfg *config.Mastodon) *Client {
	return &Client{
		server:      strings.TrimSuffix(cfg.Server, "/"),
		accessToken: cfg.AccessToken,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Name() string {
	return "mastodon"
}

// Publish submits the post text as a public status. Link previews are the
// server's job here, so any embed on the post is ignored.
func (c *Client) Publish(ctx context.Context, post publish.OutboundPost) error {
	form := url.Values{}
	form.Set("status", post.Text)
	form.Set("visibility", "public")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.server+"/api/v1/statuses", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %v", publish.ErrPlatformPost, err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", publish.ErrPlatformPost, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: status %d", publish.ErrPlatformAuth, res.StatusCode)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		payload, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return fmt.Errorf("%w: status %d: %s", publish.ErrPlatformPost, res.StatusCode, payload)
	}

	return nil
}
