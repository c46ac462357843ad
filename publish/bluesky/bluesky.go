// Package bluesky posts to an AT Protocol service. The trust model is a
// session login with identifier and app password; by default every dispatch
// logs in fresh, optionally the session is cached.
package bluesky

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/GrantCuster/extra-grantcuster-com/config"
	"github.com/GrantCuster/extra-grantcuster-com/publish"
	"github.com/GrantCuster/extra-grantcuster-com/publish/richtext"
)

type session struct {
	AccessJwt string `json:"accessJwt"`
	Did       string `json:"did"`
}

type Client struct {
	service      string
	identifier   string
	password     string
	reuseSession bool
	httpClient   *http.Client
	resolver     *publish.SourceResolver

	mu     sync.Mutex
	cached *session
}

func New(cfg *config.Bluesky, resolver *publish.SourceResolver) *Client {
	return &Client{
		service:      cfg.Service,
		identifier:   cfg.Identifier,
		password:     cfg.Password,
		reuseSession: cfg.ReuseSession,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		resolver:     resolver,
	}
}

func (c *Client) Name() string {
	return "bluesky"
}

// Publish runs the dispatch state machine: authenticate, resolve source
// bytes, re-upload as a platform blob, compose, submit. First failure aborts
// the whole dispatch.
func (c *Client) Publish(ctx context.Context, post publish.OutboundPost) error {
	sess, err := c.login(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", publish.ErrPlatformAuth, err)
	}

	record := map[string]any{
		"$type":     "app.bsky.feed.post",
		"text":      post.Text,
		"createdAt": time.Now().UTC().Format(time.RFC3339),
	}

	facets := richtext.Detect(post.Text, func(handle string) (string, error) {
		return c.resolveHandle(ctx, handle)
	})
	if len(facets) > 0 {
		record["facets"] = facets
	}

	if post.Embed != nil {
		thumb, err := c.resolver.Resolve(ctx, post.Embed.ThumbURL)
		if err != nil {
			return err
		}

		blob, err := c.uploadBlob(ctx, sess, thumb, "image/jpeg")
		if err != nil {
			return fmt.Errorf("%w: upload blob: %v", publish.ErrPlatformPost, err)
		}

		record["embed"] = map[string]any{
			"$type": "app.bsky.embed.external",
			"external": map[string]any{
				"uri":         post.Embed.URL,
				"title":       post.Embed.Title,
				"description": post.Embed.Description,
				"thumb":       blob,
			},
		}
	}

	body := map[string]any{
		"repo":       sess.Did,
		"collection": "app.bsky.feed.post",
		"record":     record,
	}

	if err := c.xrpcPost(ctx, sess.AccessJwt, "com.atproto.repo.createRecord", "application/json", jsonBody(body), nil); err != nil {
		return fmt.Errorf("%w: create record: %v", publish.ErrPlatformPost, err)
	}

	return nil
}

func (c *Client) login(ctx context.Context) (*session, error) {
	if c.reuseSession {
		c.mu.Lock()
		cached := c.cached
		c.mu.Unlock()
		if cached != nil {
			return cached, nil
		}
	}

	body := map[string]string{
		"identifier": c.identifier,
		"password":   c.password,
	}

	var sess session
	if err := c.xrpcPost(ctx, "", "com.atproto.server.createSession", "application/json", jsonBody(body), &sess); err != nil {
		return nil, err
	}

	if c.reuseSession {
		c.mu.Lock()
		c.cached = &sess
		c.mu.Unlock()
	}

	return &sess, nil
}

// uploadBlob pushes raw bytes into the platform's blob namespace and returns
// the opaque blob reference for embedding.
func (c *Client) uploadBlob(ctx context.Context, sess *session, data []byte, contentType string) (json.RawMessage, error) {
	var out struct {
		Blob json.RawMessage `json:"blob"`
	}

	if err := c.xrpcPost(ctx, sess.AccessJwt, "com.atproto.repo.uploadBlob", contentType, bytes.NewReader(data), &out); err != nil {
		return nil, err
	}

	if len(out.Blob) == 0 {
		return nil, fmt.Errorf("platform returned no blob reference")
	}

	return out.Blob, nil
}

func (c *Client) resolveHandle(ctx context.Context, handle string) (string, error) {
	endpoint := fmt.Sprintf("%s/xrpc/com.atproto.identity.resolveHandle?handle=%s", c.service, url.QueryEscape(handle))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("resolveHandle returned status %d", res.StatusCode)
	}

	var out struct {
		Did string `json:"did"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", err
	}

	return out.Did, nil
}

func (c *Client) xrpcPost(ctx context.Context, token string, method string, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.service+"/xrpc/"+method, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		payload, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return fmt.Errorf("%s returned status %d: %s", method, res.StatusCode, payload)
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(res.Body).Decode(out)
}

func jsonBody(v any) io.Reader {
	data, _ := json.Marshal(v)
	return bytes.NewReader(data)
}
