package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
)

// Client posts to the GitHub REST API on behalf of the bridge account.
type Client struct {
	baseURL    *url.URL
	userAgent  string
	httpClient *http.Client
}

// NewClient creates a GitHub client authenticated with token. Relative URLs
// passed to its methods are resolved against baseURL.
func NewClient(baseURL, token, userAgent string) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid github base url: %w", err)
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	return &Client{
		baseURL:    u,
		userAgent:  userAgent,
		httpClient: oauth2.NewClient(context.Background(), src),
	}, nil
}

// AddComment posts body as a comment on the issue, pull request or commit
// whose API url is target.
func (c *Client) AddComment(ctx context.Context, target, body string) (*Comment, error) {
	var out Comment
	err := c.do(ctx, http.MethodPost, strings.TrimRight(target, "/")+"/comments", mediaTypeV3, map[string]string{"body": body}, &out)
	if err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	return &out, nil
}

// AddReaction reacts with content on the comment whose API url is target.
func (c *Client) AddReaction(ctx context.Context, target, content string) (*Reaction, error) {
	var out Reaction
	err := c.do(ctx, http.MethodPost, strings.TrimRight(target, "/")+"/reactions", mediaTypeReaction, map[string]string{"content": content}, &out)
	if err != nil {
		return nil, fmt.Errorf("add reaction: %w", err)
	}
	return &out, nil
}

// DeleteReaction removes a reaction by id.
func (c *Client) DeleteReaction(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("reactions/%d", id), mediaTypeReaction, nil, nil); err != nil {
		return fmt.Errorf("delete reaction %d: %w", id, err)
	}
	return nil
}

func (c *Client) resolve(ref string) (string, error) {
	u, err := url.Parse(strings.TrimPrefix(ref, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", ref, err)
	}
	return c.baseURL.ResolveReference(u).String(), nil
}

func (c *Client) do(ctx context.Context, method, ref, accept string, in, out any) error {
	target, err := c.resolve(ref)
	if err != nil {
		return err
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Accept", accept)
	httpReq.Header.Set("User-Agent", c.userAgent)
	if in != nil {
		httpReq.Header.Set("Content-Type", contentTypeJSON)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call github API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		raw, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(raw, apiErr); err != nil {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode github response: %w", err)
	}
	return nil
}
