package asana

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
	"golang.org/x/time/rate"
)

// Client is the HTTP wrapper for the Asana REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithRateLimit throttles outbound requests to perSec with a burst of the
// same size. perSec <= 0 disables throttling.
func WithRateLimit(perSec float64) Option {
	return func(c *Client) {
		if perSec <= 0 {
			c.limiter = nil
			return
		}
		burst := int(perSec)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSec), burst)
	}
}

// NewClient creates a new Asana client authenticated with a personal access
// token sent as a Bearer header.
func NewClient(baseURL, accessToken string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: oauth2.NewClient(context.Background(), src),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddComment posts htmlText as a comment story on the task.
func (c *Client) AddComment(ctx context.Context, taskGID, htmlText string) (*Story, error) {
	var out envelope[Story]
	err := c.post(ctx, fmt.Sprintf("/tasks/%s/stories", url.PathEscape(taskGID)),
		envelope[createStoryRequest]{Data: createStoryRequest{HTMLText: htmlText}}, &out)
	if err != nil {
		return nil, fmt.Errorf("add comment to task %s: %w", taskGID, err)
	}
	return &out.Data, nil
}

// AddProject adds the task to a project, optionally into a section of it.
func (c *Client) AddProject(ctx context.Context, taskGID string, req AddProjectRequest) error {
	err := c.post(ctx, fmt.Sprintf("/tasks/%s/addProject", url.PathEscape(taskGID)),
		envelope[AddProjectRequest]{Data: req}, nil)
	if err != nil {
		return fmt.Errorf("add task %s to project %s: %w", taskGID, req.Project, err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentTypeJSON)
	httpReq.Header.Set("Accept", contentTypeJSON)
	httpReq.Header.Set(enableHeader, enableValue)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call asana API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode asana response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, apiErr); err != nil || len(apiErr.Errors) == 0 {
		if msg := strings.TrimSpace(string(raw)); msg != "" {
			apiErr.Errors = []ErrorDetail{{Message: msg}}
		}
	}
	return apiErr
}
