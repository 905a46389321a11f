package loadgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okian/admitscore/internal/domain/model"
)

type submitRequest struct {
	SubmissionID  string          `json:"submission_id"`
	Candidate     model.Candidate `json:"candidate"`
	UniversityIDs []string        `json:"university_ids,omitempty"`
}

type receipt struct {
	Status       string `json:"status"`
	SubmissionID string `json:"submission_id"`
	Duplicate    bool   `json:"duplicate"`
	Universities int    `json:"universities"`
}

type submissionResults struct {
	Results []json.RawMessage `json:"results"`
}

type client struct {
	http    *http.Client
	baseURL string
}

func newClient(baseURL string, timeout time.Duration) *client {
	return &client{http: &http.Client{Timeout: timeout}, baseURL: baseURL}
}

func (c *client) do(ctx context.Context, method, path string, body, out any) (int, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshal request: %w", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < http.StatusBadRequest {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	return resp.StatusCode, nil
}

func (c *client) health(ctx context.Context) error {
	status, err := c.do(ctx, http.MethodGet, "/healthz", nil, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("health check returned %d", status)
	}
	return nil
}

func (c *client) submit(ctx context.Context, req submitRequest) (receipt, int, error) {
	var rc receipt
	status, err := c.do(ctx, http.MethodPost, "/v1/submissions", req, &rc)
	return rc, status, err
}

// results returns the number of stored evaluations, 0 while still pending.
func (c *client) results(ctx context.Context, submissionID string) (int, error) {
	var out submissionResults
	status, err := c.do(ctx, http.MethodGet, "/v1/submissions/"+submissionID, nil, &out)
	if err != nil {
		return 0, err
	}
	if status == http.StatusNotFound {
		return 0, nil
	}
	if status != http.StatusOK {
		return 0, fmt.Errorf("results for %s returned %d", submissionID, status)
	}
	return len(out.Results), nil
}
