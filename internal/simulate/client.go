package simulate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/okian/motorcast/internal/domain/forecast"
	"github.com/okian/motorcast/internal/domain/model"
)

var errBackpressure = errors.New("backpressure")

// client is a thin JSON client for the motorcast HTTP API.
type client struct {
	http    *http.Client
	baseURL string
}

func newClient(baseURL string, timeout time.Duration) *client {
	return &client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

type learnerBody struct {
	Name          string              `json:"name"`
	LearningStyle model.LearningStyle `json:"learning_style,omitempty"`
}

type ackBody struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

func (c *client) checkHealth(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/healthz", nil, nil, http.StatusOK)
	return err
}

func (c *client) putLearner(ctx context.Context, l *Learner) error {
	body := learnerBody{Name: l.Name, LearningStyle: l.LearningStyle}
	_, err := c.do(ctx, http.MethodPut, "/learners/"+url.PathEscape(l.ID), body, nil, http.StatusOK)
	return err
}

// postEvaluation returns true when the service reported a duplicate.
func (c *client) postEvaluation(ctx context.Context, learnerID string, rec model.EvaluationRecord) (bool, error) {
	var ack ackBody
	code, err := c.do(ctx, http.MethodPost, "/learners/"+url.PathEscape(learnerID)+"/evaluations",
		rec, &ack, http.StatusAccepted, http.StatusOK)
	if code == http.StatusTooManyRequests {
		return false, errBackpressure
	}
	if err != nil {
		return false, err
	}
	return ack.Duplicate, nil
}

func (c *client) getForecast(ctx context.Context, learnerID string) (forecast.Result, error) {
	var res forecast.Result
	_, err := c.do(ctx, http.MethodGet, "/learners/"+url.PathEscape(learnerID)+"/forecast", nil, &res, http.StatusOK)
	return res, err
}

// do sends a JSON request and decodes the response into out when the
// status is one of want.
func (c *client) do(ctx context.Context, method, path string, in, out any, want ...int) (int, error) {
	var body io.Reader = http.NoBody
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	for _, code := range want {
		if resp.StatusCode != code {
			continue
		}
		if out != nil {
			if err := json.Unmarshal(raw, out); err != nil {
				return resp.StatusCode, fmt.Errorf("decode response: %w", err)
			}
		}
		return resp.StatusCode, nil
	}
	return resp.StatusCode, fmt.Errorf("%w: %s %s: %d: %s", ErrUnexpectedCode, method, path, resp.StatusCode, bytes.TrimSpace(raw))
}
