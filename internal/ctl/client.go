package ctl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"animd/pkg/types"
)

// Client is a small HTTP client for the animd API.
type Client struct {
	base string
	hc   *http.Client
}

// NewClient builds a client for the daemon at base, e.g. http://127.0.0.1:8089.
func NewClient(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) do(method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var apiErr types.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s (HTTP %d)", method, path, apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: HTTP %d", method, path, resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) Status() (types.StatusResponse, error) {
	var st types.StatusResponse
	err := c.do(http.MethodGet, "/status", nil, &st)
	return st, err
}

func (c *Client) Enqueue(req types.EnqueueRequest) (types.EnqueueResponse, error) {
	var resp types.EnqueueResponse
	err := c.do(http.MethodPost, "/animations", req, &resp)
	return resp, err
}

func (c *Client) PlanAppear(req types.PlanAppearRequest) (types.PlanResponse, error) {
	var resp types.PlanResponse
	err := c.do(http.MethodPost, "/plan/appear", req, &resp)
	return resp, err
}

func (c *Client) PlanDisappear(req types.PlanDisappearRequest) (types.PlanResponse, error) {
	var resp types.PlanResponse
	err := c.do(http.MethodPost, "/plan/disappear", req, &resp)
	return resp, err
}

func (c *Client) PlanZoom(req types.ZoomTransitionRequest) (types.PlanResponse, error) {
	var resp types.PlanResponse
	err := c.do(http.MethodPost, "/plan/zoom", req, &resp)
	return resp, err
}

func (c *Client) Hover(targetID string, entering bool) (types.EnqueueResponse, error) {
	var resp types.EnqueueResponse
	err := c.do(http.MethodPost, "/hover", types.HoverRequest{TargetID: targetID, Entering: entering}, &resp)
	return resp, err
}

func (c *Client) Click(targetID string) (types.EnqueueResponse, error) {
	var resp types.EnqueueResponse
	err := c.do(http.MethodPost, "/click", types.ClickRequest{TargetID: targetID}, &resp)
	return resp, err
}

func (c *Client) Cancel(id string) error {
	return c.do(http.MethodDelete, "/animations/"+id, nil, nil)
}

func (c *Client) ClearAll() error {
	return c.do(http.MethodPost, "/animations/clear", nil, nil)
}

func (c *Client) SetCinematic(enabled bool) (types.DisplayMode, error) {
	var mode types.DisplayMode
	err := c.do(http.MethodPost, "/mode/cinematic", types.ModeRequest{Enabled: enabled}, &mode)
	return mode, err
}
