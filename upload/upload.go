// Package upload posts colour analyses to a collector service.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/setanarut/huescore"
	"golang.org/x/oauth2"
)

var (
	// ErrNoToken is returned by NewClient without a bearer token.
	ErrNoToken = errors.New("upload token is empty")

	// ErrRejected is wrapped when the service refuses an upload.
	ErrRejected = errors.New("upload rejected")
)

// Payload is the JSON body accepted by the collector's /upload endpoint.
type Payload struct {
	ImageID  string          `json:"image_id"`
	ImageURL string          `json:"image_url"`
	Colors   huescore.Scores `json:"colors"`
}

// Response is the collector's reply. OK is true for every accepted upload,
// including replies that omit the field.
type Response struct {
	OK      bool   `json:"ok"`
	ImageID string `json:"image_id,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client authenticating every request with token as
// a bearer credential.
func NewClient(ctx context.Context, baseURL, token string, timeout time.Duration) (*Client, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	if baseURL == "" {
		return nil, errors.New("upload base URL is empty")
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	hc := oauth2.NewClient(ctx, ts)
	hc.Timeout = timeout
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}, nil
}

// Upload sends one analysis. A non-2xx status or an explicit "ok": false
// is an error wrapping ErrRejected.
func (c *Client) Upload(ctx context.Context, p Payload) (Response, error) {
	if p.ImageID == "" || len(p.Colors) == 0 {
		return Response{}, fmt.Errorf("%w: image_id and colors are required", ErrRejected)
	}
	body, err := json.Marshal(p)
	if err != nil {
		return Response{}, fmt.Errorf("encode upload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("upload %s: %w", p.ImageID, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("upload %s: %w", p.ImageID, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Response{}, fmt.Errorf("upload %s: read response: %w", p.ImageID, err)
	}
	var out Response
	var status struct {
		OK *bool `json:"ok"`
	}
	decodeErr := json.Unmarshal(raw, &out)
	if decodeErr == nil {
		decodeErr = json.Unmarshal(raw, &status)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := out.Error
		if decodeErr != nil || msg == "" {
			msg = strings.TrimSpace(string(raw))
		}
		return out, fmt.Errorf("upload %s: %w: %s: %s", p.ImageID, ErrRejected, resp.Status, msg)
	}
	if decodeErr != nil {
		return Response{}, fmt.Errorf("upload %s: decode response: %w", p.ImageID, decodeErr)
	}
	if status.OK != nil && !*status.OK {
		return out, fmt.Errorf("upload %s: %w: %s", p.ImageID, ErrRejected, out.Error)
	}
	out.OK = true
	return out, nil
}
