// Package api implements the HTTP transport and the per-resource clients
// for the techboard API.
//
// The transport is a single JSON client over a base path. Resource clients
// are pure request shaping: no caching, no retries, no state. Failures are
// logged once here and returned unchanged so callers can still inspect them.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func New(baseURL string, timeout time.Duration, log zerolog.Logger) (*Client, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
			// Compression is negotiated explicitly; see decodeBody.
			Transport: &http.Transport{DisableCompression: true},
		},
		log: log,
	}, nil
}

// Posts returns the post resource client.
func (c *Client) Posts() Posts { return Posts{c} }

// Categories returns the category resource client.
func (c *Client) Categories() Categories { return Categories{c} }

// Tags returns the tag resource client.
func (c *Client) Tags() Tags { return Tags{c} }

// Reviews returns the review resource client.
func (c *Client) Reviews() Reviews { return Reviews{c} }

// Comments returns the comment resource client.
func (c *Client) Comments() Comments { return Comments{c} }

// Do issues one request and decodes the JSON response into out (when out is
// non-nil). A non-2xx status becomes an *APIError; a transport failure becomes
// a *NetworkError. Both are logged before being returned.
func (c *Client) Do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	op := method + " " + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body for %s: %w", op, err)
		}
		reqBody = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", acceptEncoding)
	req.Header.Set("X-Request-Id", uuid.New().String())

	resp, err := c.http.Do(req)
	if err != nil {
		netErr := &NetworkError{Op: op, Err: err}
		c.log.Error().Err(err).Str("op", op).Msg("No response received")
		return netErr
	}
	defer resp.Body.Close()

	data, err := decodeBody(resp)
	if err != nil {
		netErr := &NetworkError{Op: op, Err: err}
		c.log.Error().Err(err).Str("op", op).Msg("Failed reading response body")
		return netErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := parseError(resp.StatusCode, data)
		c.log.Error().
			Int("status", apiErr.Status).
			Str("op", op).
			Str("message", apiErr.Message).
			Msg("API error")
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response for %s: %w", op, err)
	}
	return nil
}

func parseError(status int, data []byte) *APIError {
	var body struct {
		Status    int      `json:"status"`
		Message   string   `json:"message"`
		Errors    []string `json:"errors"`
		Timestamp string   `json:"timestamp"`
	}
	// A non-JSON error body still yields a usable APIError.
	_ = json.Unmarshal(data, &body)

	apiErr := &APIError{
		Status:    status,
		Message:   body.Message,
		Errors:    body.Errors,
		Timestamp: body.Timestamp,
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
