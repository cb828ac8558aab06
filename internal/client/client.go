// Package client talks to the essay server the way the editor page does.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"essaydesk/internal/types"
)

// Client posts essays to a server's correction and save endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 2 * time.Minute}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Correct submits the essay form and returns the original and corrected
// text.
func (c *Client) Correct(ctx context.Context, text string) (types.CorrectionResponse, error) {
	var out types.CorrectionResponse
	form := url.Values{"text": {text}}
	if err := c.postForm(ctx, "/", form, &out); err != nil {
		return types.CorrectionResponse{}, err
	}
	return out, nil
}

// Save posts the essay and its stats and returns the server's message. Any
// non-200 status or a body without a message is an error.
func (c *Client) Save(ctx context.Context, text string, stats types.Stats) (string, error) {
	form := url.Values{
		"text":           {text},
		"wordCount":      {strconv.Itoa(stats.WordCount)},
		"paragraphCount": {strconv.Itoa(stats.ParagraphCount)},
		"backspaceCount": {strconv.Itoa(stats.BackspaceCount)},
	}
	var out types.SaveResponse
	if err := c.postForm(ctx, "/save", form, &out); err != nil {
		return "", err
	}
	if out.Message == "" {
		return "", errors.New("save response has no message")
	}
	return out.Message, nil
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("POST %s: %s", path, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("POST %s: decode response: %w", path, err)
	}
	return nil
}
