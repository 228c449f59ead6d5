package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

var ErrNotFound = errors.New("not found")

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notes api: %d: %s", e.StatusCode, e.Detail)
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

type Client struct {
	baseURL string
	hc      *http.Client
}

func NewClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}

	return &Client{baseURL: strings.TrimRight(baseURL, "/"), hc: hc}
}

func (c *Client) Health(ctx context.Context) (Health, error) {
	var out Health
	err := c.do(ctx, http.MethodGet, "/", nil, &out)
	return out, err
}

func (c *Client) CreateNote(ctx context.Context, videoID string, timestamp float64, text string) (Note, error) {
	body, err := json.Marshal(CreateNoteRequest{VideoID: &videoID, Timestamp: &timestamp, NoteText: &text})
	if err != nil {
		return Note{}, fmt.Errorf("marshal create note: %v", err)
	}

	var out Note
	err = c.do(ctx, http.MethodPost, "/notes", bytes.NewReader(body), &out)
	return out, err
}

func (c *Client) ListNotes(ctx context.Context, videoID string) ([]Note, error) {
	var out []Note
	err := c.do(ctx, http.MethodGet, "/notes/"+url.PathEscape(videoID), nil, &out)
	return out, err
}

func (c *Client) SearchNotes(ctx context.Context, query string) ([]Note, error) {
	var out []Note
	err := c.do(ctx, http.MethodGet, "/notes/search/"+url.PathEscape(query), nil, &out)
	return out, err
}

func (c *Client) DeleteNote(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/notes/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *Client) UpdateNote(ctx context.Context, id int64, text string) (Note, error) {
	q := url.Values{"note_text": []string{text}}

	var out Note
	err := c.do(ctx, http.MethodPut, "/notes/"+strconv.FormatInt(id, 10)+"?"+q.Encode(), nil, &out)
	return out, err
}

func (c *Client) RecentVideos(ctx context.Context) ([]VideoSummary, error) {
	var out []VideoSummary
	err := c.do(ctx, http.MethodGet, "/videos/recent", nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr Error
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{StatusCode: resp.StatusCode, Detail: apiErr.Detail}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %v", method, path, err)
	}

	return nil
}
