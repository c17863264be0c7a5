package ipc

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var ErrPingFail = errors.New("ping failed")

// Client is a thin HTTP client for a Server's control-plane endpoints.
type Client struct {
	baseURL string
	httpC   http.Client
}

// NewClient returns a Client talking to a Server listening at addr
// (e.g. "127.0.0.1:9119").
func NewClient(addr string) *Client {
	return &Client{baseURL: "http://" + addr}
}

func (c *Client) Ping() error {
	if err := c.post(PingPath); err != nil {
		return ErrPingFail
	}
	return nil
}

func (c *Client) Play() error      { return c.post(PlayPath) }
func (c *Client) Pause() error     { return c.post(PausePath) }
func (c *Client) PlayPause() error { return c.post(PlayPausePath) }

func (c *Client) SeekTo(seconds float64) error { return c.post(SeekToSecondsPath(seconds)) }
func (c *Client) SeekBy(seconds float64) error { return c.post(SeekBySecondsPath(seconds)) }
func (c *Client) StepFrame(dir int) error      { return c.post(StepFramePath(dir)) }

func (c *Client) CurrentChapter() (int, error) {
	resp, err := c.httpC.Get(c.baseURL + ChapterPath)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	var body struct {
		Chapter int `json:"chapter"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, err
	}
	return body.Chapter, nil
}

func (c *Client) post(path string) error {
	resp, err := c.httpC.Post(c.baseURL+path, "application/json", nil)
	if err != nil {
		return fmt.Errorf("ipc: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		var r Response
		json.NewDecoder(resp.Body).Decode(&r)
		return errors.New(r.Error)
	}
	return nil
}
