// Package netdemux is a demuxer collaborator for a remote stream, opened
// over HTTP with retry/backoff the same way
// backend/player/dlna/dlnaplayer.go retries a DLNA seek: a small fixed
// attempt count with exponential backoff between tries. It does not decode;
// it hands raw bytes to whatever decoder the embedder pairs it with, and
// reports network/cache status to the cache-pause controller.
package netdemux

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/dweymouth/playcore/media"
)

const (
	maxOpenRetries        = 4
	openRetryInitialDelay = 300 * time.Millisecond
	openRetryMaxDelay     = 3 * time.Second
)

var ErrNotSeekable = errors.New("netdemux: server does not support byte ranges")

var _ media.Demuxer = (*Source)(nil)

// Source streams a remote file over HTTP.
type Source struct {
	client  *retryablehttp.Client
	url     string
	resp    *http.Response
	size    int64 // -1 if unknown
	pos     int64
	rangeOK bool

	underrun bool
}

// Open connects to url, retrying the initial connection up to
// maxOpenRetries times with exponential backoff between
// openRetryInitialDelay and openRetryMaxDelay.
func Open(ctx context.Context, url string) (*Source, error) {
	client := retryablehttp.NewClient()
	client.RetryMax = maxOpenRetries
	client.RetryWaitMin = openRetryInitialDelay
	client.RetryWaitMax = openRetryMaxDelay
	client.Logger = nil

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("netdemux: opening %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		resp.Body.Close()
		return nil, fmt.Errorf("netdemux: unexpected status %s", resp.Status)
	}

	return &Source{
		client:  client,
		url:     url,
		resp:    resp,
		size:    resp.ContentLength,
		rangeOK: resp.Header.Get("Accept-Ranges") == "bytes",
	}, nil
}

// Close releases the underlying connection.
func (s *Source) Close() error {
	if s.resp != nil {
		return s.resp.Body.Close()
	}
	return nil
}

// Read pulls bytes from the live stream. A decoder reads from a Source
// directly; this also updates the position/underrun bookkeeping
// ReaderState/CacheInfo report.
func (s *Source) Read(p []byte) (int, error) {
	n, err := s.resp.Body.Read(p)
	s.pos += int64(n)
	s.underrun = err == io.EOF && s.size > 0 && s.pos < s.size
	return n, err
}

func (s *Source) Duration() float64      { return media.NOPTS }
func (s *Source) Seekable() bool         { return s.rangeOK }
func (s *Source) TsResetsPossible() bool { return true }
func (s *Source) IsNetwork() bool        { return true }
func (s *Source) Filepos() int64         { return s.pos }

// Seek reopens the connection with a byte-range request computed from pts
// as a fraction of the known content length. Duration is unknown for a raw
// network stream (see Duration), so only factor-based seeks are supported;
// an absolute-time seek request always fails, the same way Seekable reports
// false when the server doesn't advertise byte-range support.
func (s *Source) Seek(pts float64, flags media.DemuxFlags) bool {
	if !s.rangeOK || s.size <= 0 || flags&media.SeekFactorFlag == 0 {
		return false
	}
	offset := int64(pts * float64(s.size))
	if offset < 0 {
		offset = 0
	}
	if offset > s.size {
		offset = s.size
	}

	req, err := retryablehttp.NewRequest(http.MethodGet, s.url, nil)
	if err != nil {
		return false
	}
	req.Header.Set("Range", fmt.Sprintf("bytes=%d-", offset))
	resp, err := s.client.Do(req)
	if err != nil || resp.StatusCode != http.StatusPartialContent {
		if resp != nil {
			resp.Body.Close()
		}
		return false
	}
	s.resp.Body.Close()
	s.resp = resp
	s.pos = offset
	s.underrun = false
	return true
}

func (s *Source) ReaderState() media.ReaderState {
	return media.ReaderState{Underrun: s.underrun, TsDuration: media.NOPTS}
}

func (s *Source) CacheInfo() media.CacheInfo {
	return media.CacheInfo{Idle: !s.underrun, Size: s.pos}
}

func (s *Source) StreamSize() (int64, bool) {
	if s.size <= 0 {
		return 0, false
	}
	return s.size, true
}
