package ics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"smartmirror/internal/log"
)

// fetchTimeout bounds a single calendar feed download.
const fetchTimeout = 10 * time.Second

// maxFeedBytes caps the accepted feed size; anything larger is treated as
// a malformed source.
const maxFeedBytes = 8 << 20

var defaultClient = &http.Client{Timeout: fetchTimeout}

// Fetch downloads a single ICS feed. The URL is redacted in logs because
// calendar subscription URLs routinely embed private tokens.
func Fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, errors.New("ics: feed URL is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("ics: build request: %w", err)
	}

	log.Debug("ics fetch start", "url", redactURL(url))

	resp, err := defaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ics: fetch %s: %w", redactURL(url), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ics: fetch %s: unexpected status %s", redactURL(url), resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes+1))
	if err != nil {
		return nil, fmt.Errorf("ics: read body: %w", err)
	}
	if len(body) > maxFeedBytes {
		return nil, fmt.Errorf("ics: feed exceeds %d bytes", maxFeedBytes)
	}

	log.Debug("ics fetch done", "url", redactURL(url), "bytes", len(body))
	return body, nil
}

// redactURL hides everything past the host so tokens in paths or query
// strings never reach the logs.
func redactURL(u string) string {
	const redactedSuffix = "/...(redacted)"

	i := -1
	for idx := 0; idx+2 < len(u); idx++ {
		if u[idx:idx+3] == "://" {
			i = idx + 3
			break
		}
	}
	if i == -1 {
		return "ics://...(redacted)"
	}

	j := i
	for j < len(u) && u[j] != '/' {
		j++
	}
	return u[:j] + redactedSuffix
}
