package httpx

import (
	"context"
	"net/http"

	"github.com/nwpfetch/nwpfetch/pkg/log"
)

// existenceFloor guards against mirrors that serve a trivially empty
// placeholder (an HTML 200 for a missing key) instead of a 404 (§4.2).
const existenceFloor = 10

// Exists issues a HEAD request to url and reports whether it returned a
// 2xx status and, if Content-Length was advertised, that it exceeds the
// existence floor. No retries; any transport error is treated as "does
// not exist" (§4.2).
func (c *Client) Exists(ctx context.Context, url string, timeoutSeconds float64) bool {
	ctx, cancel := WithTimeout(ctx, timeoutSeconds)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		log.Debugf("probe: bad request for %s: %v", url, err)
		return false
	}

	resp, err := c.Do(req)
	if err != nil {
		log.Debugf("probe: %s unreachable: %v", url, err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false
	}
	if resp.ContentLength >= 0 && resp.ContentLength <= existenceFloor {
		return false
	}
	return true
}

// ContentLength returns the advertised size of url via HEAD, or -1 if
// unknown or the probe failed. The subset downloader does not call it:
// open-ended final ranges are always sent as "bytes=<start>-".
func (c *Client) ContentLength(ctx context.Context, url string, timeoutSeconds float64) int64 {
	ctx, cancel := WithTimeout(ctx, timeoutSeconds)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return -1
	}
	resp, err := c.Do(req)
	if err != nil {
		return -1
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return -1
	}
	return resp.ContentLength
}
