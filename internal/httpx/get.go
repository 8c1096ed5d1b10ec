package httpx

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/nwpfetch/nwpfetch/internal/coreerr"
)

// RangeHeader renders a "bytes=start-end" header value; end < 0 means
// open-ended ("to end of file", §4.6 step 4 / §9).
func RangeHeader(start, end int64) string {
	if end < 0 {
		return fmt.Sprintf("bytes=%d-", start)
	}
	return fmt.Sprintf("bytes=%d-%d", start, end)
}

// GetRange issues a ranged GET for url and writes the response body to w.
// A non-206 response (or a transport error) is reported as
// RangeUnsupported / IOFailed respectively, per §4.6 step 4 and §7.
func (c *Client) GetRange(ctx context.Context, url string, start, end int64, w io.Writer, timeoutSeconds float64, id coreerr.Identity) (int64, error) {
	ctx, cancel := WithTimeout(ctx, timeoutSeconds)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, coreerr.New(coreerr.KindIOFailed, id, err)
	}
	req.Header.Set("Range", RangeHeader(start, end))

	resp, err := c.Do(req)
	if err != nil {
		return 0, coreerr.New(coreerr.KindIOFailed, id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusPartialContent {
		return 0, coreerr.New(coreerr.KindRangeUnsupported, id,
			fmt.Errorf("%s: expected 206, got %s", url, resp.Status))
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, coreerr.New(coreerr.KindIOFailed, id, err)
	}
	return n, nil
}

// GetFull streams the full body of url to w, for the full-file fallback
// path (§4.6 step 6).
func (c *Client) GetFull(ctx context.Context, url string, w io.Writer, timeoutSeconds float64, id coreerr.Identity) (int64, error) {
	ctx, cancel := WithTimeout(ctx, timeoutSeconds)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, coreerr.New(coreerr.KindIOFailed, id, err)
	}
	resp, err := c.Do(req)
	if err != nil {
		return 0, coreerr.New(coreerr.KindIOFailed, id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, coreerr.New(coreerr.KindUnresolvable, id,
			fmt.Errorf("%s: %s", url, resp.Status))
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, coreerr.New(coreerr.KindIOFailed, id, err)
	}
	return n, nil
}
