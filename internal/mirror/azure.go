package mirror

import (
	"net/url"
	"os"
	"strings"
)

// azureTokenEnv names the environment variable carrying the current SAS
// query string for ECMWF's Azure mirror. Herbie's azure_token.py fetches
// this from a known endpoint and refreshes it periodically; we accept it
// as an operator-supplied credential instead of reimplementing the
// refresh service, since this engine has no background daemon to own
// the refresh loop outside of bulk "wait" mode (see SUPPLEMENTED
// FEATURES in SPEC_FULL.md).
const azureTokenEnv = "NWPFETCH_AZURE_SAS_TOKEN"

// SignAzureURL appends the configured SAS token as the query string of an
// Azure blob URL, replacing any query string already present. Sources
// that are not azure blobs are returned unchanged.
func SignAzureURL(rawURL string) string {
	if !strings.Contains(rawURL, ".blob.core.windows.net/") {
		return rawURL
	}
	token := os.Getenv(azureTokenEnv)
	if token == "" {
		return rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.RawQuery = strings.TrimPrefix(token, "?")
	return u.String()
}
