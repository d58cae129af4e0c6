package datasource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/vanderheijden86/sunburst/pkg/model"
)

// TokenHeader carries the API token on HTTP requests.
const TokenHeader = "x-auth-token"

// DefaultHTTPTimeout bounds a single HTTP fetch.
const DefaultHTTPTimeout = 30 * time.Second

// HTTPClient is used for HTTP sources. Tests may replace it.
var HTTPClient = &http.Client{Timeout: DefaultHTTPTimeout}

// maxBody bounds the response size read from an HTTP source.
const maxBody = 64 << 20

// FetchRecords requests the record list from an HTTP endpoint. The response
// body must be a JSON array of records.
func FetchRecords(ctx context.Context, src Source) ([]model.Record, error) {
	u, err := url.Parse(src.Location)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if src.Name != "" {
		q := u.Query()
		q.Set("name", src.Name)
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if src.Token != "" {
		req.Header.Set(TokenHeader, src.Token)
	}

	resp, err := HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", redact(src.Location), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("fetch %s: unexpected status %s", redact(src.Location), resp.Status)
	}
	return DecodeJSON(io.LimitReader(resp.Body, maxBody))
}
