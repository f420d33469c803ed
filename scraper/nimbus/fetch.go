package nimbus

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html/charset"
)

// Page is a fetched document before charset decoding.
type Page struct {
	URL         string
	Body        []byte
	ContentType string
}

// Reader returns the body converted to UTF-8. The encoding comes from the
// Content-Type header, a <meta> tag, or a byte sniff, in that order.
func (p *Page) Reader() (io.Reader, error) {
	r, err := charset.NewReader(bytes.NewReader(p.Body), p.ContentType)
	if err != nil {
		return nil, fmt.Errorf("nimbus: decode %s: %w", p.URL, err)
	}
	return r, nil
}

// Fetcher retrieves the bulletin page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)
}

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("nimbus: GET %s: unexpected status %d %s",
		e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// HTTPFetcher issues a single plain GET. Failures are not retried.
type HTTPFetcher struct {
	client *resty.Client
}

// NewHTTPFetcher returns a fetcher sending userAgent with every request.
func NewHTTPFetcher(userAgent string) *HTTPFetcher {
	client := resty.New().
		SetRetryCount(0).
		SetHeader("Accept", "text/html,application/xhtml+xml")
	if userAgent != "" {
		client.SetHeader("User-Agent", userAgent)
	}
	return &HTTPFetcher{client: client}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*Page, error) {
	res, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("nimbus: GET %s: %w", url, err)
	}
	if !res.IsSuccess() {
		return nil, &StatusError{URL: url, StatusCode: res.StatusCode()}
	}

	return &Page{
		URL:         url,
		Body:        res.Body(),
		ContentType: res.Header().Get("Content-Type"),
	}, nil
}
