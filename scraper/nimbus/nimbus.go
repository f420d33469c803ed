package nimbus

import (
	"context"
	"errors"
	"fmt"

	"zero-termico/config"
	"zero-termico/models"
	"zero-termico/utils"
)

// ErrNoData means the page was fetched but held no freezing-level readings.
var ErrNoData = errors.New("nimbus: no freezing level readings found")

// Scraper fetches the Piedmont bulletin and extracts freezing-level readings.
type Scraper struct {
	url     string
	fetcher Fetcher
	logger  *utils.Logger
}

// New creates a Scraper using the fetcher selected by cfg.FetchMode.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	var fetcher Fetcher
	switch cfg.FetchMode {
	case config.FetchModeBrowser:
		fetcher = NewBrowserFetcher(cfg.ChromeBin, cfg.UserAgent, cfg.BrowserTimeout)
	default:
		if cfg.FetchMode != config.FetchModeHTTP {
			logger.Warn("[nimbus] Unknown fetch mode %q, using %s", cfg.FetchMode, config.FetchModeHTTP)
		}
		fetcher = NewHTTPFetcher(cfg.UserAgent)
	}
	return NewWithFetcher(cfg.SourceURL, fetcher, logger)
}

// NewWithFetcher creates a Scraper around an explicit Fetcher.
func NewWithFetcher(url string, fetcher Fetcher, logger *utils.Logger) *Scraper {
	return &Scraper{url: url, fetcher: fetcher, logger: logger}
}

// Scrape performs one fetch and returns the readings in document order,
// not yet deduplicated. It returns ErrNoData when nothing matched.
func (s *Scraper) Scrape(ctx context.Context) ([]models.Observation, error) {
	s.logger.Info("[nimbus] Fetching %s", s.url)

	page, err := s.fetcher.Fetch(ctx, s.url)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("[nimbus] Received %d bytes (%s)", len(page.Body), page.ContentType)

	body, err := page.Reader()
	if err != nil {
		return nil, err
	}
	blocks, err := TextBlocks(body)
	if err != nil {
		return nil, fmt.Errorf("nimbus: parse %s: %w", s.url, err)
	}
	s.logger.Debug("[nimbus] Scanning %d paragraphs", len(blocks))

	observations := Extract(blocks)
	for _, o := range observations {
		s.logger.Debug("[nimbus] %s → %d m", o.Date, o.Level)
	}
	if len(observations) == 0 {
		return nil, ErrNoData
	}

	s.logger.Info("[nimbus] Extracted %d readings", len(observations))
	return observations, nil
}
