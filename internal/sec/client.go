// Package sec implements the EDGAR collaborators: ticker resolution,
// filing listing, and raw document retrieval.
package sec

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"anyfactor/internal/config"
	"anyfactor/internal/domain"
)

// Client talks to the SEC EDGAR endpoints. It implements
// port.TickerResolver, port.FilingSource, and port.DocumentFetcher.
type Client struct {
	http           *resty.Client
	tickersURL     string
	submissionsURL string
	archivesURL    string
}

// NewClient creates an EDGAR client from the SEC config.
func NewClient(cfg *config.SECConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	http := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", cfg.UserAgent)
	return &Client{
		http:           http,
		tickersURL:     cfg.TickersURL,
		submissionsURL: strings.TrimSuffix(cfg.SubmissionsURL, "/"),
		archivesURL:    strings.TrimSuffix(cfg.ArchivesURL, "/"),
	}
}

// tickerEntry models one row of the SEC company tickers listing.
type tickerEntry struct {
	CIK    int64  `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// ResolveTicker maps a ticker symbol to its zero-padded 10-digit CIK.
func (c *Client) ResolveTicker(ctx context.Context, ticker string) (string, error) {
	var entries map[string]tickerEntry
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&entries).
		Get(c.tickersURL)
	if err != nil {
		return "", fmt.Errorf("fetching company tickers: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("fetching company tickers: status %d", resp.StatusCode())
	}

	for _, entry := range entries {
		if strings.EqualFold(entry.Ticker, ticker) {
			return fmt.Sprintf("%010d", entry.CIK), nil
		}
	}
	return "", domain.ErrTickerNotFound
}

// submissionsResponse models the EDGAR submissions JSON. The recent block
// is column-oriented: parallel arrays indexed by filing.
type submissionsResponse struct {
	Filings struct {
		Recent struct {
			AccessionNumber []string `json:"accessionNumber"`
			Form            []string `json:"form"`
			PrimaryDocument []string `json:"primaryDocument"`
			FilingDate      []string `json:"filingDate"`
		} `json:"recent"`
	} `json:"filings"`
}

// ListFilings returns up to limit recent 10-K/10-Q filings for a CIK,
// most recent first, with their primary document URLs.
func (c *Client) ListFilings(ctx context.Context, cik string, limit int) ([]domain.Filing, error) {
	var subs submissionsResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&subs).
		Get(fmt.Sprintf("%s/CIK%s.json", c.submissionsURL, cik))
	if err != nil {
		return nil, fmt.Errorf("fetching submissions for CIK %s: %w", cik, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetching submissions for CIK %s: status %d", cik, resp.StatusCode())
	}

	cikNum, err := strconv.ParseInt(cik, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid CIK %q: %w", cik, err)
	}

	recent := subs.Filings.Recent
	var filings []domain.Filing
	for i := range recent.AccessionNumber {
		if i >= len(recent.Form) || i >= len(recent.PrimaryDocument) || i >= len(recent.FilingDate) {
			break
		}
		form := domain.FormType(recent.Form[i])
		if !domain.AllowedFormTypes[form] || recent.PrimaryDocument[i] == "" {
			continue
		}
		accNo := strings.ReplaceAll(recent.AccessionNumber[i], "-", "")
		filings = append(filings, domain.Filing{
			URL:        fmt.Sprintf("%s/%d/%s/%s", c.archivesURL, cikNum, accNo, recent.PrimaryDocument[i]),
			FormType:   form,
			FilingDate: recent.FilingDate[i],
		})
		if len(filings) >= limit {
			break
		}
	}
	return filings, nil
}

// FetchDocument retrieves the raw document behind a filing URL.
func (c *Client) FetchDocument(ctx context.Context, url string) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("fetching %s: status %d", url, resp.StatusCode())
	}
	return resp.String(), nil
}
