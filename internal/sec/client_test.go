package sec_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anyfactor/internal/config"
	"anyfactor/internal/domain"
	"anyfactor/internal/sec"
)

const tickersJSON = `{
	"0": {"cik_str": 320193, "ticker": "AAPL", "title": "Apple Inc."},
	"1": {"cik_str": 789019, "ticker": "MSFT", "title": "MICROSOFT CORP"}
}`

const submissionsJSON = `{
	"filings": {
		"recent": {
			"accessionNumber": ["0000320193-24-000123", "0000320193-24-000100", "0000320193-24-000090", "0000320193-24-000081"],
			"form": ["10-K", "8-K", "10-Q", "10-Q"],
			"primaryDocument": ["aapl-20240928.htm", "aapl-8k.htm", "aapl-20240629.htm", ""],
			"filingDate": ["2024-11-01", "2024-10-15", "2024-08-02", "2024-05-03"]
		}
	}
}`

func newTestClient(t *testing.T) (*sec.Client, *httptest.Server, *[]string) {
	t.Helper()
	var userAgents []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgents = append(userAgents, r.Header.Get("User-Agent"))
		switch r.URL.Path {
		case "/files/company_tickers.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(tickersJSON))
		case "/submissions/CIK0000320193.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(submissionsJSON))
		case "/archives/320193/000032019324000123/aapl-20240928.htm":
			_, _ = w.Write([]byte("<html><body>filing body</body></html>"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	client := sec.NewClient(&config.SECConfig{
		UserAgent:      "anyfactor-test test@example.com",
		TickersURL:     server.URL + "/files/company_tickers.json",
		SubmissionsURL: server.URL + "/submissions",
		ArchivesURL:    server.URL + "/archives",
		TimeoutSecs:    5,
	})
	return client, server, &userAgents
}

func TestResolveTicker_ReturnsZeroPaddedCIK(t *testing.T) {
	client, _, userAgents := newTestClient(t)

	cik, err := client.ResolveTicker(context.Background(), "AAPL")

	require.NoError(t, err)
	assert.Equal(t, "0000320193", cik)
	require.NotEmpty(t, *userAgents)
	assert.Equal(t, "anyfactor-test test@example.com", (*userAgents)[0])
}

func TestResolveTicker_MatchIsCaseInsensitive(t *testing.T) {
	client, _, _ := newTestClient(t)

	cik, err := client.ResolveTicker(context.Background(), "aapl")

	require.NoError(t, err)
	assert.Equal(t, "0000320193", cik)
}

func TestResolveTicker_UnknownTicker(t *testing.T) {
	client, _, _ := newTestClient(t)

	_, err := client.ResolveTicker(context.Background(), "ZZZZ")

	assert.True(t, errors.Is(err, domain.ErrTickerNotFound))
}

func TestListFilings_FiltersFormsAndBuildsArchiveURLs(t *testing.T) {
	client, server, _ := newTestClient(t)

	filings, err := client.ListFilings(context.Background(), "0000320193", 10)

	require.NoError(t, err)
	// 8-K is skipped; the 10-Q without a primary document is skipped.
	require.Len(t, filings, 2)
	assert.Equal(t, domain.FormType10K, filings[0].FormType)
	assert.Equal(t, "2024-11-01", filings[0].FilingDate)
	assert.Equal(t, server.URL+"/archives/320193/000032019324000123/aapl-20240928.htm", filings[0].URL)
	assert.Equal(t, domain.FormType10Q, filings[1].FormType)
	assert.Equal(t, "2024-08-02", filings[1].FilingDate)
}

func TestListFilings_RespectsLimit(t *testing.T) {
	client, _, _ := newTestClient(t)

	filings, err := client.ListFilings(context.Background(), "0000320193", 1)

	require.NoError(t, err)
	require.Len(t, filings, 1)
	assert.Equal(t, domain.FormType10K, filings[0].FormType)
}

func TestFetchDocument_ReturnsBody(t *testing.T) {
	client, server, _ := newTestClient(t)

	body, err := client.FetchDocument(context.Background(), server.URL+"/archives/320193/000032019324000123/aapl-20240928.htm")

	require.NoError(t, err)
	assert.Equal(t, "<html><body>filing body</body></html>", body)
}

func TestFetchDocument_ErrorStatus(t *testing.T) {
	client, server, _ := newTestClient(t)

	_, err := client.FetchDocument(context.Background(), server.URL+"/missing.htm")

	assert.Error(t, err)
}
