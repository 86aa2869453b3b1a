package edgar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"
)

// Feed of the most recent 8-K filings across all registrants. EDGAR only
// serves current filings here, so controversy scanning is a rolling
// window, not a historical search.
const defaultFeedUrl = "https://www.sec.gov/cgi-bin/browse-edgar?action=getcurrent&type=8-K&count=100&output=atom"

type Client struct {
	HttpClient *http.Client
	// UserAgent is required. EDGAR rejects requests without a descriptive
	// one (https://www.sec.gov/os/accessing-edgar-data).
	UserAgent string
	// FeedUrl overrides the production endpoint. Leave empty outside tests.
	FeedUrl string
	// Limiter throttles outbound calls when set. EDGAR caps clients at 10
	// requests per second.
	Limiter *rate.Limiter
}

// Filing is one feed entry, date normalized to YYYY-MM-DD.
type Filing struct {
	Title   string
	Summary string
	Link    string
	Date    string
}

func (c Client) RecentFilings(ctx context.Context) ([]Filing, error) {
	feedUrl := c.FeedUrl
	if feedUrl == "" {
		feedUrl = defaultFeedUrl
	}

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	parser := gofeed.NewParser()
	parser.UserAgent = c.UserAgent
	if c.HttpClient != nil {
		parser.Client = c.HttpClient
	}

	feed, err := parser.ParseURLWithContext(feedUrl, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch filings feed: %w", err)
	}

	filings := make([]Filing, 0, len(feed.Items))
	for _, item := range feed.Items {
		date := "Unknown"
		when := item.PublishedParsed
		if when == nil {
			when = item.UpdatedParsed
		}
		if when != nil {
			date = when.Format(time.DateOnly)
		}

		link := item.Link
		if link == "" && len(item.Links) > 0 {
			link = item.Links[0]
		}

		filings = append(filings, Filing{
			Title:   item.Title,
			Summary: item.Description,
			Link:    link,
			Date:    date,
		})
	}

	return filings, nil
}
