package gsc

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/searchconsole/v1"
)

// AnalyticsDays is the length of the analytics window ending today.
const AnalyticsDays = 28

const dateLayout = "2006-01-02"

// Inspection is the index status of one URL.
type Inspection struct {
	Verdict         string `json:"verdict"`
	CoverageState   string `json:"coverage_state"`
	LastCrawlTime   string `json:"last_crawl_time"`
	UserCanonical   string `json:"user_canonical"`
	GoogleCanonical string `json:"google_canonical"`
	RobotsTxtState  string `json:"robots_txt_state"`
}

// Metrics are the search analytics totals of one page.
type Metrics struct {
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Clicks      float64 `json:"clicks"`
	Impressions float64 `json:"impressions"`
	CTR         float64 `json:"ctr"`
	Position    float64 `json:"position"`
}

// Client calls the Search Console API.
type Client struct {
	svc *searchconsole.Service
}

// NewClient creates a Client that sends requests through hc. Extra options
// (e.g. option.WithEndpoint) are applied after the HTTP client.
func NewClient(ctx context.Context, hc *http.Client, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(hc)}, opts...)
	svc, err := searchconsole.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("searchconsole client: %w", err)
	}
	return &Client{svc: svc}, nil
}

// Sites lists the properties the token can access. Entries without a URL are skipped.
func (c *Client) Sites(ctx context.Context) ([]string, error) {
	resp, err := c.svc.Sites.List().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("searchconsole sites.list: %w", err)
	}

	sites := make([]string, 0, len(resp.SiteEntry))
	for _, entry := range resp.SiteEntry {
		if entry == nil || entry.SiteUrl == "" {
			continue
		}
		sites = append(sites, entry.SiteUrl)
	}
	return sites, nil
}

// Inspect returns the index status of pageURL within site.
func (c *Client) Inspect(ctx context.Context, site, pageURL string) (*Inspection, error) {
	req := &searchconsole.InspectUrlIndexRequest{
		InspectionUrl: pageURL,
		SiteUrl:       site,
	}
	resp, err := c.svc.UrlInspection.Index.Inspect(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("searchconsole urlInspection.index.inspect: %w", err)
	}

	out := &Inspection{}
	if resp.InspectionResult == nil || resp.InspectionResult.IndexStatusResult == nil {
		return out, nil
	}
	r := resp.InspectionResult.IndexStatusResult
	out.Verdict = r.Verdict
	out.CoverageState = r.CoverageState
	out.LastCrawlTime = r.LastCrawlTime
	out.UserCanonical = r.UserCanonical
	out.GoogleCanonical = r.GoogleCanonical
	out.RobotsTxtState = r.RobotsTxtState
	return out, nil
}

// Analytics returns the totals of pageURL between start and end (inclusive
// dates). Missing data yields zero metrics.
func (c *Client) Analytics(ctx context.Context, site, pageURL string, start, end time.Time) (*Metrics, error) {
	req := &searchconsole.SearchAnalyticsQueryRequest{
		StartDate:  start.UTC().Format(dateLayout),
		EndDate:    end.UTC().Format(dateLayout),
		Dimensions: []string{"page"},
		DimensionFilterGroups: []*searchconsole.ApiDimensionFilterGroup{{
			Filters: []*searchconsole.ApiDimensionFilter{{
				Dimension:  "page",
				Operator:   "equals",
				Expression: pageURL,
			}},
		}},
	}
	resp, err := c.svc.Searchanalytics.Query(site, req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("searchconsole searchanalytics.query: %w", err)
	}

	out := &Metrics{StartDate: req.StartDate, EndDate: req.EndDate}
	if len(resp.Rows) > 0 && resp.Rows[0] != nil {
		row := resp.Rows[0]
		out.Clicks = row.Clicks
		out.Impressions = row.Impressions
		out.CTR = row.Ctr
		out.Position = row.Position
	}
	return out, nil
}

// AnalyticsWindow returns the last AnalyticsDays days ending at now.
func AnalyticsWindow(now time.Time) (start, end time.Time) {
	end = now.UTC()
	return end.AddDate(0, 0, -AnalyticsDays), end
}
