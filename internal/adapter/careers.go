package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/neilv/neilsearch/internal/model"
)

// maxCareersJobs caps how many cards one careers page contributes; listing
// pages sometimes render hundreds of unrelated links.
const maxCareersJobs = 50

// CareersAdapter scrapes a careers page directly for companies without a
// public board API. It is a best-effort fallback: job cards are located with
// loose class-based selectors and descriptions are not available from the
// listing, so downstream scoring works from the title alone.
type CareersAdapter struct {
	pageURL     string
	companyName string
	client      *http.Client
}

// NewCareersAdapter creates an adapter scraping the given careers page.
func NewCareersAdapter(pageURL string, companyName string, client *http.Client) *CareersAdapter {
	return &CareersAdapter{
		pageURL:     pageURL,
		companyName: companyName,
		client:      client,
	}
}

// FetchJobs downloads the careers page and extracts job cards.
func (a *CareersAdapter) FetchJobs(ctx context.Context) ([]model.Job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("careers fetch for %s: %w", a.companyName, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; neilsearch)")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("careers fetch for %s: %w", a.companyName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        fmt.Errorf("careers fetch for %s: unexpected status %d", a.companyName, resp.StatusCode),
		}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("careers fetch for %s: %w", a.companyName, err)
	}

	base, err := url.Parse(a.pageURL)
	if err != nil {
		return nil, fmt.Errorf("careers fetch for %s: %w", a.companyName, err)
	}

	scrapedAt := time.Now().UTC()
	var jobs []model.Job
	seen := make(map[string]bool)

	doc.Find(`div[class*="job"], article[class*="job"], li[class*="job"], div[class*="posting"], li[class*="posting"]`).
		EachWithBreak(func(_ int, card *goquery.Selection) bool {
			job, ok := a.parseCard(card, base, scrapedAt)
			if !ok || seen[job.ID] {
				return true
			}
			seen[job.ID] = true
			jobs = append(jobs, job)
			return len(jobs) < maxCareersJobs
		})

	return jobs, nil
}

// parseCard pulls title, link, and location out of one listing card.
func (a *CareersAdapter) parseCard(card *goquery.Selection, base *url.URL, scrapedAt time.Time) (model.Job, bool) {
	titleSel := card.Find(`h2[class*="title"], h3[class*="title"], a[class*="title"]`).First()
	if titleSel.Length() == 0 {
		titleSel = card.Find("a").First()
	}
	title := strings.TrimSpace(titleSel.Text())
	if title == "" {
		return model.Job{}, false
	}

	href, _ := titleSel.Attr("href")
	if href == "" {
		href, _ = card.Find("a").First().Attr("href")
	}
	link := resolveURL(base, href)
	if link == "" {
		return model.Job{}, false
	}

	location := strings.TrimSpace(card.Find(`span[class*="location"], div[class*="location"]`).First().Text())
	if location == "" {
		location = "Remote"
	}

	return model.Job{
		ID:        JobID(link),
		Source:    "careers",
		Company:   a.companyName,
		Title:     title,
		Location:  normalizeLocation(location),
		URL:       link,
		ScrapedAt: scrapedAt,
	}, true
}

func resolveURL(base *url.URL, href string) string {
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
