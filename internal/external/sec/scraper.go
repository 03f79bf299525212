package sec

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/cyberdash/internal/contracts"
	"github.com/wonny/cyberdash/pkg/config"
	"github.com/wonny/cyberdash/pkg/httputil"
	"github.com/wonny/cyberdash/pkg/logger"
)

// Row label patterns for the consolidated statements of operations. Filings
// vary in wording, so several spellings are accepted per concept.
var (
	rdPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)research\s+and\s+development`),
		regexp.MustCompile(`(?i)research\s+&\s+development`),
		regexp.MustCompile(`(?i)research\s+and\s+product\s+development`),
	}
	sgaPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)sales\s+and\s+marketing`),
		regexp.MustCompile(`(?i)selling\s+and\s+marketing`),
		regexp.MustCompile(`(?i)sales\s+and\s+advertising`),
		regexp.MustCompile(`(?i)sales\s+and\s+promotion`),
	}

	nonNumeric = regexp.MustCompile(`[^0-9.\-]`)
)

// Scraper extracts R&D and sales-and-marketing figures from 10-K filing
// HTML. It backs the metrics pipeline for symbols whose statement provider
// omits those line items.
type Scraper struct {
	http      *httputil.Client
	logger    *logger.Logger
	userAgent string
}

// NewScraper creates a new SEC filing scraper. SEC requires a User-Agent
// identifying the requester.
func NewScraper(cfg *config.Config, log *logger.Logger) *Scraper {
	return &Scraper{
		http:      httputil.NewWithTimeout(log, 30*time.Second),
		logger:    log,
		userAgent: cfg.SEC.UserAgent,
	}
}

// FetchOperatingExpenses downloads a filing and extracts the most recent
// R&D and sales-and-marketing values. Values come back in whatever unit the
// filing presents (usually thousands); either may be undefined when the
// table rows cannot be located.
func (s *Scraper) FetchOperatingExpenses(ctx context.Context, url string) (rd, sga contracts.Metric, err error) {
	body, err := s.http.GetBody(ctx, url, map[string]string{"User-Agent": s.userAgent})
	if err != nil {
		return contracts.Metric{}, contracts.Metric{}, fmt.Errorf("fetch filing: %w", err)
	}

	rd, sga, err = extractOperatingExpenses(body)
	if err != nil {
		return contracts.Metric{}, contracts.Metric{}, err
	}

	s.logger.WithFields(map[string]interface{}{
		"url": url,
		"rd":  rd,
		"sga": sga,
	}).Debug("Scraped filing operating expenses")

	return rd, sga, nil
}

// extractOperatingExpenses walks every table row in the document looking
// for the first row whose label matches each concept, and takes the first
// parseable numeric cell in that row as the most recent year's value.
func extractOperatingExpenses(html []byte) (rd, sga contracts.Metric, err error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return contracts.Metric{}, contracts.Metric{}, fmt.Errorf("parse filing html: %w", err)
	}

	doc.Find("table tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cells := row.Find("td, th")
		if cells.Length() < 2 {
			return true
		}

		label := strings.TrimSpace(cells.First().Text())
		if label == "" {
			return true
		}

		if !rd.Defined && matchesAny(label, rdPatterns) {
			rd = firstNumericCell(cells)
		}
		if !sga.Defined && matchesAny(label, sgaPatterns) {
			sga = firstNumericCell(cells)
		}

		return !(rd.Defined && sga.Defined)
	})

	return rd, sga, nil
}

func matchesAny(label string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(label) {
			return true
		}
	}
	return false
}

func firstNumericCell(cells *goquery.Selection) contracts.Metric {
	var m contracts.Metric
	cells.Slice(1, cells.Length()).EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		if v, ok := parseNumeric(cell.Text()); ok {
			m = contracts.MetricOf(v)
			return false
		}
		return true
	})
	return m
}

// parseNumeric parses filing-style numbers: comma separators, currency
// symbols, and parentheses for negatives.
func parseNumeric(text string) (float64, bool) {
	t := strings.TrimSpace(text)
	if t == "" {
		return 0, false
	}

	negative := strings.HasPrefix(t, "(") && strings.HasSuffix(t, ")")
	t = strings.Trim(t, "()")
	t = nonNumeric.ReplaceAllString(t, "")
	if t == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		v = -v
	}
	return v, true
}
