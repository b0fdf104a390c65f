// Package scrape fetches fundedfolk.co pages and JSON endpoints and
// strips them to the plain text used as live prompt context.
package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/fundedfolk/supportbot/internal/metrics"
)

// DefaultBaseURL is the production site root.
const DefaultBaseURL = "https://fundedfolk.co"

// API paths surfaced alongside the scraped pages.
const (
	PricingPath = "/api/pricing"
	CouponsPath = "/api/pricing-details"
)

// defaultTimeout bounds one page fetch.
const defaultTimeout = 10 * time.Second

// Fetcher retrieves pages and pricing endpoints from the product site.
type Fetcher struct {
	base   string
	client *http.Client
}

// Config holds the fetcher settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// NewFetcher creates a site fetcher.
func NewFetcher(cfg *Config) *Fetcher {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Fetcher{
		base:   strings.TrimSuffix(base, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

// FetchPage retrieves path and returns its visible text.
func (f *Fetcher) FetchPage(ctx context.Context, path string) (string, error) {
	body, err := f.get(ctx, path)
	if err != nil {
		metrics.ScrapeFetchesTotal.WithLabelValues(path, "error").Inc()
		return "", err
	}
	metrics.ScrapeFetchesTotal.WithLabelValues(path, "success").Inc()
	return pageText(body), nil
}

// FetchPricing retrieves the pricing API and renders it as plain
// account/price lines. The response is keyed by account size; sizes
// are ordered numerically so the listing reads smallest first.
func (f *Fetcher) FetchPricing(ctx context.Context) (string, error) {
	body, err := f.get(ctx, PricingPath)
	if err != nil {
		metrics.ScrapeFetchesTotal.WithLabelValues(PricingPath, "error").Inc()
		return "", err
	}

	var pricing map[string]map[string]any
	if err := json.Unmarshal(body, &pricing); err != nil {
		metrics.ScrapeFetchesTotal.WithLabelValues(PricingPath, "error").Inc()
		return "", fmt.Errorf("decode pricing: %w", err)
	}
	metrics.ScrapeFetchesTotal.WithLabelValues(PricingPath, "success").Inc()

	sizes := make([]string, 0, len(pricing))
	for size := range pricing {
		sizes = append(sizes, size)
	}
	sort.Slice(sizes, func(i, j int) bool {
		a, aerr := strconv.Atoi(sizes[i])
		b, berr := strconv.Atoi(sizes[j])
		if aerr == nil && berr == nil {
			return a < b
		}
		return sizes[i] < sizes[j]
	})

	lines := []string{"Official Pricing (USD):"}
	for _, size := range sizes {
		fields := make([]string, 0, len(pricing[size]))
		for field := range pricing[size] {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		line := "Account: $" + size
		for _, field := range fields {
			line += fmt.Sprintf(", %s: $%v", field, pricing[size][field])
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

// couponsPayload is the slice of the pricing-details response the bot
// surfaces: the coupon popup entries. Code and Discount are pointers so
// an absent field renders as N/A rather than as a zero value.
type couponsPayload struct {
	CouponPopup struct {
		PopupData struct {
			Coupons []struct {
				Code     *string `json:"code"`
				Sizes    []any   `json:"sizes"`
				Discount any     `json:"discount"`
			} `json:"coupons"`
		} `json:"popup_data"`
	} `json:"couponPopup"`
}

// FetchCoupons retrieves the pricing-details API and renders the
// active coupon codes, one line per coupon under a header.
func (f *Fetcher) FetchCoupons(ctx context.Context) (string, error) {
	body, err := f.get(ctx, CouponsPath)
	if err != nil {
		metrics.ScrapeFetchesTotal.WithLabelValues(CouponsPath, "error").Inc()
		return "", err
	}

	var payload couponsPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		metrics.ScrapeFetchesTotal.WithLabelValues(CouponsPath, "error").Inc()
		return "", fmt.Errorf("decode pricing details: %w", err)
	}
	metrics.ScrapeFetchesTotal.WithLabelValues(CouponsPath, "success").Inc()

	lines := []string{"Available Coupons:"}
	for _, c := range payload.CouponPopup.PopupData.Coupons {
		code := "N/A"
		if c.Code != nil {
			code = *c.Code
		}
		discount := "N/A"
		if c.Discount != nil {
			discount = fmt.Sprintf("%v", c.Discount)
		}
		sizes := make([]string, len(c.Sizes))
		for i, s := range c.Sizes {
			sizes[i] = fmt.Sprintf("%v", s)
		}
		lines = append(lines, fmt.Sprintf("Code: %s, Sizes: %s, Discount: %s%%",
			code, strings.Join(sizes, ", "), discount))
	}
	return strings.Join(lines, "\n"), nil
}

func (f *Fetcher) get(ctx context.Context, path string) ([]byte, error) {
	url := f.base + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return body, nil
}

// pageText strips an HTML document to its visible text: script, style,
// and noscript blocks are dropped, tags removed, entities decoded, and
// whitespace runs collapsed to single spaces.
func pageText(body []byte) string {
	tz := html.NewTokenizer(bytes.NewReader(body))
	var b strings.Builder
	hidden := 0
	for {
		switch tz.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			name, _ := tz.TagName()
			if hiddenTag(string(name)) {
				hidden++
			}
		case html.EndTagToken:
			name, _ := tz.TagName()
			if hiddenTag(string(name)) && hidden > 0 {
				hidden--
			}
		case html.TextToken:
			if hidden == 0 {
				b.Write(tz.Text())
				b.WriteByte(' ')
			}
		}
	}
}

func hiddenTag(name string) bool {
	return name == "script" || name == "style" || name == "noscript"
}
