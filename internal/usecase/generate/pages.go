package generate

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// siteURL is the public site root, used in inline error lines and the
// offline fallback text.
const siteURL = "https://fundedfolk.co"

// API paths rendered as their own context sections.
const (
	pricingPath = "/api/pricing"
	couponsPath = "/api/pricing-details"
)

// sitePages maps scrapeable subpages to the query keywords that pull
// each one into the prompt context. The root page is always fetched.
var sitePages = []struct {
	path     string
	keywords []string
}{
	{"/faq", []string{"faq", "frequently asked", "question", "questions", "common question", "help", "support", "how to", "information", "info"}},
	{"/features", []string{"feature", "features", "capability", "capabilities", "function", "functions", "what can", "tools", "offerings"}},
	{"/loyalty-program", []string{"loyalty", "loyalty program", "reward", "rewards", "points", "membership", "benefit", "benefits"}},
	{"/offer", []string{"offer", "offers", "promotion", "deal", "discount", "special", "entry coupon", "get funded", "current offer", "promo"}},
}

// pricingKeywords gates the pricing API fetch.
var pricingKeywords = []string{
	"price", "cost", "fee", "fees", "pricing", "charge", "charges", "amount",
	"how much", "pay", "payment", "rate", "rates", "subscription", "plan",
	"plans", "expensive", "cheap", "afford", "deposit", "withdrawal",
	"refund", "discount", "offer", "promotion", "hftpro", "phase1", "phase2",
}

// couponKeywords gates the coupon API fetch.
var couponKeywords = []string{
	"coupon", "promo", "discount code", "voucher", "entry code",
	"coupon code", "promo code", "discount", "offer", "promotion",
	"redeem", "apply code", "code for", "get code", "use code", "special code",
}

func containsAny(query string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(query, kw) {
			return true
		}
	}
	return false
}

// relevantPages returns the subpage paths whose keywords match the
// query, root page first.
func relevantPages(query string) []string {
	q := strings.ToLower(query)
	paths := []string{"/"}
	for _, p := range sitePages {
		if containsAny(q, p.keywords) {
			paths = append(paths, p.path)
		}
	}
	return paths
}

// webContext fetches every relevant page and API endpoint and renders
// them as "Content from {path}" sections joined by blank lines. A
// failed fetch contributes an inline error line for its section
// instead of aborting the request.
func (s *Service) webContext(ctx context.Context, query string) string {
	q := strings.ToLower(query)
	paths := relevantPages(query)

	sections := make([]string, 0, len(paths)+2)
	for _, path := range paths {
		text, err := s.pages.FetchPage(ctx, path)
		if err != nil {
			s.logger.Warn("page scrape failed", zap.String("path", path), zap.Error(err))
			text = fmt.Sprintf("Error scraping %s%s: %v", siteURL, path, err)
		}
		sections = append(sections, "Content from "+path+":\n"+text)
	}

	if containsAny(q, pricingKeywords) {
		text, err := s.pages.FetchPricing(ctx)
		if err != nil {
			s.logger.Warn("pricing fetch failed", zap.Error(err))
			text = fmt.Sprintf("Error fetching pricing: %v", err)
		}
		sections = append(sections, "Content from "+pricingPath+":\n"+text)
	}

	if containsAny(q, couponKeywords) {
		text, err := s.pages.FetchCoupons(ctx)
		if err != nil {
			s.logger.Warn("coupon fetch failed", zap.Error(err))
			text = fmt.Sprintf("Error fetching coupons: %v", err)
		}
		sections = append(sections, "Content from "+couponsPath+":\n"+text)
	}

	s.logger.Debug("assembled web context",
		zap.Strings("pages", paths),
		zap.Int("sections", len(sections)))

	return strings.Join(sections, "\n\n")
}
