package generate

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestRelevantPages_RootAlwaysIncluded(t *testing.T) {
	got := relevantPages("hello there")
	if !reflect.DeepEqual(got, []string{"/"}) {
		t.Errorf("expected root only, got %v", got)
	}
}

func TestRelevantPages_KeywordGates(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"how to withdraw", []string{"/", "/faq"}},
		{"what can the platform tools do", []string{"/", "/features"}},
		{"loyalty points balance", []string{"/", "/loyalty-program"}},
		{"any special deal today", []string{"/", "/offer"}},
		{"HELP with rewards offer", []string{"/", "/faq", "/loyalty-program", "/offer"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := relevantPages(tt.query); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("relevantPages(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestWebContext_SectionOrder(t *testing.T) {
	pages := &mockPages{
		pageText:    map[string]string{"/": "ROOT", "/faq": "FAQ", "/offer": "OFFER"},
		pricingText: "PRICES",
		couponsText: "CODES",
	}
	s := newTestService(pages, &mockRouter{})

	got := s.webContext(context.Background(), "question about pricing discount code")

	want := strings.Join([]string{
		"Content from /:\nROOT",
		"Content from /faq:\nFAQ",
		"Content from /offer:\nOFFER",
		"Content from /api/pricing:\nPRICES",
		"Content from /api/pricing-details:\nCODES",
	}, "\n\n")
	if got != want {
		t.Errorf("unexpected web context:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestWebContext_FailedPageRendersInlineError(t *testing.T) {
	pages := &mockPages{pageErr: map[string]error{"/": errors.New("status 503")}}
	s := newTestService(pages, &mockRouter{})

	got := s.webContext(context.Background(), "hi")

	want := "Content from /:\nError scraping https://fundedfolk.co/: status 503"
	if got != want {
		t.Errorf("unexpected web context:\ngot %q\nwant %q", got, want)
	}
}

func TestWebContext_FailedAPIsRenderInlineErrors(t *testing.T) {
	pages := &mockPages{
		pricingErr: errors.New("status 500"),
		couponsErr: errors.New("decode pricing details: boom"),
	}
	s := newTestService(pages, &mockRouter{})

	got := s.webContext(context.Background(), "discount coupon cost")

	if !strings.Contains(got, "Content from /api/pricing:\nError fetching pricing: status 500") {
		t.Errorf("missing pricing error section:\n%s", got)
	}
	if !strings.Contains(got, "Content from /api/pricing-details:\nError fetching coupons: decode pricing details: boom") {
		t.Errorf("missing coupons error section:\n%s", got)
	}
}

func TestWebContext_APIsSkippedWhenUngated(t *testing.T) {
	pages := &mockPages{pageText: map[string]string{"/": "ROOT"}}
	s := newTestService(pages, &mockRouter{})

	s.webContext(context.Background(), "hello")

	if pages.pricingCalls != 0 {
		t.Errorf("pricing fetched %d times for ungated query", pages.pricingCalls)
	}
	if pages.couponsCalls != 0 {
		t.Errorf("coupons fetched %d times for ungated query", pages.couponsCalls)
	}
	if !reflect.DeepEqual(pages.pageCalls, []string{"/"}) {
		t.Errorf("unexpected page fetches: %v", pages.pageCalls)
	}
}
