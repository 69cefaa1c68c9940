// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search performs web and news searches and normalizes provider
// responses into SearchResults. A gateway never fails its caller: transport
// errors, non-2xx responses and missing credentials all yield an empty
// result list, with the reason logged.
package search

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/contentforge/pkg/types"
)

// Gateway performs one search call. Implementations return an empty slice
// on any failure.
type Gateway interface {
	Search(ctx context.Context, req Request) []types.SearchResult
}

// Request holds the parameters of one search call.
type Request struct {
	Query string

	// Num is the number of results requested from the provider.
	Num int

	// Language is the result language, "tr" or "en".
	Language   string
	Mode       types.SearchMode
	TimeWindow types.TimeWindow
}

// Outcome is the explicit result of one provider call. Err is set when the
// call failed; Results is then empty.
type Outcome struct {
	Results []types.SearchResult
	Err     error
}

// OK reports whether the call succeeded.
func (o Outcome) OK() bool { return o.Err == nil }

// Domain returns the host of rawURL without "www.", or "" when rawURL has no host.
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ReplaceAll(u.Host, "www.", "")
}

// FormatTable writes results as a human-readable table to w.
func FormatTable(results []types.SearchResult, w io.Writer) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-24s  %s\n", "Rank", "Title", "Source", "Link")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, r := range results {
		fmt.Fprintf(w, "%-4d  %-60s  %-24s  %s\n",
			i+1, truncate(r.Title, 60), truncate(r.Source, 24), r.Link)
	}
	fmt.Fprintf(w, "\n%d results\n", len(results))
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-3]) + "..."
}
