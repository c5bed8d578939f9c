// Package resolver picks the complaint category to recommend for a keyword.
//
// Resolution is two-tier: a keyword found in the mapping table resolves to its
// mapped category as long as that category has at least one record; anything
// else falls back to a substring search over complaint content and recommends
// the most frequent category among the matches.
package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/unicode/norm"

	"complaintfinder/internal/mapping"
	"complaintfinder/internal/store"
)

// Observer is notified of every successful resolution.
type Observer func(keyword string, outcome Outcome)

// Resolver resolves keywords against a gateway and an immutable mapping table.
type Resolver struct {
	gw       store.Gateway
	table    *mapping.Table
	logger   *slog.Logger
	observer Observer
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for diagnostic lines.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithObserver registers an observer for resolution outcomes.
func WithObserver(o Observer) Option {
	return func(r *Resolver) { r.observer = o }
}

// New creates a resolver. A nil table disables the mapping tier.
func New(gw store.Gateway, table *mapping.Table, opts ...Option) *Resolver {
	r := &Resolver{
		gw:     gw,
		table:  table,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Table returns the mapping table the resolver was built with.
func (r *Resolver) Table() *mapping.Table {
	return r.table
}

// Resolve returns the recommendation for keyword. The keyword must be
// non-empty; validation is the caller's job. Both tiers see the keyword in
// NFC form. Gateway failures are returned wrapped and are never retried.
func (r *Resolver) Resolve(ctx context.Context, keyword string) (Outcome, error) {
	keyword = norm.NFC.String(strings.TrimSpace(keyword))
	r.logger.Info("keyword search", "keyword", keyword)

	if category, ok := r.table.Lookup(keyword); ok {
		count, err := r.gw.CountByCategory(ctx, category)
		if err != nil {
			return nil, fmt.Errorf("failed to count records for category %q: %w", category, err)
		}
		if count > 0 {
			out := MappingHit{Keyword: keyword, Category: category, Count: count}
			r.done(keyword, out)
			return out, nil
		}
		r.logger.Info("mapped category has no records, falling back to content search",
			"keyword", keyword, "category", category)
	}

	categories, err := r.gw.SearchContent(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("failed to search complaint content: %w", err)
	}

	if len(categories) == 0 {
		out := NoResult{Keyword: keyword}
		r.done(keyword, out)
		return out, nil
	}

	out := FallbackResult{Keyword: keyword, Distribution: Tally(categories)}
	r.done(keyword, out)
	return out, nil
}

func (r *Resolver) done(keyword string, out Outcome) {
	switch o := out.(type) {
	case MappingHit:
		r.logger.Info("keyword resolved by mapping",
			"keyword", keyword, "category", o.Category, "count", o.Count)
	case FallbackResult:
		top := o.Recommended()
		r.logger.Info("keyword resolved by content search",
			"keyword", keyword, "total", o.TotalResults(), "category", top.Category, "count", top.Count)
	case NoResult:
		r.logger.Info("keyword search found no records", "keyword", keyword)
	}

	if r.observer != nil {
		r.observer(keyword, out)
	}
}
