package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"complaintfinder/internal/models"
)

// maxLookupKeywordLen bounds stored keywords; longer ones are truncated.
const maxLookupKeywordLen = 100

// IncrementKeywordLookup bumps the search count for keyword under outcome.
func (d *DB) IncrementKeywordLookup(ctx context.Context, keyword, outcome string) error {
	if r := []rune(keyword); len(r) > maxLookupKeywordLen {
		keyword = string(r[:maxLookupKeywordLen])
	}

	_, err := d.Pool.Exec(ctx, `
		INSERT INTO keyword_lookups (keyword, outcome, count, last_seen_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (keyword, outcome) DO UPDATE
		SET count = keyword_lookups.count + 1, last_seen_at = NOW()
	`, keyword, outcome)
	if err != nil {
		return fmt.Errorf("failed to record keyword lookup: %w", err)
	}
	return nil
}

// GetAllKeywordLookups returns every keyword/outcome counter, most searched first.
func (d *DB) GetAllKeywordLookups(ctx context.Context) ([]models.KeywordLookup, error) {
	return d.queryKeywordLookups(ctx, `
		SELECT keyword, outcome, count, last_seen_at
		FROM keyword_lookups
		ORDER BY count DESC, keyword
	`)
}

// GetTopKeywordLookups returns the limit most searched keyword/outcome pairs.
func (d *DB) GetTopKeywordLookups(ctx context.Context, limit int) ([]models.KeywordLookup, error) {
	return d.queryKeywordLookups(ctx, `
		SELECT keyword, outcome, count, last_seen_at
		FROM keyword_lookups
		ORDER BY count DESC, keyword
		LIMIT $1
	`, limit)
}

func (d *DB) queryKeywordLookups(ctx context.Context, query string, args ...any) ([]models.KeywordLookup, error) {
	rows, err := d.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query keyword lookups: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[models.KeywordLookup])
}
