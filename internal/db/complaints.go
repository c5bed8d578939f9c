package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"complaintfinder/internal/models"
)

// likeEscaper escapes LIKE metacharacters so a needle matches literally.
// Backslash is the default ESCAPE character in PostgreSQL.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike returns needle with LIKE wildcards escaped.
func escapeLike(needle string) string {
	return likeEscaper.Replace(needle)
}

// CountByCategory returns the number of complaints whose category equals
// category exactly.
func (d *DB) CountByCategory(ctx context.Context, category string) (int, error) {
	var count int
	err := d.Pool.QueryRow(ctx, `
		SELECT count(*) FROM complaints WHERE complaint_field = $1
	`, category).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count complaints by category: %w", err)
	}
	return count, nil
}

// SearchContent returns the category of every complaint whose content
// contains needle, ignoring case.
func (d *DB) SearchContent(ctx context.Context, needle string) ([]string, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT complaint_field
		FROM complaints
		WHERE question_content ILIKE '%' || $1 || '%'
	`, escapeLike(needle))
	if err != nil {
		return nil, fmt.Errorf("failed to search complaints: %w", err)
	}

	categories, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to read complaint categories: %w", err)
	}
	return categories, nil
}

// CategoryCounts returns the number of complaints per category.
func (d *DB) CategoryCounts(ctx context.Context) (map[string]int, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT complaint_field, count(*)
		FROM complaints
		GROUP BY complaint_field
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count complaints per category: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		counts[category] = count
	}
	return counts, rows.Err()
}

// InsertComplaint stores a new complaint record and returns it.
func (d *DB) InsertComplaint(ctx context.Context, content, category string) (*models.Complaint, error) {
	content = strings.TrimSpace(content)
	category = strings.TrimSpace(category)
	if content == "" || category == "" {
		return nil, ErrInvalidComplaint
	}

	c := &models.Complaint{Content: content, Category: category}
	err := d.Pool.QueryRow(ctx, `
		INSERT INTO complaints (question_content, complaint_field)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, content, category).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert complaint: %w", err)
	}
	return c, nil
}
