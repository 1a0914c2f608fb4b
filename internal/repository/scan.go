package repository

import (
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/crea-eci/azzurra/internal/models"
)

// scanBucketCounts reads (label, count) rows. what names the aggregate
// for error messages.
func scanBucketCounts(rows pgx.Rows, what string) ([]models.BucketCount, error) {
	var out []models.BucketCount

	for rows.Next() {
		var b models.BucketCount
		if err := rows.Scan(&b.Label, &b.Count); err != nil {
			return nil, fmt.Errorf("scan %s bucket: %w", what, err)
		}

		out = append(out, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s buckets: %w", what, err)
	}

	return out, nil
}
