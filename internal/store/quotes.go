package store

import (
	"context"
	"fmt"

	"github.com/LiamCoop/timetracker/internal/domain/quote"
)

// QuoteRepository implements quote.Repository.
type QuoteRepository struct {
	db *DB
}

// NewQuoteRepository creates a new QuoteRepository
func NewQuoteRepository(db *DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// Create stores a quote.
func (r *QuoteRepository) Create(ctx context.Context, q *quote.Quote) error {
	query := `
		INSERT INTO daily_quotes (id, text, author, category, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, r.db.rebind(query),
		q.ID,
		q.Text,
		q.Author,
		q.Category,
		q.IsActive,
		toMillis(q.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create quote: %w", err)
	}
	return nil
}

// ListActive returns every active quote.
func (r *QuoteRepository) ListActive(ctx context.Context) ([]quote.Quote, error) {
	query := `
		SELECT id, text, author, category, is_active, created_at
		FROM daily_quotes
		WHERE is_active = ?
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, r.db.rebind(query), true)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	defer rows.Close()

	quotes := []quote.Quote{}
	for rows.Next() {
		var q quote.Quote
		var createdAt int64
		if err := rows.Scan(&q.ID, &q.Text, &q.Author, &q.Category, &q.IsActive, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		q.CreatedAt = fromMillis(createdAt)
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quote rows: %w", err)
	}
	return quotes, nil
}
