package quote

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/LiamCoop/timetracker/internal/clock"
	"github.com/google/uuid"
)

// Service picks and imports daily quotes.
type Service struct {
	repo   Repository
	clock  clock.Clock
	logger *slog.Logger
}

// NewService creates a new quote service. clk may be nil.
func NewService(repo Repository, clk clock.Clock, logger *slog.Logger) *Service {
	if clk == nil {
		clk = clock.Real(nil)
	}
	return &Service{repo: repo, clock: clk, logger: logger}
}

// Random returns a uniformly chosen active quote.
func (s *Service) Random(ctx context.Context) (*Quote, error) {
	quotes, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing quotes: %w", err)
	}
	if len(quotes) == 0 {
		return nil, ErrNoQuotes
	}
	q := quotes[rand.IntN(len(quotes))]
	return &q, nil
}

// Import stores quotes as active, skipping blank ones. It returns the
// number stored.
func (s *Service) Import(ctx context.Context, quotes []Quote) (int, error) {
	stored := 0
	for i := range quotes {
		q := quotes[i]
		q.Text = strings.TrimSpace(q.Text)
		if q.Text == "" {
			if s.logger != nil {
				s.logger.Warn("skipping blank quote", "index", i)
			}
			continue
		}
		q.ID = uuid.NewString()
		q.IsActive = true
		q.CreatedAt = s.clock.Now()
		if err := s.repo.Create(ctx, &q); err != nil {
			return stored, fmt.Errorf("creating quote %d: %w", i, err)
		}
		stored++
	}
	return stored, nil
}
