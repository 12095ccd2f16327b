package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/database"
)

// SequenceGenerator keeps document counters in the sequences table. The upsert
// takes a row lock, so concurrent callers on the same key serialize.
type SequenceGenerator struct {
	db *database.DB
}

func NewSequenceGenerator(db *database.DB) *SequenceGenerator {
	return &SequenceGenerator{db: db}
}

func (g *SequenceGenerator) Next(ctx context.Context, key string, floor int64) (int64, error) {
	q := GetQuerier(ctx, g.db)

	query := `
		INSERT INTO sequences (key, value)
		VALUES ($1, $2 + 1)
		ON CONFLICT (key) DO UPDATE SET value = GREATEST(sequences.value, $2) + 1
		RETURNING value
	`

	var value int64
	if err := q.QueryRow(ctx, query, key, floor).Scan(&value); err != nil {
		return 0, fmt.Errorf("failed to allocate sequence %s: %w", key, err)
	}
	return value, nil
}
