package repository

import (
	"context"

	"github.com/falsedev/TechStruck_Go/internal/domain"
)

// AccountLinks defines data access for provider account links.
// Implementations must make Upsert atomic: concurrent writes to the same
// (subject, provider) key resolve last-writer-wins with no partial rows.
type AccountLinks interface {
	Upsert(ctx context.Context, link *domain.AccountLink) error
	Get(ctx context.Context, subjectID int64, provider string) (*domain.AccountLink, error)
	Delete(ctx context.Context, subjectID int64, provider string) error
	ListProviders(ctx context.Context, subjectID int64) ([]string, error)
}
