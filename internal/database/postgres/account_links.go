package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/falsedev/TechStruck_Go/internal/domain"
)

// AccountLinkRepository implements repository.AccountLinks
type AccountLinkRepository struct {
	db *pgxpool.Pool
}

// NewAccountLinkRepository creates a new account link repository
func NewAccountLinkRepository(db *pgxpool.Pool) *AccountLinkRepository {
	return &AccountLinkRepository{db: db}
}

// Upsert stores an access token for (subject, provider), replacing any
// previous token in place. The write is a single-statement upsert per table,
// so concurrent calls resolve last-writer-wins without read-modify-write.
func (r *AccountLinkRepository) Upsert(ctx context.Context, link *domain.AccountLink) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return storeErr("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO subjects (subject_id) VALUES ($1)
		ON CONFLICT (subject_id) DO UPDATE SET updated_at = NOW()
	`, link.SubjectID)
	if err != nil {
		return storeErr("failed to upsert subject", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO account_links (subject_id, provider, access_token)
		VALUES ($1, $2, $3)
		ON CONFLICT (subject_id, provider)
		DO UPDATE SET access_token = EXCLUDED.access_token, updated_at = NOW()
	`, link.SubjectID, link.Provider, link.AccessToken)
	if err != nil {
		return storeErr("failed to upsert account link", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return storeErr("failed to commit", err)
	}
	return nil
}

// Get retrieves the stored access token for (subject, provider)
func (r *AccountLinkRepository) Get(ctx context.Context, subjectID int64, provider string) (*domain.AccountLink, error) {
	query := `
		SELECT subject_id, provider, access_token, linked_at, updated_at
		FROM account_links
		WHERE subject_id = $1 AND provider = $2
	`
	var link domain.AccountLink
	err := r.db.QueryRow(ctx, query, subjectID, provider).Scan(
		&link.SubjectID,
		&link.Provider,
		&link.AccessToken,
		&link.LinkedAt,
		&link.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotLinked
		}
		return nil, storeErr("failed to get account link", err)
	}
	return &link, nil
}

// Delete removes the link for (subject, provider)
func (r *AccountLinkRepository) Delete(ctx context.Context, subjectID int64, provider string) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM account_links WHERE subject_id = $1 AND provider = $2
	`, subjectID, provider)
	if err != nil {
		return storeErr("failed to delete account link", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotLinked
	}
	return nil
}

// ListProviders returns the providers currently linked for a subject
func (r *AccountLinkRepository) ListProviders(ctx context.Context, subjectID int64) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT provider FROM account_links WHERE subject_id = $1 ORDER BY provider
	`, subjectID)
	if err != nil {
		return nil, storeErr("failed to list providers", err)
	}
	defer rows.Close()

	var providers []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, storeErr("failed to scan provider", err)
		}
		providers = append(providers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("failed to read providers", err)
	}
	return providers, nil
}

// storeErr tags persistence failures so callers can map them uniformly
func storeErr(msg string, err error) error {
	return fmt.Errorf("%w: %s: %s", domain.ErrStoreUnavailable, msg, err)
}
