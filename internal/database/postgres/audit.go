package postgres

import (
	"context"
	"fmt"

	"github.com/kamdem/biogate/internal/database"
)

// AuditRepository persists transaction reports.
type AuditRepository struct {
	pool *Pool
}

func NewAuditRepository(pool *Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

// RecordTransaction inserts one audit record.
func (r *AuditRepository) RecordTransaction(ctx context.Context, rec database.AuditRecord) error {
	query := `
		INSERT INTO transactions (id, face_key, voice_key, accepted, identity, reason, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		rec.ID,
		rec.FaceKey,
		rec.VoiceKey,
		rec.Accepted,
		rec.Identity,
		rec.Reason,
		rec.Category,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// CountTransactions returns the number of audited transactions.
func (r *AuditRepository) CountTransactions(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM transactions").Scan(&count); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return count, nil
}
