package postgres

import (
	"context"
	"fmt"

	"github.com/pgvector/pgvector-go"

	"github.com/kamdem/biogate/internal/database"
)

// TemplateRepository provides PostgreSQL-backed template storage.
type TemplateRepository struct {
	pool *Pool
}

func NewTemplateRepository(pool *Pool) *TemplateRepository {
	return &TemplateRepository{pool: pool}
}

// ListTemplates returns all enrolled templates for one modality.
func (r *TemplateRepository) ListTemplates(ctx context.Context, modality string) ([]database.StoredTemplate, error) {
	query := `
		SELECT id, identity, modality, embedding, dim, created_at
		FROM templates
		WHERE modality = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, modality)
	if err != nil {
		return nil, fmt.Errorf("query templates: %w", err)
	}
	defer rows.Close()

	var templates []database.StoredTemplate
	for rows.Next() {
		var tpl database.StoredTemplate
		var vec pgvector.Vector
		if err := rows.Scan(&tpl.ID, &tpl.Identity, &tpl.Modality, &vec, &tpl.Dim, &tpl.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		tpl.Embedding = vec.Slice()
		templates = append(templates, tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate templates: %w", err)
	}
	return templates, nil
}

// CountTemplates returns the number of enrolled templates for one modality.
func (r *TemplateRepository) CountTemplates(ctx context.Context, modality string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM templates WHERE modality = $1", modality).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count templates: %w", err)
	}
	return count, nil
}

// SaveTemplate enrolls a template and returns its ID.
func (r *TemplateRepository) SaveTemplate(ctx context.Context, tpl database.StoredTemplate) (int64, error) {
	query := `
		INSERT INTO templates (identity, modality, embedding, dim)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		tpl.Identity,
		tpl.Modality,
		pgvector.NewVector(tpl.Embedding),
		len(tpl.Embedding),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert template: %w", err)
	}
	return id, nil
}
