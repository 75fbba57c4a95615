package postgres

import (
	"context"
	"fmt"
)

// PurchaseRepository reads customer purchase history for recommendations.
type PurchaseRepository struct {
	pool *Pool
}

func NewPurchaseRepository(pool *Pool) *PurchaseRepository {
	return &PurchaseRepository{pool: pool}
}

// Categories returns the distinct product categories seen in any purchase.
func (r *PurchaseRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT DISTINCT product_category FROM purchases ORDER BY product_category")
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

// History returns the categories a customer purchased from, most recent first.
func (r *PurchaseRepository) History(ctx context.Context, customer string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT product_category FROM purchases
		WHERE customer = $1
		ORDER BY created_at DESC
		LIMIT 50
	`, customer)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var history []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		history = append(history, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return history, nil
}

// AddPurchase records one purchase. Used by tests and seed tooling.
func (r *PurchaseRepository) AddPurchase(ctx context.Context, customer, category string) error {
	_, err := r.pool.Exec(ctx,
		"INSERT INTO purchases (customer, product_category) VALUES ($1, $2)", customer, category)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}
