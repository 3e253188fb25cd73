package repository

import (
	"context"
	"database/sql"

	"farehub/internal/models"
)

// CustomerRepository is the Postgres-backed customer directory.
type CustomerRepository struct {
	db *sql.DB
}

// NewCustomerRepository returns repository.
func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Customers returns every registered account holder.
func (r *CustomerRepository) Customers(ctx context.Context) ([]models.Customer, error) {
	const query = `
		SELECT id, name, card_id, created_at
		FROM customers
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.CardID, &c.CreatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return customers, nil
}

// IsRegistered reports whether any customer holds the given card.
func (r *CustomerRepository) IsRegistered(ctx context.Context, cardID models.CardID) (bool, error) {
	const query = `
		SELECT EXISTS (SELECT 1 FROM customers WHERE card_id = $1)
	`
	var registered bool
	if err := r.db.QueryRowContext(ctx, query, cardID).Scan(&registered); err != nil {
		return false, err
	}
	return registered, nil
}
