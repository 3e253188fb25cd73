package models

import "time"

// Customer is an account holder keyed by their fare card.
type Customer struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CardID    CardID    `db:"card_id" json:"card_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
