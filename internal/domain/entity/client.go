package entity

import "time"

// Client cliente al que se emite el documento.
type Client struct {
	ID         string
	BusinessID string
	Name       string
	Email      string
	Phone      string
	TaxID      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
