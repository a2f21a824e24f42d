package domain

import "time"

// Product is an immutable catalog record. Price is in the smallest currency
// unit (whole rupiah); Discount is a whole percent in [0, 100].
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Discount    int       `json:"discount"`
	ImageURL    string    `json:"image_url"`
	Category    string    `json:"category"`
	Brand       string    `json:"brand"`
	Rating      float64   `json:"rating"`
	Reviews     int       `json:"reviews"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
}
