package domain

import "time"

// CartLine is a product snapshot plus a quantity. Quantity is always >= 1;
// a line whose quantity would drop to zero is removed, never stored.
type CartLine struct {
	Product  Product   `json:"product"`
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"added_at"`
}

// Cart holds at most one line per product id. Lines keep insertion order for
// display; order carries no meaning for totals.
type Cart struct {
	UserID    string     `json:"user_id"`
	Lines     []CartLine `json:"lines"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Line returns the index of the line holding productID, or -1.
func (c *Cart) Line(productID string) int {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// TotalItems is the sum of line quantities, not the distinct line count.
func (c *Cart) TotalItems() int {
	total := 0
	for i := range c.Lines {
		total += c.Lines[i].Quantity
	}
	return total
}
