package domain

// ShippingTier is one of the fixed delivery-speed options, each with its own
// fee rule (see the pricing package).
type ShippingTier string

const (
	ShippingRegular ShippingTier = "regular"
	ShippingExpress ShippingTier = "express"
	ShippingSameDay ShippingTier = "same-day"
)

func (t ShippingTier) IsValid() bool {
	return t == ShippingRegular || t == ShippingExpress || t == ShippingSameDay
}

func (t ShippingTier) String() string {
	return string(t)
}

// Address carries the shipping form fields. Every field is required at
// checkout time.
type Address struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
}
