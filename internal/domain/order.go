package domain

import "time"

type PaymentMethod string

const (
	PaymentCreditCard   PaymentMethod = "credit-card"
	PaymentBankTransfer PaymentMethod = "bank-transfer"
	PaymentEWallet      PaymentMethod = "e-wallet"
)

func (m PaymentMethod) IsValid() bool {
	return m == PaymentCreditCard || m == PaymentBankTransfer || m == PaymentEWallet
}

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusFailed     OrderStatus = "FAILED"
)

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusConfirmed || s == OrderStatusFailed
}

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo reports whether the linear checkout flow allows moving from
// s to next. Terminal states allow nothing.
func CanTransitionTo(s, next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusProcessing || next == OrderStatusFailed
	case OrderStatusProcessing:
		return next == OrderStatusConfirmed || next == OrderStatusFailed
	default:
		return false
	}
}

// OrderLine freezes a cart line at submit time with its settled prices.
// UnitPrice and Subtotal keep full precision; rounding happens at display.
type OrderLine struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

// Order is the immutable record built when a checkout is confirmed. It has no
// further lifecycle here beyond the display-only status label.
type Order struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id"`
	Lines         []OrderLine   `json:"lines"`
	Subtotal      float64       `json:"subtotal"`
	ShippingTier  ShippingTier  `json:"shipping_tier"`
	ShippingCost  float64       `json:"shipping_cost"`
	GrandTotal    float64       `json:"grand_total"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	TransactionID string        `json:"transaction_id"`
	Address       Address       `json:"address"`
	Status        OrderStatus   `json:"status"`
	Currency      string        `json:"currency"`
	CreatedAt     time.Time     `json:"created_at"`
}
