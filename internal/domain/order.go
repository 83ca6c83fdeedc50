package domain

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsTerminal reports whether the order can no longer change state. Cancel
// actions and admin status edits are disabled once an order is terminal.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) Known() bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPending PaymentStatus = "pending"
)

const (
	CancelledByUser  = "user"
	CancelledByAdmin = "admin"
)

// OrderLine is the immutable snapshot of a purchased item, captured at order
// creation time.
type OrderLine struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order is the backend's view of a placed order. Status, PaymentStatus and
// CancelledBy transition server-side; the gateway only ever reads them.
type Order struct {
	ID            int64            `json:"id"`
	UserID        int64            `json:"user_id,omitempty"`
	User          string           `json:"user,omitempty"`
	Total         float64          `json:"total"`
	Status        OrderStatus      `json:"status"`
	PaymentMethod PaymentMethod    `json:"payment_method,omitempty"`
	PaymentStatus PaymentStatus    `json:"payment_status,omitempty"`
	CancelledBy   string           `json:"cancelled_by,omitempty"`
	Items         []OrderLine      `json:"items,omitempty"`
	Shipping      *ShippingProfile `json:"shipping,omitempty"`
	CreatedAt     string           `json:"created_at,omitempty"`
}
