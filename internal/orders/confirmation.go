package orders

import (
	"github.com/KishoreBalajiP/eco-frontend/internal/domain"
)

// Confirmation is the read-only projection shown after an order is placed.
// It can be built from checkout hand-off state or from a re-fetched order;
// both origins normalize to this one shape so a reload or deep link renders
// identically.
type Confirmation struct {
	OrderID       int64                  `json:"order_id"`
	PaymentMethod domain.PaymentMethod   `json:"payment_method"`
	PaymentStatus domain.PaymentStatus   `json:"payment_status"`
	Items         []domain.OrderLine     `json:"items"`
	Shipping      domain.ShippingProfile `json:"shipping"`
	Total         float64                `json:"total"`
}

// ConfirmationFromCart snapshots the cart mirror at order-creation time. COD
// orders are confirmed with payment still pending; collection happens at the
// door.
func ConfirmationFromCart(orderID int64, method domain.PaymentMethod, lines []domain.CartLine, shipping domain.ShippingProfile, total float64) *Confirmation {
	items := make([]domain.OrderLine, 0, len(lines))
	for _, l := range lines {
		items = append(items, domain.OrderLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			Price:     l.UnitPrice,
		})
	}
	status := domain.PaymentStatusPending
	if method != domain.PaymentMethodCOD {
		status = domain.PaymentStatusPaid
	}
	return &Confirmation{
		OrderID:       orderID,
		PaymentMethod: method,
		PaymentStatus: status,
		Items:         items,
		Shipping:      shipping,
		Total:         total,
	}
}

// ConfirmationFromOrder rebuilds the same projection from a fetched order,
// covering the reload and deep-link case.
func ConfirmationFromOrder(o *domain.Order) *Confirmation {
	c := &Confirmation{
		OrderID:       o.ID,
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: o.PaymentStatus,
		Items:         o.Items,
		Total:         o.Total,
	}
	if o.Shipping != nil {
		c.Shipping = *o.Shipping
	}
	if c.PaymentStatus == "" {
		c.PaymentStatus = domain.PaymentStatusPending
	}
	if c.Items == nil {
		c.Items = []domain.OrderLine{}
	}
	return c
}
