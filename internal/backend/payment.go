package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// PaymentInitiation is the backend-issued destination for an external UPI
// payment. The gateway redirects the browser there and regains control on the
// callback route.
type PaymentInitiation struct {
	RedirectURL    string `json:"redirect_url"`
	PaymentOrderID string `json:"payment_order_id"`
}

func (c *Client) InitiatePayment(ctx context.Context, orderID int64, amount float64) (*PaymentInitiation, error) {
	var out PaymentInitiation
	err := c.do(ctx, "start payment", http.MethodPost, "/payments/create-order", map[string]any{
		"order_id": orderID,
		"amount":   amount,
		"currency": "INR",
		"receipt":  uuid.NewString(),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type paymentStatusEnvelope struct {
	Status string `json:"status"`
}

// CheckPaymentStatus is the single reconciliation check performed after the
// user returns from the payment redirect.
func (c *Client) CheckPaymentStatus(ctx context.Context, orderID int64) (string, error) {
	var out paymentStatusEnvelope
	path := fmt.Sprintf("/payments/status/%d", orderID)
	if err := c.do(ctx, "check payment status", http.MethodGet, path, nil, &out); err != nil {
		return "", err
	}
	return out.Status, nil
}
