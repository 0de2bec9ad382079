package apiclient

import (
	"context"
	"net/http"

	"github.com/salaryhelper/salaryhelper-client/internal/domain"
)

// CreateOrderRequest is the body of CreateOrder.
type CreateOrderRequest struct {
	ProductType   string  `json:"product_type"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
}

func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	var order domain.Order
	if err := c.call(ctx, Request{Method: http.MethodPost, Path: "/orders/create", Body: req}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// PayOrder asks the backend to settle an order (simulated payment).
func (c *Client) PayOrder(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	if err := c.call(ctx, Request{Method: http.MethodPost, Path: pathID("/orders", id, "/pay")}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.call(ctx, Request{Method: http.MethodGet, Path: "/orders"}, &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}
