// Package orderclient is the caller side of order.v1.OrderService. It
// follows the same one-connection-per-operation discipline as catalogclient.
package orderclient

import (
	"context"
	"time"

	"google.golang.org/grpc"

	orderv1 "github.com/jcmexdev/ecommerce-services/internal/api/order/v1"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/apperr"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/grpcx"
)

type Order struct {
	ID         string
	ProductID  string
	Quantity   int32
	TotalPrice float64
}

type Dialer struct {
	addr    string
	timeout time.Duration
	opts    []grpc.DialOption
}

func NewDialer(addr string, timeout time.Duration, opts ...grpc.DialOption) *Dialer {
	return &Dialer{addr: addr, timeout: timeout, opts: opts}
}

// Open acquires a dedicated connection. The caller must Close it.
func (d *Dialer) Open() (*Client, error) {
	conn, err := grpcx.Dial(d.addr, d.opts...)
	if err != nil {
		return nil, apperr.Unavailable("Service unavailable", err)
	}
	return &Client{conn: conn, rpc: orderv1.NewOrderServiceClient(conn), timeout: d.timeout}, nil
}

// WithConnection opens a client, runs fn with it and closes it on every
// exit path.
func WithConnection(ctx context.Context, d *Dialer, fn func(context.Context, *Client) error) error {
	c, err := d.Open()
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(ctx, c)
}

type Client struct {
	conn    *grpc.ClientConn
	rpc     orderv1.OrderServiceClient
	timeout time.Duration
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	res, err := c.rpc.ListOrders(ctx, &orderv1.ListOrdersRequest{})
	if err != nil {
		return nil, apperr.FromStatus(err)
	}
	out := make([]Order, 0, len(res.Orders))
	for _, o := range res.Orders {
		out = append(out, fromProto(o))
	}
	return out, nil
}

// GetOrder reports found=false when the order service has no such order.
func (c *Client) GetOrder(ctx context.Context, id string) (Order, bool, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	res, err := c.rpc.GetOrder(ctx, &orderv1.GetOrderRequest{ID: id})
	if err != nil {
		classified := apperr.FromStatus(err)
		if apperr.Is(classified, apperr.KindNotFound) {
			return Order{}, false, nil
		}
		return Order{}, false, classified
	}
	return fromProto(res), true, nil
}

// CreateOrder asks the order service to place an order. Validation, product
// and catalog failures come back classified by apperr.
func (c *Client) CreateOrder(ctx context.Context, productID string, quantity int32) (Order, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	res, err := c.rpc.CreateOrder(ctx, &orderv1.CreateOrderRequest{ProductID: productID, Quantity: quantity})
	if err != nil {
		return Order{}, apperr.FromStatus(err)
	}
	return fromProto(res), nil
}

func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func fromProto(o *orderv1.Order) Order {
	if o == nil {
		return Order{}
	}
	return Order{ID: o.ID, ProductID: o.ProductID, Quantity: o.Quantity, TotalPrice: o.TotalPrice}
}
