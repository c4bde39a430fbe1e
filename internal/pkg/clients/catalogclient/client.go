// Package catalogclient is the caller side of catalog.v1.CatalogService.
//
// A Client owns exactly one connection. Callers acquire it for a single
// logical operation, normally through WithConnection, and release it when
// that operation ends; connections are never shared between operations.
package catalogclient

import (
	"context"
	"time"

	"google.golang.org/grpc"

	catalogv1 "github.com/jcmexdev/ecommerce-services/internal/api/catalog/v1"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/apperr"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/grpcx"
)

// Product is the catalog's view of a product as seen by callers.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
}

// NewProduct carries the caller-supplied fields of a product to create.
type NewProduct struct {
	Name        string
	Description string
	Price       float64
}

// Dialer knows where the catalog lives and how long each call may take.
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
	return &Client{conn: conn, rpc: catalogv1.NewCatalogServiceClient(conn), timeout: d.timeout}, nil
}

// WithConnection opens a client, runs fn with it and closes it on every
// exit path, including a panic inside fn.
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
	rpc     catalogv1.CatalogServiceClient
	timeout time.Duration
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// GetProduct reports found=false when the catalog has no such product. Any
// other failure is returned as a classified error.
func (c *Client) GetProduct(ctx context.Context, id string) (Product, bool, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	res, err := c.rpc.GetProduct(ctx, &catalogv1.GetProductRequest{ID: id})
	if err != nil {
		classified := apperr.FromStatus(err)
		if apperr.Is(classified, apperr.KindNotFound) {
			return Product{}, false, nil
		}
		return Product{}, false, classified
	}
	return fromProto(res), true, nil
}

func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	res, err := c.rpc.ListProducts(ctx, &catalogv1.ListProductsRequest{})
	if err != nil {
		return nil, apperr.FromStatus(err)
	}
	out := make([]Product, 0, len(res.Products))
	for _, p := range res.Products {
		out = append(out, fromProto(p))
	}
	return out, nil
}

func (c *Client) CreateProduct(ctx context.Context, p NewProduct) (Product, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	res, err := c.rpc.CreateProduct(ctx, &catalogv1.CreateProductRequest{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
	})
	if err != nil {
		return Product{}, apperr.FromStatus(err)
	}
	return fromProto(res), nil
}

func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func fromProto(p *catalogv1.Product) Product {
	if p == nil {
		return Product{}
	}
	return Product{ID: p.ID, Name: p.Name, Description: p.Description, Price: p.Price}
}
