// Package catalogv1 describes the catalog.v1.CatalogService RPC surface:
// message types, client stub and server registration.
package catalogv1

type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

func (p *Product) GetID() string {
	if p == nil {
		return ""
	}
	return p.ID
}

type ListProductsRequest struct{}

type ListProductsResponse struct {
	Products []*Product `json:"products"`
}

type GetProductRequest struct {
	ID string `json:"id"`
}

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}
