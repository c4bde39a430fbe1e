package entity

type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
}

// NewProduct is a product as submitted by a client, before it has an id.
type NewProduct struct {
	Name        string
	Description string
	Price       float64
}
