package entity

type Order struct {
	ID         string
	ProductID  string
	Quantity   int32
	TotalPrice float64
}
